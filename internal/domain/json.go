package domain

import "encoding/json"

// This file implements the JSON encodings referenced in spec §6's
// persistence boundary: frontends (and internal/repository's JSONB
// storage) serialise a Bracket opaquely, and a ReportedResult renders as
// the literal "X-Y" wire form rather than as its internal struct shape.

// MarshalJSON renders o as the player's ID, or JSON null when unknown.
func (o Opponent) MarshalJSON() ([]byte, error) {
	if !o.known {
		return []byte("null"), nil
	}
	return json.Marshal(o.player)
}

// UnmarshalJSON parses either a player ID or null back into an Opponent.
func (o *Opponent) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = UnknownOpponent
		return nil
	}
	var id PlayerID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*o = PlayerOpponent(id)
	return nil
}

// MarshalJSON renders r as its "X-Y" wire form, or JSON null when unset.
func (r ReportedResult) MarshalJSON() ([]byte, error) {
	if !r.set {
		return []byte("null"), nil
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON parses either an "X-Y" wire form or null back into a
// ReportedResult.
func (r *ReportedResult) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = NoResult
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseReportedResult(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// matchJSON is Match's wire shape; Match's fields are unexported so the
// default encoding would marshal to "{}" without this.
type matchJSON struct {
	ID             MatchID           `json:"id"`
	Players        [2]Opponent       `json:"players"`
	Seeds          Seeds             `json:"seeds"`
	Reported       [2]ReportedResult `json:"reported_results"`
	Winner         Opponent          `json:"winner"`
	AutomaticLoser Opponent          `json:"automatic_loser"`
}

// MarshalJSON renders m per spec §3's Match field list.
func (m Match) MarshalJSON() ([]byte, error) {
	return json.Marshal(matchJSON{
		ID:             m.id,
		Players:        m.players,
		Seeds:          m.seeds,
		Reported:       m.reported,
		Winner:         m.winner,
		AutomaticLoser: m.automaticLoser,
	})
}

// UnmarshalJSON reconstructs a Match from its wire form.
func (m *Match) UnmarshalJSON(data []byte) error {
	var mj matchJSON
	if err := json.Unmarshal(data, &mj); err != nil {
		return err
	}
	m.id = mj.ID
	m.players = mj.Players
	m.seeds = mj.Seeds
	m.reported = mj.Reported
	m.winner = mj.Winner
	m.automaticLoser = mj.AutomaticLoser
	return nil
}
