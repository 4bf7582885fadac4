// Package bracket is the façade combining format, seeding, matches and
// policy flags into the single entry point frontends use (spec §6). It
// owns the bracket lifecycle — create, roster management, start — and
// re-exports the progression and layout packages' operations as free
// functions over domain.Bracket, matching spec §9's "no wrapper structs"
// design note: there is no bracketService type to construct, just
// functions that take a Bracket and return an updated one.
package bracket

import (
	"github.com/bracketeer/bracket/internal/domain"
	"github.com/bracketeer/bracket/internal/engine"
)

// Create returns a freshly named, open, not-yet-started Bracket with an
// empty seeding and no matches (spec §6 create). Participants join with
// AddParticipant; the match tree is generated once by Start.
func Create(name string, format domain.Format, seedingMethod domain.SeedingMethod, automaticProgression bool) domain.Bracket {
	return domain.Bracket{
		ID:                        domain.NewBracketID(),
		Name:                      name,
		Format:                    format,
		SeedingMethod:             seedingMethod,
		AutomaticMatchProgression: automaticProgression,
	}
}

// AddParticipant appends player to the bracket's seeding, at the next open
// seed position (spec §6 add_participant). Fails with ErrClosed once the
// bracket has started, or ErrAlreadyPresent on a duplicate join.
func AddParticipant(b domain.Bracket, player domain.PlayerID) (domain.Bracket, error) {
	if b.IsClosed {
		return b, domain.ErrClosed
	}
	if b.Seeding.Contains(player) {
		return b, domain.ErrAlreadyPresent
	}

	seeding := make(domain.Seeding, len(b.Seeding), len(b.Seeding)+1)
	copy(seeding, b.Seeding)
	seeding = append(seeding, player)

	out := b
	out.Seeding = seeding
	return out, nil
}

// UpdateSeeding replaces the bracket's seeding order wholesale and is only
// legal before the bracket starts (spec §6 update_seeding): orderedIDs must
// name exactly the players already in the bracket, each once, in whatever
// order the caller wants for the new seed assignment. Fails with
// ErrAlreadyStarted, ErrDifferentParticipants (missing or unknown player),
// or ErrAlreadyPresent (duplicate entry within orderedIDs).
func UpdateSeeding(b domain.Bracket, orderedIDs []domain.PlayerID) (domain.Bracket, error) {
	if b.AcceptMatchResults || len(b.Matches) > 0 {
		return b, domain.ErrAlreadyStarted
	}
	if len(orderedIDs) != len(b.Seeding) {
		return b, domain.ErrDifferentParticipants
	}

	seen := make(map[domain.PlayerID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return b, domain.ErrAlreadyPresent
		}
		seen[id] = true
		if !b.Seeding.Contains(id) {
			return b, domain.ErrDifferentParticipants
		}
	}

	seeding := make(domain.Seeding, len(orderedIDs))
	copy(seeding, orderedIDs)

	out := b
	out.Seeding = seeding
	return out, nil
}

// Start closes the bracket to new participants, generates its match tree
// from the current seeding, and begins accepting results (spec §6 start).
// Fails with ErrNoMatchesGenerated if the seeding is too small to produce a
// single match (n < 2).
func Start(b domain.Bracket) (domain.Bracket, []domain.MatchID, error) {
	if b.AcceptMatchResults {
		return b, nil, domain.ErrAlreadyStarted
	}
	if len(b.Seeding) < 2 {
		return b, nil, domain.ErrNoMatchesGenerated
	}

	var matches []domain.Match
	var err error
	switch b.Format {
	case domain.DoubleElimination:
		matches, err = engine.DoubleElimination(b.Seeding)
	default:
		matches, err = engine.SingleElimination(b.Seeding)
	}
	if err != nil {
		return b, nil, err
	}
	if len(matches) == 0 {
		return b, nil, domain.ErrNoMatchesGenerated
	}

	out := b
	out.Matches = matches
	out.IsClosed = true
	out.AcceptMatchResults = true

	var playable []domain.MatchID
	for _, m := range matches {
		if m.NeedsPlaying() {
			playable = append(playable, m.ID())
		}
	}
	return out, playable, nil
}
