package domain

// Seeds is the expected seed pair for a match: the numeric seeds its
// eventual occupants are predicted to carry, used to route winners through
// later rounds regardless of who actually fills the slots.
type Seeds [2]int

// Match is one node of a bracket's match tree: two opponent slots, their
// expected seeds, a reported-result pair, a winner and an automatic loser.
//
// Invariants (see spec §3):
//  1. A match never has both slots equal to the same known player.
//  2. winner is Unknown or one of players[0], players[1].
//  3. automaticLoser is Unknown or one of players[0], players[1].
//  4. If automaticLoser names a player, winner is Unknown or the other slot.
//  5. A reported result for player p is stored only in p's slot.
type Match struct {
	id             MatchID
	players        [2]Opponent
	seeds          Seeds
	reported       [2]ReportedResult
	winner         Opponent
	automaticLoser Opponent
}

// NewMatch creates a match between two (possibly Unknown) opponents with
// the given expected seeds. It fails if both slots name the same player.
func NewMatch(players [2]Opponent, seeds Seeds) (Match, error) {
	if p1, ok1 := players[0].Player(); ok1 {
		if p2, ok2 := players[1].Player(); ok2 && p1 == p2 {
			return Match{}, ErrSamePlayer
		}
	}
	return Match{
		id:      NewMatchID(),
		players: players,
		seeds:   seeds,
	}, nil
}

// NewEmptyMatch creates a match whose slots are both Unknown, to be filled
// in later as earlier rounds resolve.
func NewEmptyMatch(seeds Seeds) Match {
	m, _ := NewMatch([2]Opponent{UnknownOpponent, UnknownOpponent}, seeds)
	return m
}

// ID returns the match's identifier.
func (m Match) ID() MatchID { return m.id }

// Seeds returns the match's expected seed pair.
func (m Match) Seeds() Seeds { return m.seeds }

// Players returns the match's two opponent slots.
func (m Match) Players() [2]Opponent { return m.players }

// Winner returns the declared winner, or UnknownOpponent if undecided.
func (m Match) Winner() Opponent { return m.winner }

// AutomaticLoser returns the disqualification-assigned loser, if any.
func (m Match) AutomaticLoser() Opponent { return m.automaticLoser }

// ReportedResults returns the per-slot reported results.
func (m Match) ReportedResults() [2]ReportedResult { return m.reported }

// Contains reports whether player occupies either slot of this match.
func (m Match) Contains(player PlayerID) bool {
	return m.players[0].IsPlayer(player) || m.players[1].IsPlayer(player)
}

// SlotOf returns the slot index (0 or 1) occupied by player, and false if
// the player is not in this match.
func (m Match) SlotOf(player PlayerID) (int, bool) {
	if m.players[0].IsPlayer(player) {
		return 0, true
	}
	if m.players[1].IsPlayer(player) {
		return 1, true
	}
	return 0, false
}

// SetPlayer places player into slot 0 (isSlot0=true) or slot 1. The target
// slot must be Unknown or already equal to player; violating that is an
// engine bug, not something a caller can trigger through the facade, so it
// panics rather than returning an error (spec §9 Open Question #1).
func (m Match) SetPlayer(player PlayerID, isSlot0 bool) Match {
	slot := 1
	if isSlot0 {
		slot = 0
	}
	current := m.players[slot]
	if !current.IsUnknown() && !current.IsPlayer(player) {
		panic("bracket: cannot set player into an already-occupied match slot")
	}
	m.players[slot] = PlayerOpponent(player)
	return m
}

// RecordReport writes a score report into the slot occupied by player.
func (m Match) RecordReport(player PlayerID, score Score) (Match, error) {
	slot, ok := m.SlotOf(player)
	if !ok {
		return m, ErrUnknownPlayer
	}
	other := m.players[1-slot]
	if other.IsUnknown() {
		return m, ErrMissingOpponent
	}
	m.reported[slot] = NewReportedResult(score.Own, score.Opp)
	return m, nil
}

// ClearReports removes any previously recorded reports, leaving the match
// otherwise unchanged. Used before an organiser re-reports a result, and
// when reopening a validated match.
func (m Match) ClearReports() Match {
	m.reported = [2]ReportedResult{}
	return m
}

// ClearSlot resets slot 0 (isSlot0=true) or slot 1 back to Unknown. Used
// when reopening a match whose winner had already advanced downstream, to
// pull that player back out of the match they were placed into.
func (m Match) ClearSlot(isSlot0 bool) Match {
	slot := 1
	if isSlot0 {
		slot = 0
	}
	m.players[slot] = UnknownOpponent
	m.reported[slot] = NoResult
	return m
}

// ClearOutcome clears winner, automatic loser and reports, returning the
// match to a pending, needs-playing state (players are left untouched).
func (m Match) ClearOutcome() Match {
	m.winner = UnknownOpponent
	m.automaticLoser = UnknownOpponent
	m.reported = [2]ReportedResult{}
	return m
}

// SetAutomaticLoser marks player as having lost this match automatically
// (disqualification). player must be a participant of the match; that is
// guaranteed by the progression callers, so a violation panics.
func (m Match) SetAutomaticLoser(player PlayerID) Match {
	slot, ok := m.SlotOf(player)
	if !ok {
		panic("bracket: automatic loser must be a participant of the match")
	}
	m.automaticLoser = m.players[slot]
	return m
}

// IsOver reports whether this match has a final winner, either because
// both players are known and a winner was declared, or because of an
// automatic loser.
func (m Match) IsOver() bool {
	if m.players[0].IsUnknown() || m.players[1].IsUnknown() {
		return false
	}
	return !m.winner.IsUnknown() || !m.automaticLoser.IsUnknown()
}

// NeedsPlaying reports whether both opponents are present and nothing
// (report, DQ) has resolved the match yet.
func (m Match) NeedsPlaying() bool {
	return m.winner.IsUnknown() &&
		m.automaticLoser.IsUnknown() &&
		!m.players[0].IsUnknown() &&
		!m.players[1].IsUnknown()
}

// NeedsUpdateBecauseOfDisqualifiedParticipant reports whether the match has
// an automatic loser recorded but update_outcome has not yet run to turn
// that into a winner — the condition the DQ cascade loops on.
func (m Match) NeedsUpdateBecauseOfDisqualifiedParticipant() bool {
	return m.winner.IsUnknown() &&
		!m.automaticLoser.IsUnknown() &&
		!m.players[0].IsUnknown() &&
		!m.players[1].IsUnknown()
}

// HasAllReports reports whether both slots have a recorded report.
func (m Match) HasAllReports() bool {
	return m.reported[0].IsSet() && m.reported[1].IsSet()
}

// StrongerSeedWins returns whether the stronger (numerically lower) seed
// won the match, or (false, false) if the match is not resolved yet.
// Seeds must differ; equal seeds are a generator bug.
func (m Match) StrongerSeedWins() (won bool, known bool) {
	if m.seeds[0] == m.seeds[1] {
		panic("bracket: match seeds must differ")
	}
	winner, ok := m.winner.Player()
	if !ok {
		return false, false
	}
	strongerSlot := 0
	if m.seeds[1] < m.seeds[0] {
		strongerSlot = 1
	}
	slot, ok := m.SlotOf(winner)
	if !ok {
		return false, false
	}
	return slot == strongerSlot, true
}

// UpdateOutcome resolves the match's winner following the rules in spec
// §4.1: when both slots are known players and one is the automatic loser,
// the other slot wins outright; otherwise both reports must be present and
// mutually agree.
// Returns the updated match plus the winner and loser player IDs.
func (m Match) UpdateOutcome() (Match, PlayerID, PlayerID, error) {
	if dq, ok := m.automaticLoser.Player(); ok {
		p1, ok1 := m.players[0].Player()
		p2, ok2 := m.players[1].Player()
		if !ok1 || !ok2 {
			return m, PlayerID{}, PlayerID{}, ErrMissingOpponent
		}
		switch dq {
		case p1:
			m.winner = m.players[1]
			return m, p2, p1, nil
		case p2:
			m.winner = m.players[0]
			return m, p1, p2, nil
		default:
			return m, PlayerID{}, PlayerID{}, ErrMissingOpponent
		}
	}

	p1, ok1 := m.players[0].Player()
	p2, ok2 := m.players[1].Player()
	if !ok1 || !ok2 {
		return m, PlayerID{}, PlayerID{}, ErrMissingOpponent
	}

	r0, r1 := m.reported[0], m.reported[1]
	if !r0.IsSet() || !r1.IsSet() {
		return m, PlayerID{}, PlayerID{}, ErrMissingReport
	}

	agree := r0.Score.Own == r1.Score.Opp && r0.Score.Opp == r1.Score.Own && r0.Score.Own != r0.Score.Opp
	if !agree {
		return m, PlayerID{}, PlayerID{}, ErrConflictingReports
	}

	var winner, loser PlayerID
	if r0.Score.Own > r0.Score.Opp {
		winner, loser = p1, p2
	} else {
		winner, loser = p2, p1
	}
	m.winner = PlayerOpponent(winner)
	return m, winner, loser, nil
}
