package progression

import "github.com/bracketeer/bracket/internal/domain"

// ReopenMatch clears a resolved match's outcome and reports, returning it
// to a playable state (SPEC_FULL §4.6). Any downstream match the original
// winner (or, for double elimination, loser) had already advanced into is
// rolled back too: the advanced player's slot is cleared, and if that
// downstream match had itself resolved, the rollback cascades further.
// Fails with MatchNotOver if the match has no decided outcome yet. Returns
// the IDs of every match touched by the rollback, in no particular order.
func ReopenMatch(b domain.Bracket, matchID domain.MatchID) (domain.Bracket, []domain.MatchID, error) {
	idx := b.MatchIndex(matchID)
	if idx < 0 {
		return b, nil, domain.ErrMatchNotFound
	}
	if !b.Matches[idx].IsOver() {
		return b, nil, domain.ErrMatchNotOver
	}

	matches := copyMatches(b)
	reopened := map[int]bool{}
	rollback(matches, len(b.Seeding), b.Format, idx, reopened)

	out := b
	out.Matches = matches

	ids := make([]domain.MatchID, 0, len(reopened))
	for i := range reopened {
		ids = append(ids, matches[i].ID())
	}
	return out, ids, nil
}

// rollback clears matches[idx]'s outcome, then, for every advanced player
// found downstream, clears that player's slot there too — recursing if the
// downstream match had also resolved.
func rollback(matches []domain.Match, n int, format domain.Format, idx int, reopened map[int]bool) {
	if reopened[idx] {
		return
	}
	m := matches[idx]
	winner, hasWinner := m.Winner().Player()
	dqPlayer, hasDQ := slotPlayer(m.AutomaticLoser())

	matches[idx] = m.ClearOutcome()
	reopened[idx] = true

	if !hasWinner {
		return
	}
	seeds := m.Seeds()
	clearDownstream(matches, n, format, idx, seeds[0], winner, reopened)

	if format == domain.DoubleElimination && idx < n-1 && hasDQ {
		clearDownstream(matches, n, format, idx, seeds[1], dqPlayer, reopened)
	} else if format == domain.DoubleElimination && idx < n-1 {
		loser := otherPlayer(m, winner)
		clearDownstream(matches, n, format, idx, seeds[1], loser, reopened)
	}
}

func otherPlayer(m domain.Match, winner domain.PlayerID) domain.PlayerID {
	p0, _ := m.Players()[0].Player()
	if p0 == winner {
		p1, _ := m.Players()[1].Player()
		return p1
	}
	return p0
}

func slotPlayer(o domain.Opponent) (domain.PlayerID, bool) {
	return o.Player()
}

// clearDownstream finds the match where player was placed carrying expected
// seed, clears that slot, and — if the match had already resolved —
// recurses into rollback for it too.
func clearDownstream(matches []domain.Match, n int, format domain.Format, from int, seed int, player domain.PlayerID, reopened map[int]bool) {
	for i := from + 1; i < len(matches); i++ {
		s := matches[i].Seeds()
		slot, ok := matches[i].SlotOf(player)
		if !ok {
			continue
		}
		if s[slot] != seed {
			continue
		}
		if matches[i].IsOver() {
			rollback(matches, n, format, i, reopened)
		}
		matches[i] = matches[i].ClearOutcome().ClearSlot(slot == 0)
		reopened[i] = true
		return
	}
}
