// Package progression implements the state-machine operations that move a
// domain.Bracket forward: reporting and validating results, disqualifying
// participants, and the single-/double-elimination propagation rules that
// connect one match's outcome to the next (spec §4.3, §4.4). Every exported
// operation is a free function taking a domain.Bracket and returning an
// updated one; none of them mutate the Bracket or Match values a caller
// already holds.
package progression

import (
	"errors"

	"github.com/bracketeer/bracket/internal/domain"
)

// findOpenMatchIndex returns the index of the unique match that still
// "belongs" to player: it is named in the match and neither a winner nor an
// automatic loser has been decided yet. Unlike domain.Bracket.CurrentMatch,
// this excludes matches where player has already been marked an automatic
// loser (used by the disqualification cascade to know when a player has no
// further matches to lose).
func findOpenMatchIndex(matches []domain.Match, player domain.PlayerID) int {
	for i, m := range matches {
		if !m.Contains(player) {
			continue
		}
		if !m.Winner().IsUnknown() || !m.AutomaticLoser().IsUnknown() {
			continue
		}
		return i
	}
	return -1
}

// findPlayableMatchIndex returns the index of the match player can currently
// report a result for: both slots filled, nothing decided.
func findPlayableMatchIndex(matches []domain.Match, player domain.PlayerID) int {
	for i, m := range matches {
		if m.Contains(player) && m.NeedsPlaying() {
			return i
		}
	}
	return -1
}

// matchesToPlayIDs lists the IDs of every match that currently needs
// playing, in bracket order.
func matchesToPlayIDs(matches []domain.Match) []domain.MatchID {
	var ids []domain.MatchID
	for _, m := range matches {
		if m.NeedsPlaying() {
			ids = append(ids, m.ID())
		}
	}
	return ids
}

// newlyPlayable returns the match IDs present in after but not before,
// preserving after's order.
func newlyPlayable(before, after []domain.MatchID) []domain.MatchID {
	seen := make(map[domain.MatchID]bool, len(before))
	for _, id := range before {
		seen[id] = true
	}
	var out []domain.MatchID
	for _, id := range after {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

// copyMatches returns an independent copy of a bracket's match list, so
// progression operations can mutate their working copy by index without
// aliasing the caller's Bracket.
func copyMatches(b domain.Bracket) []domain.Match {
	out := make([]domain.Match, len(b.Matches))
	copy(out, b.Matches)
	return out
}

// placeNextSeed finds the first match at or after index from whose expected
// seed pair contains seed, with that slot still open, and places player
// there. Mirrors the bye-propagation helper in package engine, generalized
// to run forward from an arbitrary point in an already-live bracket.
func placeNextSeed(matches []domain.Match, from, seed int, player domain.PlayerID) (int, bool) {
	return placeNextSeedInRange(matches, from, len(matches), seed, player)
}

func placeNextSeedInRange(matches []domain.Match, from, to, seed int, player domain.PlayerID) (int, bool) {
	if to > len(matches) {
		to = len(matches)
	}
	for i := from; i < to; i++ {
		s := matches[i].Seeds()
		switch {
		case s[0] == seed && matches[i].Players()[0].IsUnknown():
			matches[i] = matches[i].SetPlayer(player, true)
			return i, true
		case s[1] == seed && matches[i].Players()[1].IsUnknown():
			matches[i] = matches[i].SetPlayer(player, false)
			return i, true
		}
	}
	return -1, false
}

// resolveAndPropagate runs update_outcome on matches[idx] and, on success,
// carries the result forward: the winner into the next round's expected
// slot, and — for double elimination winner-bracket matches — the loser
// into the loser bracket. viaDisqualification marks that idx's automatic
// loser was just set by a disqualification, which forces any downstream
// match the loser drops into to resolve as an automatic loss too, instead
// of waiting to be actually played.
//
// Returns domain.ErrMissingOpponent when idx cannot resolve yet (the usual,
// non-fatal state mid disqualification cascade); callers should treat that
// error as "nothing more to do right now", not a failure.
func resolveAndPropagate(matches []domain.Match, n int, format domain.Format, idx int, viaDisqualification bool) error {
	resolved, winner, loser, err := matches[idx].UpdateOutcome()
	if err != nil {
		return err
	}
	matches[idx] = resolved

	isDE := format == domain.DoubleElimination
	gfIdx := len(matches) - 2
	resetIdx := len(matches) - 1

	switch {
	case isDE && idx == gfIdx:
		return handleGrandFinalsResolution(matches, n, format, winner, loser, viaDisqualification)
	case isDE && idx == resetIdx:
		return nil
	default:
		return propagateForward(matches, n, format, idx, winner, loser, viaDisqualification)
	}
}

func propagateForward(matches []domain.Match, n int, format domain.Format, idx int, winner, loser domain.PlayerID, viaDisqualification bool) error {
	seeds := matches[idx].Seeds()

	if dst, ok := placeNextSeed(matches, idx+1, seeds[0], winner); ok {
		if matches[dst].NeedsUpdateBecauseOfDisqualifiedParticipant() {
			if err := resolveAndPropagate(matches, n, format, dst, true); err != nil && !errors.Is(err, domain.ErrMissingOpponent) {
				return err
			}
		}
	}

	if format != domain.DoubleElimination || idx >= n-1 {
		return nil
	}

	lbStart, lbEnd := n-1, len(matches)-2
	dst, ok := placeNextSeedInRange(matches, lbStart, lbEnd, seeds[1], loser)
	if !ok {
		return nil
	}
	if viaDisqualification {
		matches[dst] = matches[dst].SetAutomaticLoser(loser)
	}
	if viaDisqualification || matches[dst].NeedsUpdateBecauseOfDisqualifiedParticipant() {
		if err := resolveAndPropagate(matches, n, format, dst, true); err != nil && !errors.Is(err, domain.ErrMissingOpponent) {
			return err
		}
	}
	return nil
}

// handleGrandFinalsResolution populates the grand-finals-reset match once
// grand finals resolves (spec §4.4): if the winner-bracket finalist (slot 0,
// expected seed 1) wins, the bracket is over and the reset stays empty. If
// the loser-bracket finalist (slot 1, expected seed 2) wins, the reset is
// populated with the same two players — and, if this grand-finals result
// was itself a disqualification, the reset resolves immediately in the
// loser-bracket finalist's favour instead of waiting to be played.
func handleGrandFinalsResolution(matches []domain.Match, n int, format domain.Format, winner, loser domain.PlayerID, viaDisqualification bool) error {
	gf := matches[len(matches)-2]
	winnerSlot, _ := gf.SlotOf(winner)
	if winnerSlot == 0 {
		return nil
	}

	resetIdx := len(matches) - 1
	matches[resetIdx] = matches[resetIdx].SetPlayer(loser, true).SetPlayer(winner, false)
	if !viaDisqualification {
		return nil
	}
	matches[resetIdx] = matches[resetIdx].SetAutomaticLoser(loser)
	if err := resolveAndPropagate(matches, n, format, resetIdx, true); err != nil && !errors.Is(err, domain.ErrMissingOpponent) {
		return err
	}
	return nil
}
