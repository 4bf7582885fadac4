package layout

import (
	"sort"

	"github.com/bracketeer/bracket/internal/domain"
	"github.com/bracketeer/bracket/internal/engine"
)

// WinnerBracketRounds partitions a double- or single-elimination match
// list's winner-bracket portion into rounds, converts each match to a
// MinimalMatch, and assigns row hints (spec §4.5).
func WinnerBracketRounds(matches []domain.Match, n int) [][]MinimalMatch {
	wb := engine.PartitionWinnerBracket(matches, n)
	rounds := chunk(toMinimalMatches(wb), engine.WinnerBracketRoundSizes(n))
	assignRowHints(rounds)
	return rounds
}

// assignRowHints implements spec §4.5's positional-hint algorithm: seed the
// final round with hint 0, then walk backwards assigning each earlier
// round's matches the hint their parent implies.
func assignRowHints(rounds [][]MinimalMatch) {
	if len(rounds) == 0 {
		return
	}
	zero := 0
	if len(rounds[len(rounds)-1]) > 0 {
		rounds[len(rounds)-1][0].RowHint = &zero
	}

	for i := len(rounds) - 2; i >= 0; i-- {
		round := rounds[i]
		parent := rounds[i+1]

		for _, p := range parent {
			if p.RowHint == nil {
				continue
			}
			h := *p.RowHint

			winnerHint := h * 2
			setRowHint(round, p.Seeds[0], winnerHint)

			loserHint := h*2 + 1
			setRowHint(round, p.Seeds[1], loserHint)
		}

		if i == 0 {
			needed := len(parent) * 2
			for len(round) < needed {
				round = append(round, MinimalMatch{})
			}
		}

		sort.SliceStable(round, func(a, b int) bool {
			return rowHintLess(round[a].RowHint, round[b].RowHint)
		})
		rounds[i] = round
	}
}

// setRowHint finds round's first match whose expected winner (slot 0) seed
// equals seed and assigns it hint, replacing any hint it already had;
// nothing is assigned when no match has that slot-0 seed. Mirrors the Rust
// reorder implementation this is ported from, which finds by slot-0 seed
// only.
func setRowHint(round []MinimalMatch, seed, hint int) {
	for i := range round {
		if round[i].Seeds[0] == seed {
			h := hint
			round[i].RowHint = &h
			return
		}
	}
}

// rowHintLess orders placeholder matches (nil hint) before any real match,
// then real matches by ascending hint — the ordering totsugeki-display's
// Option<usize> row_hint produces under its derived Ord.
func rowHintLess(a, b *int) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true
	case b == nil:
		return false
	default:
		return *a < *b
	}
}

// WinnerBracketLines emits the connecting-line grid between every adjacent
// pair of winner-bracket rounds (spec §4.5). Column count is
// next_power_of_two(total_matches_in_bracket + 1) / 2, shared by every
// round-pair's grid.
func WinnerBracketLines(rounds [][]MinimalMatch) [][]BoxElement {
	return lines(rounds, false)
}
