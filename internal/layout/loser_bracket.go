package layout

import (
	"sort"

	"github.com/bracketeer/bracket/internal/domain"
	"github.com/bracketeer/bracket/internal/engine"
)

// LoserBracketRounds partitions a double-elimination match list's
// loser-bracket portion into rounds, converts each match to a MinimalMatch,
// and assigns row hints following the loser-bracket parity rule (spec
// §4.5).
func LoserBracketRounds(matches []domain.Match, n int) [][]MinimalMatch {
	lb := engine.PartitionLoserBracket(matches, n)
	rounds := chunk(toMinimalMatches(lb), engine.LoserBracketRoundSizes(n))
	assignLoserBracketRowHints(rounds)
	return rounds
}

// LoserBracketLines emits the connecting-line grid between every adjacent
// pair of loser-bracket rounds (spec §4.5), including the wave hand-off and
// total_matches == 2 special cases.
func LoserBracketLines(rounds [][]MinimalMatch) [][]BoxElement {
	return lines(rounds, true)
}

// assignLoserBracketRowHints is a direct port of
// original_source/totsugeki-display/src/loser_bracket/mod.rs's `reorder`.
// Unlike the winner bracket, a loser bracket's last three rounds are seeded
// by hand rather than derived from a single final-round hint: a loser
// bracket's final two rounds both carry exactly one match (the
// loser-bracket final, preceded by the round that decides who reaches it),
// so there is no parent/child pair to propagate a hint down from until the
// third-from-last round.
func assignLoserBracketRowHints(rounds [][]MinimalMatch) {
	if len(rounds) < 2 {
		return
	}
	count := len(rounds)

	if count > 2 && len(rounds[count-3]) > 0 {
		zero, one := 0, 1
		rounds[count-3][0].RowHint = &zero
		if len(rounds[count-3]) > 1 {
			rounds[count-3][1].RowHint = &one
		}
	}
	if count > 1 && len(rounds[count-2]) > 0 {
		zero := 0
		rounds[count-2][0].RowHint = &zero
	}
	if len(rounds[count-1]) > 0 {
		zero := 0
		rounds[count-1][0].RowHint = &zero
	}

	for i := count - 3; i >= 0; i-- {
		round := rounds[i]
		parent := rounds[i+1]

		for _, p := range parent {
			if p.RowHint == nil {
				continue
			}
			h := *p.RowHint
			setRowHint(round, p.Seeds[0], h*2)

			// the wave-structure parity rule: every other round-depth, the
			// expected-loser branch collapses onto its parent's hint instead
			// of taking the next odd slot, because that round holds the same
			// number of matches as its parent rather than twice as many.
			if (count-i)%2 == 0 {
				setRowHint(round, p.Seeds[1], h)
			} else {
				setRowHint(round, p.Seeds[1], h*2+1)
			}
		}

		if i == 0 {
			var needed int
			if count%2 == 0 {
				needed = len(round) + (len(parent) - len(round))
			} else {
				needed = len(parent) * 2
			}
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
