package engine

import (
	"fmt"
	"sort"

	"github.com/bracketeer/bracket/internal/domain"
)

// DoubleElimination generates the full match tree for a double-elimination
// bracket: the winner bracket, the loser bracket, the grand-finals match and
// the grand-finals-reset match, in that order (spec §4.2). The winner
// bracket is produced by SingleElimination; the loser bracket follows the
// wave algorithm below. Grand finals and its reset are returned as empty
// placeholder matches — population happens in progression, each grand-finals
// slot being filled as the final of its bracket resolves.
func DoubleElimination(seeding domain.Seeding) ([]domain.Match, error) {
	n := len(seeding)
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 participants, got %d", n)
	}

	winnerBracket, err := SingleElimination(seeding)
	if err != nil {
		return nil, err
	}

	loserBracket, err := loserBracketMatches(n)
	if err != nil {
		return nil, err
	}

	grandFinals := domain.NewEmptyMatch(domain.Seeds{1, 2})
	grandFinalsReset := domain.NewEmptyMatch(domain.Seeds{1, 2})

	all := make([]domain.Match, 0, len(winnerBracket)+len(loserBracket)+2)
	all = append(all, winnerBracket...)
	all = append(all, loserBracket...)
	all = append(all, grandFinals, grandFinalsReset)
	return all, nil
}

// PartitionWinnerBracket splits a generated match list back into its
// winner-bracket matches: the first n-1 entries (spec §4.1 generation
// produces exactly n-1 winner-bracket matches for n seeded players).
func PartitionWinnerBracket(matches []domain.Match, n int) []domain.Match {
	if n-1 > len(matches) {
		return matches
	}
	return matches[:n-1]
}

// PartitionLoserBracket returns the loser-bracket slice of a double
// elimination match list, excluding the trailing grand-finals and
// grand-finals-reset matches.
func PartitionLoserBracket(matches []domain.Match, n int) []domain.Match {
	start := n - 1
	if start > len(matches) {
		start = len(matches)
	}
	end := len(matches) - 2
	if end < start {
		end = start
	}
	return matches[start:end]
}

// GrandFinalsAndReset returns the grand-finals match and its reset, the
// last two entries of a double-elimination match list.
func GrandFinalsAndReset(matches []domain.Match) (grandFinals, reset domain.Match) {
	return matches[len(matches)-2], matches[len(matches)-1]
}

// waveSizes partitions `total` eventual loser-bracket entrants (n-1 of them,
// the eventual champion excluded) into waves of doubling size, starting from
// 1 (the loser-bracket's last entrant, seed 2) and growing by powers of two
// until the total is covered; the final wave absorbs whatever remains.
// Index 0 holds seed 2 alone, index 1 holds seeds 3-4, index 2 holds seeds
// 5-8, and so on.
func waveSizes(total int) []int {
	var sizes []int
	remaining := total
	for i := 0; remaining > 0; i++ {
		want := 1 << uint(i)
		take := want
		if take > remaining {
			take = remaining
		}
		sizes = append(sizes, take)
		remaining -= take
	}
	return sizes
}

// loserBracketMatches builds the loser-bracket match tree for n seeded
// players, following spec §4.2's wave algorithm: waves are processed from
// the earliest (biggest, fed by winner-bracket round 1) to the last (seed 2
// alone), each wave's incoming pool being the previous wave's survivors plus
// that wave's new winner-bracket droppers. The very first wave actually
// played skips one of its two rounds — either the whole wave is merged
// unplayed into the next one (when it is no bigger than the next), or it
// plays its first round but not its second — since the loser bracket's
// opening activity has no earlier round to combine with.
func loserBracketMatches(n int) ([]domain.Match, error) {
	sizes := waveSizes(n - 1)
	if len(sizes) == 0 {
		return nil, nil
	}

	waves := make([][]int, len(sizes))
	cursor := 2
	for i, size := range sizes {
		seeds := make([]int, size)
		for j := range seeds {
			seeds[j] = cursor
			cursor++
		}
		waves[i] = seeds
	}
	reverseWaveOrder(waves)

	var matches []domain.Match
	var carry []int
	suppressNextRoundB := true

	skipFirstWaveEntirely := len(waves) >= 2 && len(waves[0]) <= len(waves[1])
	if skipFirstWaveEntirely {
		suppressNextRoundB = false
	}

	for idx, newLosers := range waves {
		if idx == 0 && skipFirstWaveEntirely {
			carry = sortedAscending(newLosers)
			continue
		}

		incoming := sortedAscending(append(append([]int{}, carry...), newLosers...))
		k := len(incoming)
		byes := NextPowerOfTwo(k) - k
		byeHolders, withoutBye := incoming[:byes], incoming[byes:]

		pairsA, winnersA := roundPairsOf(withoutBye)
		for _, p := range pairsA {
			matches = append(matches, domain.NewEmptyMatch(domain.Seeds{p[0], p[1]}))
		}

		remaining := append(append([]int{}, byeHolders...), winnersA...)

		if suppressNextRoundB {
			carry = remaining
			suppressNextRoundB = false
			continue
		}

		// remaining == 2 here is the wave's closing pair dropping straight out
		// of the bracket's last two seeds (3-4, or 2-3 once the loser bracket
		// has narrowed to its final two entrants) with nothing left to carry
		// forward; roundPairsOf already produces that single match on its own.
		if len(remaining) >= 2 {
			pairsB, winnersB := roundPairsOf(remaining)
			for _, p := range pairsB {
				matches = append(matches, domain.NewEmptyMatch(domain.Seeds{p[0], p[1]}))
			}
			carry = winnersB
		} else {
			carry = remaining
		}
	}

	return matches, nil
}

// roundPairsOf pairs a sorted-ascending (strongest first), even-length seed
// list top-vs-bottom: the stronger half against the weaker half reversed, so
// the strongest remaining seed meets the weakest. Returns the pairs and the
// stronger half, which is this round's expected (no-upset) winners.
func roundPairsOf(players []int) ([][2]int, []int) {
	half := len(players) / 2
	winners := players[:half]
	losers := players[half:]
	pairs := make([][2]int, half)
	for i, w := range winners {
		pairs[i] = [2]int{w, losers[half-1-i]}
	}
	return pairs, winners
}

func sortedAscending(seeds []int) []int {
	out := append([]int{}, seeds...)
	sort.Ints(out)
	return out
}

func reverseWaveOrder(waves [][]int) {
	for i, j := 0, len(waves)-1; i < j; i, j = i+1, j-1 {
		waves[i], waves[j] = waves[j], waves[i]
	}
}
