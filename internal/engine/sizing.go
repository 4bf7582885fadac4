// Package engine generates seeded match trees for single- and
// double-elimination brackets (spec §4.2). Generation is pure: given a
// seeding, it produces a match list and touches nothing else.
package engine

// NextPowerOfTwo returns the smallest power of two >= n. Grounded on the
// teacher's CalculateBracketSize (internal/engine/seeding.go).
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	size := 1
	for size < n {
		size *= 2
	}
	return size
}

// TotalRounds returns how many winner-bracket rounds a bracket of the
// given (power-of-two) size needs.
func TotalRounds(bracketSize int) int {
	rounds := 0
	for size := bracketSize; size > 1; size /= 2 {
		rounds++
	}
	return rounds
}

// WinnerBracketRoundSizes returns the number of matches in each
// winner-bracket round, in play order, for n seeded players (spec §4.5
// round partitioning). The first round is short by one match per bye;
// every later round is a full half of what came before.
func WinnerBracketRoundSizes(n int) []int {
	if n < 2 {
		return nil
	}
	bracketSize := NextPowerOfTwo(n)
	byes := bracketSize - n
	sizes := []int{bracketSize/2 - byes}
	for size := bracketSize / 4; size >= 1; size /= 2 {
		sizes = append(sizes, size)
	}
	return sizes
}

// LoserBracketRoundSizes returns the number of matches in each loser-bracket
// round, in play order, for n seeded players. It mirrors loserBracketMatches'
// wave construction exactly (same carry/suppress bookkeeping), counting
// matches per round instead of building them, so package layout can chunk a
// flat loser-bracket match slice into rounds without re-deriving the wave
// algorithm itself.
func LoserBracketRoundSizes(n int) []int {
	sizes := waveSizes(n - 1)
	if len(sizes) == 0 {
		return nil
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

	var rounds []int
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
		rounds = append(rounds, len(pairsA))

		remaining := append(append([]int{}, byeHolders...), winnersA...)

		if suppressNextRoundB {
			carry = remaining
			suppressNextRoundB = false
			continue
		}

		if len(remaining) >= 2 {
			pairsB, winnersB := roundPairsOf(remaining)
			rounds = append(rounds, len(pairsB))
			carry = winnersB
		} else {
			carry = remaining
		}
	}

	return rounds
}
