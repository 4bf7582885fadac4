package engine

// buildPairings returns the standard tournament seed pairing for a
// power-of-two bracket of the given size: for size 8 it returns
// [[1,8],[4,5],[2,7],[3,6]], guaranteeing seed 1 can only meet seed 2 in
// the final round. Grounded on the teacher's GenerateSeedPairings
// (internal/engine/seeding.go), generalized to be reused for every round
// of a bracket (round k reuses buildPairings(size / 2^(k-1))).
func buildPairings(size int) [][2]int {
	if size < 2 {
		return nil
	}
	if size == 2 {
		return [][2]int{{1, 2}}
	}
	smaller := buildPairings(size / 2)
	result := make([][2]int, len(smaller)*2)
	for i, pair := range smaller {
		result[i*2] = [2]int{pair[0], size + 1 - pair[0]}
		result[i*2+1] = [2]int{pair[1], size + 1 - pair[1]}
	}
	return result
}
