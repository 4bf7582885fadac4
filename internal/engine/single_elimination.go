package engine

import (
	"fmt"

	"github.com/bracketeer/bracket/internal/domain"
)

// SingleElimination generates the winner-bracket match tree for seeding
// (spec §4.2 "Single-Elimination / Winner Bracket"). Matches are returned
// round-major: all of round 1, then all of round 2, and so on, which is
// also the order package layout expects when partitioning rounds.
func SingleElimination(seeding domain.Seeding) ([]domain.Match, error) {
	n := len(seeding)
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 participants, got %d", n)
	}

	bracketSize := NextPowerOfTwo(n)
	byes := bracketSize - n
	totalRounds := TotalRounds(bracketSize)

	var matches []domain.Match

	round1 := buildPairings(bracketSize)
	for _, pair := range round1 {
		a, b := pair[0], pair[1]
		if a <= byes {
			continue // top seed receives a bye; no match is materialized
		}
		p1, _ := seeding.PlayerAt(a)
		p2, _ := seeding.PlayerAt(b)
		m, err := domain.NewMatch(
			[2]domain.Opponent{domain.PlayerOpponent(p1), domain.PlayerOpponent(p2)},
			domain.Seeds{a, b},
		)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	for k := 2; k <= totalRounds; k++ {
		for _, pair := range buildPairings(bracketSize / pow2(k-1)) {
			matches = append(matches, domain.NewEmptyMatch(domain.Seeds{pair[0], pair[1]}))
		}
	}

	// Byes advance immediately: place the bye-receiving seed directly into
	// the round-2+ match whose expected seeds contain it.
	for _, pair := range round1 {
		if pair[0] > byes {
			continue
		}
		player, _ := seeding.PlayerAt(pair[0])
		placeExpectedSeed(matches, pair[0], player)
	}

	return matches, nil
}

func pow2(exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= 2
	}
	return r
}

// placeExpectedSeed finds the first match whose expected seed pair
// contains seed and writes player into the matching slot. Used both here
// (bye propagation at generation time) and by the progression package
// (winner propagation after a match resolves).
func placeExpectedSeed(matches []domain.Match, seed int, player domain.PlayerID) bool {
	for i, m := range matches {
		s := m.Seeds()
		switch seed {
		case s[0]:
			matches[i] = m.SetPlayer(player, true)
			return true
		case s[1]:
			matches[i] = m.SetPlayer(player, false)
			return true
		}
	}
	return false
}
