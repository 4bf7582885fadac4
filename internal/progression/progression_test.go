package progression

import (
	"testing"

	"github.com/bracketeer/bracket/internal/domain"
	"github.com/bracketeer/bracket/internal/engine"
)

// newSingleEliminationBracket builds a started single-elimination bracket
// for n freshly minted players.
func newSingleEliminationBracket(t *testing.T, n int) (domain.Bracket, domain.Seeding) {
	t.Helper()
	seeding := make(domain.Seeding, n)
	for i := range seeding {
		seeding[i] = domain.NewPlayerID()
	}
	matches, err := engine.SingleElimination(seeding)
	if err != nil {
		t.Fatalf("SingleElimination(%d): %v", n, err)
	}
	return domain.Bracket{
		ID:      domain.NewBracketID(),
		Seeding: seeding,
		Matches: matches,
		Format:  domain.SingleElimination,
	}, seeding
}

// newDoubleEliminationBracket builds a started double-elimination bracket
// for n freshly minted players.
func newDoubleEliminationBracket(t *testing.T, n int) (domain.Bracket, domain.Seeding) {
	t.Helper()
	seeding := make(domain.Seeding, n)
	for i := range seeding {
		seeding[i] = domain.NewPlayerID()
	}
	matches, err := engine.DoubleElimination(seeding)
	if err != nil {
		t.Fatalf("DoubleElimination(%d): %v", n, err)
	}
	return domain.Bracket{
		ID:      domain.NewBracketID(),
		Seeding: seeding,
		Matches: matches,
		Format:  domain.DoubleElimination,
	}, seeding
}

// playOut reports winner beating loser in the match they currently share,
// then validates it, returning the updated bracket. Fails the test on any
// error, since every call site expects the match to already be playable.
func playOut(t *testing.T, b domain.Bracket, winner, loser domain.PlayerID) domain.Bracket {
	t.Helper()
	b, matchID, err := TournamentOrganiserReportsResult(b, winner, domain.Score{Own: 2, Opp: 0}, loser)
	if err != nil {
		t.Fatalf("TournamentOrganiserReportsResult(%s, %s): %v", winner, loser, err)
	}
	b, _, err = ValidateMatchResult(b, matchID)
	if err != nil {
		t.Fatalf("ValidateMatchResult: %v", err)
	}
	return b
}

// matchWithBoth returns the match containing both players. Unlike seed
// lookups, this stays meaningful in double elimination brackets where a
// winner- and loser-bracket match can share the same expected seed pair.
// The same two finalists can also legitimately meet twice (winner bracket
// final, then grand finals), so an unresolved match is preferred over an
// already-decided one; among several matching candidates the first is
// returned.
func matchWithBoth(t *testing.T, b domain.Bracket, p1, p2 domain.PlayerID) domain.Match {
	t.Helper()
	var fallback domain.Match
	haveFallback := false
	for _, m := range b.Matches {
		if !m.Contains(p1) || !m.Contains(p2) {
			continue
		}
		if !m.IsOver() {
			return m
		}
		if !haveFallback {
			fallback = m
			haveFallback = true
		}
	}
	if haveFallback {
		return fallback
	}
	t.Fatalf("no match containing both %s and %s", p1, p2)
	return domain.Match{}
}

// matchContaining returns the match currently most relevant to player: an
// unresolved one if they have one, otherwise their most recently decided
// match.
func matchContaining(t *testing.T, b domain.Bracket, player domain.PlayerID) domain.Match {
	t.Helper()
	var fallback domain.Match
	haveFallback := false
	for _, m := range b.Matches {
		if !m.Contains(player) {
			continue
		}
		if !m.IsOver() {
			return m
		}
		if !haveFallback {
			fallback = m
			haveFallback = true
		}
	}
	if haveFallback {
		return fallback
	}
	t.Fatalf("no match containing %s", player)
	return domain.Match{}
}
