package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracketeer/bracket/internal/domain"
	"github.com/bracketeer/bracket/internal/engine"
)

func newSeeding(t *testing.T, n int) domain.Seeding {
	t.Helper()
	seeding := make(domain.Seeding, n)
	for i := range seeding {
		seeding[i] = domain.NewPlayerID()
	}
	return seeding
}

func TestWinnerBracketRoundsPartitionsFourPlayerBracket(t *testing.T) {
	seeding := newSeeding(t, 4)
	matches, err := engine.SingleElimination(seeding)
	require.NoError(t, err)

	rounds := WinnerBracketRounds(matches, 4)
	require.Len(t, rounds, 2)
	require.Len(t, rounds[0], 2)
	require.Len(t, rounds[1], 1)

	assert.Equal(t, domain.Seeds{1, 2}, rounds[1][0].Seeds)
	require.NotNil(t, rounds[1][0].RowHint)
	assert.Equal(t, 0, *rounds[1][0].RowHint)

	byHint := make(map[int]domain.Seeds)
	for _, m := range rounds[0] {
		require.NotNil(t, m.RowHint)
		byHint[*m.RowHint] = m.Seeds
	}
	assert.Equal(t, domain.Seeds{1, 4}, byHint[0])
	assert.Equal(t, domain.Seeds{2, 3}, byHint[1])
}

func TestWinnerBracketRoundsPadsFirstRoundWithByes(t *testing.T) {
	seeding := newSeeding(t, 5)
	matches, err := engine.SingleElimination(seeding)
	require.NoError(t, err)

	rounds := WinnerBracketRounds(matches, 5)
	require.Len(t, rounds, 3)

	// n=5: byes=3, so round 1 has a single real match plus 3 placeholders
	// standing in for the bye-receiving seeds' absent matches.
	real, placeholders := 0, 0
	for _, m := range rounds[0] {
		if m.IsPlaceholder() {
			placeholders++
		} else {
			real++
		}
	}
	assert.Equal(t, 1, real)
	assert.Equal(t, 3, placeholders)
}

func TestRowHintsAreUniqueWithinEachRealRound(t *testing.T) {
	seeding := newSeeding(t, 8)
	matches, err := engine.SingleElimination(seeding)
	require.NoError(t, err)

	rounds := WinnerBracketRounds(matches, 8)
	for _, round := range rounds {
		seen := map[int]bool{}
		for _, m := range round {
			if m.IsPlaceholder() {
				continue
			}
			require.False(t, seen[*m.RowHint], "duplicate row hint %d", *m.RowHint)
			seen[*m.RowHint] = true
		}
	}
}

func TestLoserBracketRoundsForFourPlayerDoubleElimination(t *testing.T) {
	seeding := newSeeding(t, 4)
	matches, err := engine.DoubleElimination(seeding)
	require.NoError(t, err)

	rounds := LoserBracketRounds(matches, 4)
	require.Len(t, rounds, 2)
	require.Len(t, rounds[0], 1)
	require.Len(t, rounds[1], 1)

	assert.Equal(t, domain.Seeds{3, 4}, rounds[0][0].Seeds)
	assert.Equal(t, domain.Seeds{2, 3}, rounds[1][0].Seeds)
}

func TestOfBuildsGrandFinalsForDoubleEliminationOnly(t *testing.T) {
	seeding := newSeeding(t, 4)

	se, err := engine.SingleElimination(seeding)
	require.NoError(t, err)
	seResult := Of(domain.Bracket{Seeding: seeding, Matches: se, Format: domain.SingleElimination})
	assert.Nil(t, seResult.LoserBracket)
	assert.Equal(t, domain.MatchID{}, seResult.GrandFinals.ID)

	de, err := engine.DoubleElimination(seeding)
	require.NoError(t, err)
	deResult := Of(domain.Bracket{Seeding: seeding, Matches: de, Format: domain.DoubleElimination})
	assert.NotNil(t, deResult.LoserBracket)
	assert.Equal(t, domain.Seeds{1, 2}, deResult.GrandFinals.Seeds)
	assert.Equal(t, domain.Seeds{1, 2}, deResult.GrandFinalsReset.Seeds)
}

func TestWinnerBracketLinesColumnHeightMatchesSpecFormula(t *testing.T) {
	seeding := newSeeding(t, 8)
	matches, err := engine.SingleElimination(seeding)
	require.NoError(t, err)

	rounds := WinnerBracketRounds(matches, 8)
	cells := WinnerBracketLines(rounds)
	require.Len(t, cells, len(rounds)-1)

	total := 0
	for _, r := range rounds {
		total += len(r)
	}
	boxesInColumn := engine.NextPowerOfTwo(total+1) / 2
	for _, row := range cells {
		assert.Len(t, row, boxesInColumn*2)
	}
}
