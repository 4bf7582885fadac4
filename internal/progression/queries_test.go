package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracketeer/bracket/internal/domain"
)

func TestNextOpponentTracksCurrentMatch(t *testing.T) {
	b, seeding := newSingleEliminationBracket(t, 4)
	p1, p2, p3, p4 := seeding[0], seeding[1], seeding[2], seeding[3]

	opp, _, err := NextOpponent(b, p1)
	require.NoError(t, err)
	player, ok := opp.Player()
	require.True(t, ok)
	assert.Equal(t, p4, player)

	b = playOut(t, b, p2, p3)
	b = playOut(t, b, p1, p4)

	opp, _, err = NextOpponent(b, p1)
	require.NoError(t, err)
	player, _ = opp.Player()
	assert.Equal(t, p2, player)

	_, _, err = NextOpponent(b, p4)
	assert.ErrorIs(t, err, domain.ErrEliminated)
}

func TestNextOpponentChampionHasNoNextMatch(t *testing.T) {
	b, seeding := newSingleEliminationBracket(t, 4)
	p1, p2, p3, p4 := seeding[0], seeding[1], seeding[2], seeding[3]

	b = playOut(t, b, p1, p4)
	b = playOut(t, b, p2, p3)
	b = playOut(t, b, p1, p2)

	_, _, err := NextOpponent(b, p1)
	assert.ErrorIs(t, err, domain.ErrNoNextMatch)
}

func TestNextOpponentRejectsUnknownPlayer(t *testing.T) {
	b, _ := newSingleEliminationBracket(t, 4)
	_, _, err := NextOpponent(b, domain.NewPlayerID())
	assert.ErrorIs(t, err, domain.ErrPlayerNotInBracket)
}

func TestNextOpponentRejectsDisqualifiedPlayer(t *testing.T) {
	b, seeding := newSingleEliminationBracket(t, 4)
	p4 := seeding[3]

	b, _, err := DisqualifyParticipant(b, p4)
	require.NoError(t, err)

	_, _, err = NextOpponent(b, p4)
	assert.ErrorIs(t, err, domain.ErrDisqualified)
}

func TestMatchesToPlayOnlyListsPlayableMatches(t *testing.T) {
	b, seeding := newSingleEliminationBracket(t, 4)
	p1, p4 := seeding[0], seeding[3]

	playable := MatchesToPlay(b)
	assert.Len(t, playable, 2, "both semifinals are open, the final isn't seeded yet")

	b = playOut(t, b, p1, p4)
	playable = MatchesToPlay(b)
	assert.Len(t, playable, 1)
}

func TestIsOverSingleElimination(t *testing.T) {
	b, seeding := newSingleEliminationBracket(t, 4)
	p1, p2, p3, p4 := seeding[0], seeding[1], seeding[2], seeding[3]

	assert.False(t, IsOver(b))
	b = playOut(t, b, p1, p4)
	assert.False(t, IsOver(b))
	b = playOut(t, b, p2, p3)
	assert.False(t, IsOver(b))
	b = playOut(t, b, p1, p2)
	assert.True(t, IsOver(b))
}
