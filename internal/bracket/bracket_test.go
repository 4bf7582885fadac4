package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracketeer/bracket/internal/domain"
)

func TestCreateReturnsOpenUnstartedBracket(t *testing.T) {
	b := Create("Weekly #12", domain.SingleElimination, domain.Strict, true)

	assert.NotEqual(t, domain.BracketID{}, b.ID)
	assert.Equal(t, "Weekly #12", b.Name)
	assert.Equal(t, domain.SingleElimination, b.Format)
	assert.True(t, b.AutomaticMatchProgression)
	assert.False(t, b.IsClosed)
	assert.False(t, b.AcceptMatchResults)
	assert.Empty(t, b.Seeding)
	assert.Empty(t, b.Matches)
}

func TestAddParticipantAppendsToSeeding(t *testing.T) {
	b := Create("T", domain.SingleElimination, domain.Strict, false)
	p1, p2 := domain.NewPlayerID(), domain.NewPlayerID()

	b, err := AddParticipant(b, p1)
	require.NoError(t, err)
	b, err = AddParticipant(b, p2)
	require.NoError(t, err)

	assert.Equal(t, domain.Seeding{p1, p2}, b.Seeding)
}

func TestAddParticipantRejectsDuplicate(t *testing.T) {
	b := Create("T", domain.SingleElimination, domain.Strict, false)
	p1 := domain.NewPlayerID()

	b, err := AddParticipant(b, p1)
	require.NoError(t, err)

	_, err = AddParticipant(b, p1)
	assert.ErrorIs(t, err, domain.ErrAlreadyPresent)
}

func TestAddParticipantRejectsOnClosedBracket(t *testing.T) {
	b := Create("T", domain.SingleElimination, domain.Strict, false)
	for i := 0; i < 4; i++ {
		var err error
		b, err = AddParticipant(b, domain.NewPlayerID())
		require.NoError(t, err)
	}
	b, _, err := Start(b)
	require.NoError(t, err)

	_, err = AddParticipant(b, domain.NewPlayerID())
	assert.ErrorIs(t, err, domain.ErrClosed)
}

func TestUpdateSeedingReordersRoster(t *testing.T) {
	b := Create("T", domain.SingleElimination, domain.Strict, false)
	p1, p2, p3 := domain.NewPlayerID(), domain.NewPlayerID(), domain.NewPlayerID()
	for _, p := range []domain.PlayerID{p1, p2, p3} {
		var err error
		b, err = AddParticipant(b, p)
		require.NoError(t, err)
	}

	b, err := UpdateSeeding(b, []domain.PlayerID{p3, p1, p2})
	require.NoError(t, err)
	assert.Equal(t, domain.Seeding{p3, p1, p2}, b.Seeding)
}

func TestUpdateSeedingRejectsAfterStart(t *testing.T) {
	b := Create("T", domain.SingleElimination, domain.Strict, false)
	var seeding []domain.PlayerID
	for i := 0; i < 4; i++ {
		p := domain.NewPlayerID()
		seeding = append(seeding, p)
		var err error
		b, err = AddParticipant(b, p)
		require.NoError(t, err)
	}
	b, _, err := Start(b)
	require.NoError(t, err)

	_, err = UpdateSeeding(b, seeding)
	assert.ErrorIs(t, err, domain.ErrAlreadyStarted)
}

func TestUpdateSeedingRejectsUnknownPlayer(t *testing.T) {
	b := Create("T", domain.SingleElimination, domain.Strict, false)
	p1, p2 := domain.NewPlayerID(), domain.NewPlayerID()
	b, err := AddParticipant(b, p1)
	require.NoError(t, err)
	b, err = AddParticipant(b, p2)
	require.NoError(t, err)

	_, err = UpdateSeeding(b, []domain.PlayerID{p1, domain.NewPlayerID()})
	assert.ErrorIs(t, err, domain.ErrDifferentParticipants)
}

func TestUpdateSeedingRejectsDuplicateInList(t *testing.T) {
	b := Create("T", domain.SingleElimination, domain.Strict, false)
	p1, p2 := domain.NewPlayerID(), domain.NewPlayerID()
	b, err := AddParticipant(b, p1)
	require.NoError(t, err)
	b, err = AddParticipant(b, p2)
	require.NoError(t, err)

	_, err = UpdateSeeding(b, []domain.PlayerID{p1, p1})
	assert.ErrorIs(t, err, domain.ErrAlreadyPresent)
}

func TestStartGeneratesMatchesAndClosesBracket(t *testing.T) {
	b := Create("T", domain.SingleElimination, domain.Strict, false)
	for i := 0; i < 4; i++ {
		var err error
		b, err = AddParticipant(b, domain.NewPlayerID())
		require.NoError(t, err)
	}

	b, playable, err := Start(b)
	require.NoError(t, err)
	assert.True(t, b.IsClosed)
	assert.True(t, b.AcceptMatchResults)
	assert.Len(t, b.Matches, 3)
	assert.Len(t, playable, 2)
}

func TestStartFailsWithoutEnoughParticipants(t *testing.T) {
	b := Create("T", domain.SingleElimination, domain.Strict, false)
	p1 := domain.NewPlayerID()
	b, err := AddParticipant(b, p1)
	require.NoError(t, err)

	_, _, err = Start(b)
	assert.Error(t, err)
}

func TestStartRejectsDoubleStart(t *testing.T) {
	b := Create("T", domain.SingleElimination, domain.Strict, false)
	for i := 0; i < 4; i++ {
		var err error
		b, err = AddParticipant(b, domain.NewPlayerID())
		require.NoError(t, err)
	}
	b, _, err := Start(b)
	require.NoError(t, err)

	_, _, err = Start(b)
	assert.ErrorIs(t, err, domain.ErrAlreadyStarted)
}

func TestStartGeneratesDoubleEliminationBracket(t *testing.T) {
	b := Create("T", domain.DoubleElimination, domain.Strict, false)
	for i := 0; i < 4; i++ {
		var err error
		b, err = AddParticipant(b, domain.NewPlayerID())
		require.NoError(t, err)
	}

	b, _, err := Start(b)
	require.NoError(t, err)
	assert.Len(t, b.Matches, 7)
}
