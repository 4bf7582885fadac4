package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracketeer/bracket/internal/domain"
	"github.com/bracketeer/bracket/internal/realtime"
	"github.com/bracketeer/bracket/internal/repository"
)

// mockBracketRepository is an in-memory stand-in for the Postgres-backed
// repository, mirroring the teacher's mockMatchRepository test-double shape
// (internal/service/match_test.go) but over the bracket-shaped interface.
type mockBracketRepository struct {
	mu   sync.Mutex
	data map[domain.BracketID]domain.Bracket
}

func newMockBracketRepository() *mockBracketRepository {
	return &mockBracketRepository{data: make(map[domain.BracketID]domain.Bracket)}
}

func (m *mockBracketRepository) Create(_ context.Context, b domain.Bracket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[b.ID] = b
	return nil
}

func (m *mockBracketRepository) Get(_ context.Context, id domain.BracketID) (domain.Bracket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[id]
	if !ok {
		return domain.Bracket{}, repository.ErrBracketNotFound
	}
	return b, nil
}

func (m *mockBracketRepository) WithLock(_ context.Context, id domain.BracketID, fn func(domain.Bracket) (domain.Bracket, error)) (domain.Bracket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before, ok := m.data[id]
	if !ok {
		return domain.Bracket{}, repository.ErrBracketNotFound
	}
	after, err := fn(before)
	if err != nil {
		return domain.Bracket{}, err
	}
	m.data[id] = after
	return after, nil
}

func (m *mockBracketRepository) Delete(_ context.Context, id domain.BracketID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[id]; !ok {
		return repository.ErrBracketNotFound
	}
	delete(m.data, id)
	return nil
}

func newTestRouter(t *testing.T) (http.Handler, *mockBracketRepository) {
	t.Helper()
	repo := newMockBracketRepository()
	hub := realtime.NewHub()
	go hub.Run()
	return NewRouter(repo, hub), repo
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	handler, _ := newTestRouter(t)
	rec := doJSON(t, handler, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateBracketAndAddParticipants(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/brackets/", map[string]any{
		"name":   "Weekly",
		"format": "single_elimination",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Bracket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.False(t, created.IsClosed)

	p1 := domain.NewPlayerID()
	rec = doJSON(t, handler, http.MethodPost, fmt.Sprintf("/brackets/%s/participants", created.ID), map[string]any{
		"player_id": p1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Bracket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Len(t, updated.Seeding, 1)
	assert.Equal(t, p1, updated.Seeding[0])
}

func TestStartBracketThenReportDrivesItToCompletion(t *testing.T) {
	handler, repo := newTestRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/brackets/", map[string]any{
		"name":                          "Weekly",
		"format":                        "single_elimination",
		"automatic_match_progression": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Bracket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	var seeding []domain.PlayerID
	for i := 0; i < 4; i++ {
		p := domain.NewPlayerID()
		seeding = append(seeding, p)
		rec = doJSON(t, handler, http.MethodPost, fmt.Sprintf("/brackets/%s/participants", created.ID), map[string]any{
			"player_id": p,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, fmt.Sprintf("/brackets/%s/start", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	b, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, b.AcceptMatchResults)
	require.Len(t, b.Matches, 3)

	// both round-1 matches, reported by both sides; AutomaticMatchProgression
	// auto-validates each as soon as the second agreeing report lands.
	for _, m := range b.Matches[:2] {
		p1, ok1 := m.Players()[0].Player()
		p2, ok2 := m.Players()[1].Player()
		require.True(t, ok1)
		require.True(t, ok2)

		rec = doJSON(t, handler, http.MethodPost, fmt.Sprintf("/brackets/%s/matches/report", created.ID), map[string]any{
			"player_id": p1,
			"own":       2,
			"opp":       0,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, handler, http.MethodPost, fmt.Sprintf("/brackets/%s/matches/report", created.ID), map[string]any{
			"player_id": p2,
			"own":       0,
			"opp":       2,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	final, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	finalMatch := final.FinalMatch()
	fp1, ok1 := finalMatch.Players()[0].Player()
	fp2, ok2 := finalMatch.Players()[1].Player()
	require.True(t, ok1)
	require.True(t, ok2)

	rec = doJSON(t, handler, http.MethodPost, fmt.Sprintf("/brackets/%s/matches/report", created.ID), map[string]any{
		"player_id": fp1,
		"own":       2,
		"opp":       0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, handler, http.MethodPost, fmt.Sprintf("/brackets/%s/matches/report", created.ID), map[string]any{
		"player_id": fp2,
		"own":       0,
		"opp":       2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	final, err = repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, final.FinalMatch().IsOver())
}

func TestOrganiserRoutesRejectWithoutBearerToken(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/brackets/", map[string]any{"name": "Weekly"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Bracket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, handler, http.MethodPost, fmt.Sprintf("/brackets/%s/participants/%s/disqualify", created.ID, domain.NewPlayerID()), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUnknownBracketReturnsNotFound(t *testing.T) {
	handler, _ := newTestRouter(t)
	rec := doJSON(t, handler, http.MethodGet, fmt.Sprintf("/brackets/%s", domain.NewBracketID()), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
