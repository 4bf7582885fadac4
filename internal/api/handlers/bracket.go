package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bracketeer/bracket/internal/bracket"
	"github.com/bracketeer/bracket/internal/domain"
	"github.com/bracketeer/bracket/internal/metrics"
	"github.com/bracketeer/bracket/internal/realtime"
	"github.com/bracketeer/bracket/internal/repository"
)

// BracketHandler serves the bracket lifecycle endpoints: create, roster
// management, start, and read access to a bracket and its layout.
type BracketHandler struct {
	repo repository.BracketRepository
	hub  *realtime.Hub
}

// NewBracketHandler builds a BracketHandler over repo, broadcasting
// progression events to hub as they occur.
func NewBracketHandler(repo repository.BracketRepository, hub *realtime.Hub) *BracketHandler {
	return &BracketHandler{repo: repo, hub: hub}
}

type createBracketRequest struct {
	Name                 string `json:"name"`
	Format               string `json:"format"`
	SeedingMethod        string `json:"seeding_method"`
	AutomaticProgression bool   `json:"automatic_match_progression"`
}

func (h *BracketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBracketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	format := domain.Format(req.Format)
	if format == "" {
		format = domain.SingleElimination
	}
	seedingMethod := domain.SeedingMethod(req.SeedingMethod)
	if seedingMethod == "" {
		seedingMethod = domain.Strict
	}

	b := bracket.Create(req.Name, format, seedingMethod, req.AutomaticProgression)
	if err := h.repo.Create(r.Context(), b); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

func (h *BracketHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bracketID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bracket ID")
		return
	}

	b, err := h.repo.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, 0, b)
}

func (h *BracketHandler) Layout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bracketID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bracket ID")
		return
	}

	b, err := h.repo.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, 0, bracket.Layout(b))
}

func (h *BracketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bracketID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bracket ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addParticipantRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
}

func (h *BracketHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bracketID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bracket ID")
		return
	}

	var req addParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.repo.WithLock(r.Context(), id, func(b domain.Bracket) (domain.Bracket, error) {
		return bracket.AddParticipant(b, req.PlayerID)
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, 0, updated)
}

type updateSeedingRequest struct {
	OrderedPlayerIDs []uuid.UUID `json:"ordered_player_ids"`
}

func (h *BracketHandler) UpdateSeeding(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bracketID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bracket ID")
		return
	}

	var req updateSeedingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.repo.WithLock(r.Context(), id, func(b domain.Bracket) (domain.Bracket, error) {
		return bracket.UpdateSeeding(b, req.OrderedPlayerIDs)
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, 0, updated)
}

type startBracketResponse struct {
	Bracket         domain.Bracket   `json:"bracket"`
	PlayableMatches []domain.MatchID `json:"playable_matches"`
}

func (h *BracketHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bracketID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bracket ID")
		return
	}

	var playable []domain.MatchID
	updated, err := h.repo.WithLock(r.Context(), id, func(b domain.Bracket) (domain.Bracket, error) {
		out, p, err := bracket.Start(b)
		playable = p
		return out, err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.hub.PublishNewPlayable(id, playable)

	writeJSON(w, 0, startBracketResponse{Bracket: updated, PlayableMatches: playable})
}

// recordCompletionIfOver increments the bracket-completions counter and
// broadcasts a bracket_over event the first time b reports as finished.
// Handlers call this after every mutation that could crown a champion.
func recordCompletionIfOver(hub *realtime.Hub, b domain.Bracket, wasOverBefore bool) {
	if wasOverBefore || !bracket.IsOver(b) {
		return
	}
	metrics.RecordBracketCompletion(string(b.Format))
	hub.PublishBracketOver(b.ID)
}
