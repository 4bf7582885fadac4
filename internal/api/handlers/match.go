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

// MatchHandler serves the match-progression endpoints: reporting,
// validation, disqualification, withdrawal, reopening and the
// current-opponent query.
type MatchHandler struct {
	repo repository.BracketRepository
	hub  *realtime.Hub
}

// NewMatchHandler builds a MatchHandler over repo, broadcasting
// progression events to hub as they occur.
func NewMatchHandler(repo repository.BracketRepository, hub *realtime.Hub) *MatchHandler {
	return &MatchHandler{repo: repo, hub: hub}
}

type progressionResponse struct {
	Bracket       domain.Bracket   `json:"bracket"`
	MatchID       domain.MatchID   `json:"match_id,omitempty"`
	NewlyPlayable []domain.MatchID `json:"newly_playable,omitempty"`
}

// reopenResponse carries the matches a rollback touched, which is not the
// same thing as matches that became newly playable (reopen moves a
// resolved match back to pending; it does not open anything new).
type reopenResponse struct {
	Bracket        domain.Bracket   `json:"bracket"`
	MatchID        domain.MatchID   `json:"match_id"`
	TouchedMatches []domain.MatchID `json:"touched_matches,omitempty"`
}

type reportRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
	Own      int       `json:"own"`
	Opp      int       `json:"opp"`
}

func (h *MatchHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bracketID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bracket ID")
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var matchID domain.MatchID
	var wasOver bool
	updated, err := h.repo.WithLock(r.Context(), id, func(b domain.Bracket) (domain.Bracket, error) {
		wasOver = bracket.IsOver(b)
		out, mid, err := bracket.Report(b, req.PlayerID, domain.Score{Own: req.Own, Opp: req.Opp})
		matchID = mid
		return out, err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	metrics.RecordMatchReported(string(updated.Format), "player")
	recordCompletionIfOver(h.hub, updated, wasOver)

	writeJSON(w, 0, progressionResponse{Bracket: updated, MatchID: matchID})
}

type organiserReportRequest struct {
	Player1ID uuid.UUID `json:"player1_id"`
	Own       int       `json:"own"`
	Opp       int       `json:"opp"`
	Player2ID uuid.UUID `json:"player2_id"`
}

func (h *MatchHandler) OrganiserReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bracketID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bracket ID")
		return
	}

	var req organiserReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var matchID domain.MatchID
	var wasOver bool
	updated, err := h.repo.WithLock(r.Context(), id, func(b domain.Bracket) (domain.Bracket, error) {
		wasOver = bracket.IsOver(b)
		out, mid, err := bracket.TournamentOrganiserReport(b, req.Player1ID, domain.Score{Own: req.Own, Opp: req.Opp}, req.Player2ID)
		matchID = mid
		return out, err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	metrics.RecordMatchReported(string(updated.Format), "organiser")
	recordCompletionIfOver(h.hub, updated, wasOver)

	writeJSON(w, 0, progressionResponse{Bracket: updated, MatchID: matchID})
}

func (h *MatchHandler) Validate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bracketID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bracket ID")
		return
	}
	matchID, err := uuid.Parse(chi.URLParam(r, "matchID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid match ID")
		return
	}

	var newlyPlayable []domain.MatchID
	var wasOver bool
	updated, err := h.repo.WithLock(r.Context(), id, func(b domain.Bracket) (domain.Bracket, error) {
		wasOver = bracket.IsOver(b)
		out, np, err := bracket.Validate(b, matchID)
		newlyPlayable = np
		return out, err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.hub.PublishNewPlayable(id, newlyPlayable)
	recordCompletionIfOver(h.hub, updated, wasOver)

	writeJSON(w, 0, progressionResponse{Bracket: updated, MatchID: matchID, NewlyPlayable: newlyPlayable})
}

func (h *MatchHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bracketID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bracket ID")
		return
	}
	matchID, err := uuid.Parse(chi.URLParam(r, "matchID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid match ID")
		return
	}

	var touched []domain.MatchID
	updated, err := h.repo.WithLock(r.Context(), id, func(b domain.Bracket) (domain.Bracket, error) {
		out, t, err := bracket.ReopenMatch(b, matchID)
		touched = t
		return out, err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, 0, reopenResponse{Bracket: updated, MatchID: matchID, TouchedMatches: touched})
}

func (h *MatchHandler) Disqualify(w http.ResponseWriter, r *http.Request) {
	h.disqualifyOrWithdraw(w, r, bracket.Disqualify, "disqualified")
}

func (h *MatchHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.disqualifyOrWithdraw(w, r, bracket.Withdraw, "withdrawn")
}

func (h *MatchHandler) disqualifyOrWithdraw(w http.ResponseWriter, r *http.Request, op func(domain.Bracket, domain.PlayerID) (domain.Bracket, []domain.MatchID, error), reason string) {
	id, err := uuid.Parse(chi.URLParam(r, "bracketID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bracket ID")
		return
	}
	playerID, err := uuid.Parse(chi.URLParam(r, "playerID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player ID")
		return
	}

	var newlyPlayable []domain.MatchID
	var wasOver bool
	updated, err := h.repo.WithLock(r.Context(), id, func(b domain.Bracket) (domain.Bracket, error) {
		wasOver = bracket.IsOver(b)
		out, np, err := op(b, playerID)
		newlyPlayable = np
		return out, err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	forfeited := 0
	for _, m := range updated.Matches {
		if m.AutomaticLoser().IsPlayer(playerID) {
			forfeited++
		}
	}
	metrics.RecordDisqualificationCascade(string(updated.Format), reason, forfeited)
	h.hub.PublishNewPlayable(id, newlyPlayable)
	recordCompletionIfOver(h.hub, updated, wasOver)

	writeJSON(w, 0, progressionResponse{Bracket: updated, NewlyPlayable: newlyPlayable})
}

type nextOpponentResponse struct {
	Opponent *domain.PlayerID `json:"opponent,omitempty"`
	MatchID  domain.MatchID   `json:"match_id"`
}

func (h *MatchHandler) NextOpponent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bracketID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bracket ID")
		return
	}
	playerID, err := uuid.Parse(chi.URLParam(r, "playerID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player ID")
		return
	}

	b, err := h.repo.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	opponent, matchID, err := bracket.NextOpponent(b, playerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := nextOpponentResponse{MatchID: matchID}
	if p, ok := opponent.Player(); ok {
		resp.Opponent = &p
	}
	writeJSON(w, 0, resp)
}

func (h *MatchHandler) MatchesToPlay(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, 0, bracket.MatchesToPlay(b))
}
