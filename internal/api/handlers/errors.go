package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bracketeer/bracket/internal/domain"
	"github.com/bracketeer/bracket/internal/repository"
)

// writeError writes a JSON {"error": message} body with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON encodes v as the response body with a 200 status, or the given
// status when non-zero.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	if status != 0 {
		w.WriteHeader(status)
	}
	json.NewEncoder(w).Encode(v)
}

// statusFor maps the domain's sentinel errors (spec §7) onto HTTP status
// codes. Unrecognized errors (anything not part of the taxonomy) are
// treated as internal failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrBracketNotFound),
		errors.Is(err, domain.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSamePlayer),
		errors.Is(err, domain.ErrUnknownPlayer),
		errors.Is(err, domain.ErrMissingOpponent),
		errors.Is(err, domain.ErrMissingReport),
		errors.Is(err, domain.ErrConflictingReports),
		errors.Is(err, domain.ErrMathOverflow),
		errors.Is(err, domain.ErrPlayerNotInBracket),
		errors.Is(err, domain.ErrTournamentOver),
		errors.Is(err, domain.ErrDisqualified),
		errors.Is(err, domain.ErrForbiddenDisqualified),
		errors.Is(err, domain.ErrNoMatchToPlay),
		errors.Is(err, domain.ErrNoNextMatch),
		errors.Is(err, domain.ErrEliminated),
		errors.Is(err, domain.ErrAlreadyPresent),
		errors.Is(err, domain.ErrClosed),
		errors.Is(err, domain.ErrDifferentParticipants),
		errors.Is(err, domain.ErrNotStarted),
		errors.Is(err, domain.ErrAlreadyStarted),
		errors.Is(err, domain.ErrNoMatchesGenerated),
		errors.Is(err, domain.ErrMatchNotOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError maps err to a status via statusFor and writes it.
func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}
