package domain

import "errors"

// Error taxonomy per spec §7. Operations a caller can legitimately trigger
// return one of these (possibly wrapped with fmt.Errorf("%w: ...") for
// context); invariant violations that should never happen from valid
// engine use panic instead (see Match.SetPlayer, Match.SetAutomaticLoser).
var (
	ErrSamePlayer           = errors.New("cannot use the same player in both match slots")
	ErrUnknownPlayer        = errors.New("player is not a participant of this match")
	ErrMissingOpponent      = errors.New("opposing slot is not yet filled")
	ErrMissingReport        = errors.New("match has not received reports from both players")
	ErrConflictingReports   = errors.New("reported results do not agree on a winner")
	ErrMathOverflow         = errors.New("participant count exceeds supported limit")
	ErrPlayerNotInBracket   = errors.New("player is not in this bracket")
	ErrTournamentOver       = errors.New("bracket is already over")
	ErrDisqualified         = errors.New("player has been disqualified")
	ErrForbiddenDisqualified = errors.New("cannot disqualify: player has no current match to forfeit")
	ErrNoMatchToPlay        = errors.New("player has no pending match")
	ErrNoNextMatch          = errors.New("player is already the champion")
	ErrEliminated           = errors.New("player has been eliminated")
	ErrAlreadyPresent       = errors.New("player is already registered in this bracket")
	ErrClosed               = errors.New("bracket is closed to new participants")
	ErrDifferentParticipants = errors.New("seeding does not match the bracket's current roster")
	ErrNotStarted           = errors.New("bracket has not been started")
	ErrAlreadyStarted       = errors.New("bracket has already been started")
	ErrNoMatchesGenerated   = errors.New("seeding produced no matches")
	ErrMatchNotFound        = errors.New("match not found in bracket")
	ErrMatchNotOver         = errors.New("match has not been resolved yet")
)
