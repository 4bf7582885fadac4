package bracket

import (
	"github.com/bracketeer/bracket/internal/domain"
	"github.com/bracketeer/bracket/internal/engine"
	"github.com/bracketeer/bracket/internal/layout"
	"github.com/bracketeer/bracket/internal/progression"
)

// Report records player's score for whatever unresolved match they
// currently occupy, auto-validating it when the bracket's
// AutomaticMatchProgression flag allows it (spec §6 report).
func Report(b domain.Bracket, player domain.PlayerID, score domain.Score) (domain.Bracket, domain.MatchID, error) {
	return progression.ReportResult(b, player, score)
}

// TournamentOrganiserReport clears and re-records both sides of p1 and p2's
// shared match at once, on the organiser's authority (spec §6
// tournament_organiser_report).
func TournamentOrganiserReport(b domain.Bracket, p1 domain.PlayerID, score domain.Score, p2 domain.PlayerID) (domain.Bracket, domain.MatchID, error) {
	return progression.TournamentOrganiserReportsResult(b, p1, score, p2)
}

// Validate resolves matchID from its recorded reports and propagates the
// result forward, returning the IDs of matches that became newly playable
// (spec §6 validate).
func Validate(b domain.Bracket, matchID domain.MatchID) (domain.Bracket, []domain.MatchID, error) {
	return progression.ValidateMatchResult(b, matchID)
}

// Disqualify forfeits every match player currently has left to play,
// cascading the forced loss forward through the bracket (spec §6
// disqualify, §4.3/§4.4).
func Disqualify(b domain.Bracket, player domain.PlayerID) (domain.Bracket, []domain.MatchID, error) {
	return progression.DisqualifyParticipant(b, player)
}

// Withdraw is sugar over Disqualify for a participant leaving of their own
// accord rather than being forced out (SPEC_FULL §4.7).
func Withdraw(b domain.Bracket, player domain.PlayerID) (domain.Bracket, []domain.MatchID, error) {
	return progression.Withdraw(b, player)
}

// ReopenMatch clears a resolved match's outcome and rolls back anything
// that had already advanced downstream of it (SPEC_FULL §4.6).
func ReopenMatch(b domain.Bracket, matchID domain.MatchID) (domain.Bracket, []domain.MatchID, error) {
	return progression.ReopenMatch(b, matchID)
}

// NextOpponent returns the opponent player currently faces, and the ID of
// that match (spec §6 next_opponent).
func NextOpponent(b domain.Bracket, player domain.PlayerID) (domain.Opponent, domain.MatchID, error) {
	return progression.NextOpponent(b, player)
}

// IsOver reports whether the bracket has produced a champion (spec §6 is_over).
func IsOver(b domain.Bracket) bool {
	return progression.IsOver(b)
}

// IsDisqualified reports whether player has been disqualified from this
// bracket (spec §6 is_disqualified).
func IsDisqualified(b domain.Bracket, player domain.PlayerID) bool {
	return progression.IsDisqualified(b, player)
}

// MatchesToPlay lists every match currently awaiting a result (spec §6
// matches_to_play).
func MatchesToPlay(b domain.Bracket) []domain.Match {
	return progression.MatchesToPlay(b)
}

// PartitionWinnerBracket returns b's winner-bracket matches in play order
// (spec §6 partition_winner_bracket).
func PartitionWinnerBracket(b domain.Bracket) []domain.Match {
	return engine.PartitionWinnerBracket(b.Matches, len(b.Seeding))
}

// PartitionLoserBracket returns b's loser-bracket matches in play order;
// empty for single elimination (spec §6 partition_loser_bracket).
func PartitionLoserBracket(b domain.Bracket) []domain.Match {
	if b.Format != domain.DoubleElimination {
		return nil
	}
	return engine.PartitionLoserBracket(b.Matches, len(b.Seeding))
}

// GrandFinalsAndReset returns b's grand-finals match and its reset; the
// zero Match for single elimination (spec §6 grand_finals_and_reset).
func GrandFinalsAndReset(b domain.Bracket) (grandFinals, reset domain.Match) {
	if b.Format != domain.DoubleElimination {
		return domain.Match{}, domain.Match{}
	}
	return engine.GrandFinalsAndReset(b.Matches)
}

// Layout builds b's full rendering projection: round partitioning, row
// hints and connecting-line grids for both brackets (spec §4.5, §6).
func Layout(b domain.Bracket) layout.Result {
	return layout.Of(b)
}
