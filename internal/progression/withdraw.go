package progression

import "github.com/bracketeer/bracket/internal/domain"

// Withdraw removes player from the bracket by disqualifying them from
// whatever match they currently occupy, cascading to any further match the
// withdrawal feeds into (SPEC_FULL §4.7). It is sugar over
// DisqualifyParticipant: a withdrawal and a disqualification have the same
// effect on the bracket, just a different reason in the caller's audit log.
func Withdraw(b domain.Bracket, player domain.PlayerID) (domain.Bracket, []domain.MatchID, error) {
	return DisqualifyParticipant(b, player)
}
