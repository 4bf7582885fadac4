package progression

import (
	"errors"

	"github.com/bracketeer/bracket/internal/domain"
)

// ReportResult locates the unique unresolved match containing player and
// records their reported score (spec §4.3). With AutomaticMatchProgression
// off, this is as far as it goes — see ValidateMatchResult for the
// separate, explicit resolution step. With the flag on, a report that now
// agrees with the opposing slot's existing report validates immediately
// (spec §9 Design Note 3).
func ReportResult(b domain.Bracket, player domain.PlayerID, score domain.Score) (domain.Bracket, domain.MatchID, error) {
	if IsOver(b) {
		return b, domain.MatchID{}, domain.ErrTournamentOver
	}
	if !b.Seeding.Contains(player) {
		return b, domain.MatchID{}, domain.ErrPlayerNotInBracket
	}
	if b.IsDisqualified(player) {
		return b, domain.MatchID{}, domain.ErrDisqualified
	}

	idx := findPlayableMatchIndex(b.Matches, player)
	if idx < 0 {
		return b, domain.MatchID{}, domain.ErrNoMatchToPlay
	}

	updated, err := b.Matches[idx].RecordReport(player, score)
	if err != nil {
		return b, domain.MatchID{}, err
	}
	matchID := updated.ID()

	return autoValidate(b.WithMatch(updated), matchID)
}

// TournamentOrganiserReportsResult clears any previous reports on p1 and
// p2's shared match, then records p1's score and p2's mirrored score
// (spec §4.3).
func TournamentOrganiserReportsResult(b domain.Bracket, p1 domain.PlayerID, score domain.Score, p2 domain.PlayerID) (domain.Bracket, domain.MatchID, error) {
	if IsOver(b) {
		return b, domain.MatchID{}, domain.ErrTournamentOver
	}
	var shared domain.Match
	found := false
	for _, m := range b.MatchesContaining(p1) {
		if m.Contains(p2) && !m.IsOver() {
			shared = m
			found = true
			break
		}
	}
	if !found {
		return b, domain.MatchID{}, domain.ErrNoMatchToPlay
	}

	m := shared.ClearReports()
	m, err := m.RecordReport(p1, score)
	if err != nil {
		return b, domain.MatchID{}, err
	}
	m, err = m.RecordReport(p2, score.Reverse())
	if err != nil {
		return b, domain.MatchID{}, err
	}
	matchID := m.ID()

	return autoValidate(b.WithMatch(m), matchID)
}

// ValidateMatchResult invokes update_outcome on matchID and, on success,
// propagates the winner (and, for double elimination, the loser) to their
// next matches. Returns the updated bracket and the IDs of matches that
// became playable as a result (spec §4.3).
func ValidateMatchResult(b domain.Bracket, matchID domain.MatchID) (domain.Bracket, []domain.MatchID, error) {
	idx := b.MatchIndex(matchID)
	if idx < 0 {
		return b, nil, domain.ErrMatchNotFound
	}

	before := matchesToPlayIDs(b.Matches)
	matches := copyMatches(b)

	if err := resolveAndPropagate(matches, len(b.Seeding), b.Format, idx, false); err != nil {
		return b, nil, err
	}

	out := b
	out.Matches = matches
	after := matchesToPlayIDs(out.Matches)
	return out, newlyPlayable(before, after), nil
}

// autoValidate runs ValidateMatchResult's resolution logic on matchID when
// the bracket has AutomaticMatchProgression set and both sides have now
// reported, so a report that completes a pair of agreeing scores resolves
// the match on the spot instead of waiting for a separate validate call
// (spec §9 Design Note 3). A match with both slots reported but disagreeing
// scores is left alone — that is the organiser's dispute to resolve, not an
// error to surface back through ReportResult.
func autoValidate(b domain.Bracket, matchID domain.MatchID) (domain.Bracket, domain.MatchID, error) {
	if !b.AutomaticMatchProgression {
		return b, matchID, nil
	}
	idx := b.MatchIndex(matchID)
	if idx < 0 || !b.Matches[idx].HasAllReports() {
		return b, matchID, nil
	}

	matches := copyMatches(b)
	if err := resolveAndPropagate(matches, len(b.Seeding), b.Format, idx, false); err != nil {
		if errors.Is(err, domain.ErrConflictingReports) {
			return b, matchID, nil
		}
		return b, matchID, err
	}

	out := b
	out.Matches = matches
	return out, matchID, nil
}
