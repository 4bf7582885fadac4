package progression

import (
	"errors"

	"github.com/bracketeer/bracket/internal/domain"
)

// DisqualifyParticipant sets automatic_loser on player's current unresolved
// match, validates it, and repeats on each subsequent match player appears
// in until they have no open match left (spec §4.3, §4.4). Returns the
// updated bracket and the IDs of matches that became playable.
func DisqualifyParticipant(b domain.Bracket, player domain.PlayerID) (domain.Bracket, []domain.MatchID, error) {
	if IsOver(b) {
		return b, nil, domain.ErrTournamentOver
	}

	matches := copyMatches(b)
	first := findOpenMatchIndex(matches, player)
	if first < 0 {
		if b.Seeding.Contains(player) {
			return b, nil, domain.ErrForbiddenDisqualified
		}
		return b, nil, domain.ErrPlayerNotInBracket
	}

	before := matchesToPlayIDs(b.Matches)
	n := len(b.Seeding)

	for idx := first; idx >= 0; idx = findOpenMatchIndex(matches, player) {
		matches[idx] = matches[idx].SetAutomaticLoser(player)
		if err := resolveAndPropagate(matches, n, b.Format, idx, true); err != nil && !errors.Is(err, domain.ErrMissingOpponent) {
			return b, nil, err
		}
	}

	out := b
	out.Matches = matches
	after := matchesToPlayIDs(out.Matches)
	return out, newlyPlayable(before, after), nil
}
