package progression

import "github.com/bracketeer/bracket/internal/domain"

// IsOver reports whether the bracket's final match (the single-elimination
// final, or the double-elimination grand-finals/reset pair) has a decided
// winner. For double elimination, a grand-finals win by the winner-bracket
// finalist ends the tournament without the reset ever being played.
func IsOver(b domain.Bracket) bool {
	if len(b.Matches) == 0 {
		return false
	}
	if b.Format != domain.DoubleElimination {
		return b.FinalMatch().IsOver()
	}

	gf := b.Matches[len(b.Matches)-2]
	reset := b.Matches[len(b.Matches)-1]
	if !gf.IsOver() {
		return false
	}
	if winnerSlot, ok := gf.SlotOf(mustWinner(gf)); ok && winnerSlot == 0 {
		return true
	}
	return reset.IsOver()
}

func mustWinner(m domain.Match) domain.PlayerID {
	p, _ := m.Winner().Player()
	return p
}

// IsDisqualified reports whether player has been assigned as an automatic
// loser anywhere in the bracket.
func IsDisqualified(b domain.Bracket, player domain.PlayerID) bool {
	return b.IsDisqualified(player)
}

// MatchesToPlay lists every match that currently needs playing.
func MatchesToPlay(b domain.Bracket) []domain.Match {
	var out []domain.Match
	for _, m := range b.Matches {
		if m.NeedsPlaying() {
			out = append(out, m)
		}
	}
	return out
}

// NextOpponent returns the opponent player currently faces and the ID of
// that match. Fails with PlayerNotInBracket, NoMatchesGenerated,
// Disqualified, NoNextMatch (player is undefeated with nothing left to
// play) or Eliminated.
func NextOpponent(b domain.Bracket, player domain.PlayerID) (domain.Opponent, domain.MatchID, error) {
	if !b.Seeding.Contains(player) {
		return domain.UnknownOpponent, domain.MatchID{}, domain.ErrPlayerNotInBracket
	}
	if len(b.Matches) == 0 {
		return domain.UnknownOpponent, domain.MatchID{}, domain.ErrNoMatchesGenerated
	}
	if b.IsDisqualified(player) {
		return domain.UnknownOpponent, domain.MatchID{}, domain.ErrDisqualified
	}

	m, ok := b.CurrentMatch(player)
	if !ok {
		if isChampion(b, player) {
			return domain.UnknownOpponent, domain.MatchID{}, domain.ErrNoNextMatch
		}
		return domain.UnknownOpponent, domain.MatchID{}, domain.ErrEliminated
	}

	slot, _ := m.SlotOf(player)
	return m.Players()[1-slot], m.ID(), nil
}

// isChampion reports whether player has already won the bracket outright.
// For double elimination this mirrors IsOver's handling of the grand-finals
// reset: a winner-bracket finalist who takes grand finals in one game is
// champion even though the reset match was never played.
func isChampion(b domain.Bracket, player domain.PlayerID) bool {
	if b.Format != domain.DoubleElimination {
		last := b.FinalMatch()
		winner, ok := last.Winner().Player()
		return ok && winner == player
	}

	gf := b.Matches[len(b.Matches)-2]
	reset := b.Matches[len(b.Matches)-1]
	if gf.IsOver() {
		if winner, ok := gf.Winner().Player(); ok && winner == player {
			if slot, sok := gf.SlotOf(winner); sok && slot == 0 {
				return true
			}
		}
	}
	winner, ok := reset.Winner().Player()
	return ok && winner == player
}
