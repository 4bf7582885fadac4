// Package layout turns a generated match list into the shapes a frontend
// renders a bracket with: matches grouped into rounds, each real match given
// a positional row hint, and a grid of connecting-line cells between
// adjacent rounds (spec §4.5). Nothing here mutates a domain.Bracket; it is
// a read-only projection, run after generation or any progression step.
package layout

import (
	"github.com/bracketeer/bracket/internal/domain"
	"github.com/bracketeer/bracket/internal/engine"
)

// MinimalMatch is the rendering projection of a domain.Match: its expected
// seeds, current occupants, reported score (from slot 0's perspective, wire
// form "X-Y"), and a row hint once one has been assigned. A zero-value
// MinimalMatch (RowHint nil, Seeds {0,0}) is a padding placeholder inserted
// so every column in the visual grid has the same number of slots.
type MinimalMatch struct {
	ID      domain.MatchID
	Seeds   domain.Seeds
	Players [2]domain.Opponent
	Score   string
	RowHint *int
}

// IsPlaceholder reports whether m is padding rather than a real match.
func (m MinimalMatch) IsPlaceholder() bool {
	return m.RowHint == nil
}

// BoxElement is one cell of the connecting-line grid between two adjacent
// rounds. A bottom border traces the horizontal segment leaving a match; a
// left border traces the vertical segment joining two siblings into their
// parent.
type BoxElement struct {
	LeftBorder   bool
	BottomBorder bool
}

func newMinimalMatch(m domain.Match) MinimalMatch {
	score := ""
	if m.IsOver() {
		score = m.ReportedResults()[0].String()
	}
	return MinimalMatch{
		ID:      m.ID(),
		Seeds:   m.Seeds(),
		Players: m.Players(),
		Score:   score,
	}
}

func toMinimalMatches(matches []domain.Match) []MinimalMatch {
	out := make([]MinimalMatch, len(matches))
	for i, m := range matches {
		out[i] = newMinimalMatch(m)
	}
	return out
}

// chunk splits flat, round-major matches into per-round slices according to
// sizes, in order. Any matches left over after sizes is exhausted are
// dropped into a trailing round of their own, rather than silently lost —
// callers pass sizes derived from the same n that produced matches, so this
// only triggers on a caller error.
func chunk(matches []MinimalMatch, sizes []int) [][]MinimalMatch {
	rounds := make([][]MinimalMatch, 0, len(sizes))
	pos := 0
	for _, size := range sizes {
		end := pos + size
		if end > len(matches) {
			end = len(matches)
		}
		rounds = append(rounds, matches[pos:end])
		pos = end
	}
	if pos < len(matches) {
		rounds = append(rounds, matches[pos:])
	}
	return rounds
}

// GrandFinals renders the grand-finals match and its reset as standalone
// MinimalMatch values (double elimination only); neither carries a row hint,
// since they sit outside both bracket grids.
func GrandFinals(grandFinals, reset domain.Match) (MinimalMatch, MinimalMatch) {
	return newMinimalMatch(grandFinals), newMinimalMatch(reset)
}

// Result is the full rendering projection of a bracket: its winner-bracket
// rounds and connecting lines, and — for double elimination — its
// loser-bracket rounds and lines plus the grand-finals pair.
type Result struct {
	WinnerBracket      [][]MinimalMatch
	WinnerBracketLines [][]BoxElement
	LoserBracket       [][]MinimalMatch
	LoserBracketLines  [][]BoxElement
	GrandFinals        MinimalMatch
	GrandFinalsReset   MinimalMatch
}

// Of builds the full Result for b (spec §4.5). Single-elimination brackets
// return a zero-value LoserBracket/LoserBracketLines/GrandFinals.
func Of(b domain.Bracket) Result {
	n := len(b.Seeding)
	wbRounds := WinnerBracketRounds(b.Matches, n)
	result := Result{
		WinnerBracket:      wbRounds,
		WinnerBracketLines: WinnerBracketLines(wbRounds),
	}

	if b.Format != domain.DoubleElimination {
		return result
	}

	lbRounds := LoserBracketRounds(b.Matches, n)
	result.LoserBracket = lbRounds
	result.LoserBracketLines = LoserBracketLines(lbRounds)
	gf, reset := engine.GrandFinalsAndReset(b.Matches)
	result.GrandFinals, result.GrandFinalsReset = GrandFinals(gf, reset)
	return result
}
