package layout

import "github.com/bracketeer/bracket/internal/engine"

// lines builds the connecting-line grid between every adjacent round pair
// in rounds (spec §4.5), ported from
// original_source/totsugeki-display/src/loser_bracket/mod.rs's `lines`.
// loserBracket gates the two loser-bracket-only special cases: the first
// wave's straight horizontal hand-off when the bracket has an even number
// of loser-bracket rounds, and dividing the round depth by two when
// computing connector offsets (a loser-bracket "round" as stored here is
// half of a winner-bracket round's structural depth, since two loser-bracket
// rounds make up one wave).
func lines(rounds [][]MinimalMatch, loserBracket bool) [][]BoxElement {
	if len(rounds) == 0 {
		return nil
	}

	total := 0
	for _, r := range rounds {
		total += len(r)
	}
	boxesInColumn := engine.NextPowerOfTwo(total+1) / 2
	if boxesInColumn < 1 {
		boxesInColumn = 1
	}

	var out [][]BoxElement
	for roundIndex := 0; roundIndex < len(rounds)-1; roundIndex++ {
		round := rounds[roundIndex]
		next := rounds[roundIndex+1]

		switch {
		case loserBracket && roundIndex == 0 && len(rounds)%2 == 0:
			out = append(out, firstLoserRoundLines(round))
		case len(round) == len(next):
			out = append(out, equalSizeLines(round))
		default:
			depth := roundIndex
			if loserBracket {
				depth = roundIndex / 2
			}
			out = append(out, offsetLines(round, boxesInColumn, depth, total))
		}
	}
	return out
}

// firstLoserRoundLines draws a straight horizontal hand-off out of the
// loser bracket's opening wave, for brackets whose loser bracket has an
// even round count (so the opening wave feeds a same-or-larger next round).
func firstLoserRoundLines(round []MinimalMatch) []BoxElement {
	left := make([]BoxElement, 0, len(round)*2)
	right := make([]BoxElement, 0, len(round)*2)
	for range round {
		left = append(left, BoxElement{}, BoxElement{})
		right = append(right, BoxElement{}, BoxElement{})
	}
	for _, m := range round {
		if m.RowHint == nil {
			continue
		}
		hint := *m.RowHint
		setBottomBorder(left, hint*2)
		setBottomBorder(right, hint*2)
	}
	return append(left, right...)
}

// equalSizeLines draws straight horizontal lines for a round-pair that
// hands off one-for-one into the next round (same match count both sides).
func equalSizeLines(round []MinimalMatch) []BoxElement {
	out := make([]BoxElement, 0, len(round)*4)
	for range round {
		out = append(out,
			BoxElement{BottomBorder: true},
			BoxElement{},
			BoxElement{BottomBorder: true},
			BoxElement{},
		)
	}
	return out
}

// offsetLines is the general case: a round that feeds into half as many
// matches next round, each pair of siblings joining into one parent via a
// vertical (left-border) line that meets a horizontal (bottom-border) line
// leaving the parent.
func offsetLines(round []MinimalMatch, boxesInColumn, depth, total int) []BoxElement {
	matchesInRound := engine.NextPowerOfTwo(len(round))
	if matchesInRound == 0 {
		return nil
	}

	left := make([]BoxElement, boxesInColumn)
	right := make([]BoxElement, boxesInColumn)

	for i, m := range round {
		if m.RowHint == nil {
			continue
		}
		row := *m.RowHint
		between := boxesInColumn / matchesInRound
		offset := 1 << uint(depth)

		if total == 2 {
			setBottomBorder(left, 2)
		} else {
			setBottomBorder(left, row*between+offset-1)
		}

		for j := 0; j < offset; j++ {
			if row%2 == 1 {
				setLeftBorder(right, row*between+3*offset-1-j-between)
			} else {
				setLeftBorder(right, row*between+2*offset-1-j)
			}
		}

		switch {
		case total == 2:
			setBottomBorder(right, 1)
		case row%2 == 1:
			setBottomBorder(right, row*between+offset-1-between/2)
		case i%2 == 1:
			setBottomBorder(right, row*between+offset+1-between/2)
		}
	}

	return append(left, right...)
}

func setBottomBorder(boxes []BoxElement, idx int) {
	if idx < 0 || idx >= len(boxes) {
		return
	}
	boxes[idx].BottomBorder = true
}

func setLeftBorder(boxes []BoxElement, idx int) {
	if idx < 0 || idx >= len(boxes) {
		return
	}
	boxes[idx].LeftBorder = true
}
