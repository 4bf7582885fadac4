package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Score is a pair of non-negative set/game counts: (own, opponent).
type Score struct {
	Own, Opp int
}

// Reverse swaps own and opponent, turning "my score" into "their score".
func (s Score) Reverse() Score {
	return Score{Own: s.Opp, Opp: s.Own}
}

// ReportedResult is an optional score, as reported by one of the two
// players in a match. The wire form is "X-Y" (e.g. "2-0").
type ReportedResult struct {
	Score Score
	set   bool
}

// NoResult is the zero-value ReportedResult: nothing has been reported yet.
var NoResult = ReportedResult{}

// NewReportedResult wraps a score as a present report.
func NewReportedResult(own, opp int) ReportedResult {
	return ReportedResult{Score: Score{Own: own, Opp: opp}, set: true}
}

// IsSet reports whether a result was actually reported.
func (r ReportedResult) IsSet() bool { return r.set }

// Reverse mirrors the result from the other player's point of view.
func (r ReportedResult) Reverse() ReportedResult {
	if !r.set {
		return r
	}
	return ReportedResult{Score: r.Score.Reverse(), set: true}
}

func (r ReportedResult) String() string {
	if !r.set {
		return "?"
	}
	return fmt.Sprintf("%d-%d", r.Score.Own, r.Score.Opp)
}

// ParseReportedResult parses the "X-Y" wire form.
func ParseReportedResult(s string) (ReportedResult, error) {
	l, r, ok := strings.Cut(s, "-")
	if !ok {
		return NoResult, fmt.Errorf("%q does not respect result format, expected 'X-Y'", s)
	}
	own, err := strconv.Atoi(strings.TrimSpace(l))
	if err != nil {
		return NoResult, fmt.Errorf("parsing own score: %w", err)
	}
	opp, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return NoResult, fmt.Errorf("parsing opponent score: %w", err)
	}
	return NewReportedResult(own, opp), nil
}
