// Package domain holds the core value types of the bracket engine:
// identifiers, opponents, matches, seedings and the bracket itself. Nothing
// in this package touches I/O; persistence and transport live elsewhere.
package domain

import "github.com/google/uuid"

// PlayerID uniquely identifies a participant across brackets.
type PlayerID = uuid.UUID

// MatchID uniquely identifies one node of a bracket's match tree.
type MatchID = uuid.UUID

// BracketID uniquely identifies a bracket.
type BracketID = uuid.UUID

// NewPlayerID generates a fresh player identifier.
func NewPlayerID() PlayerID { return uuid.New() }

// NewMatchID generates a fresh match identifier.
func NewMatchID() MatchID { return uuid.New() }

// NewBracketID generates a fresh bracket identifier.
func NewBracketID() BracketID { return uuid.New() }
