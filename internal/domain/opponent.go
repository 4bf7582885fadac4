package domain

// Opponent is a tagged value occupying a match slot: either a known player
// or Unknown, meaning the slot is not yet filled (a future round) or has no
// entry (a bye).
type Opponent struct {
	player PlayerID
	known  bool
}

// UnknownOpponent is the zero-value Opponent: no slot filled.
var UnknownOpponent = Opponent{}

// PlayerOpponent wraps a player ID as a known opponent.
func PlayerOpponent(id PlayerID) Opponent {
	return Opponent{player: id, known: true}
}

// IsUnknown reports whether the slot has no player assigned.
func (o Opponent) IsUnknown() bool {
	return !o.known
}

// IsPlayer reports whether the slot holds the given player.
func (o Opponent) IsPlayer(id PlayerID) bool {
	return o.known && o.player == id
}

// Player returns the underlying player ID and true if the opponent is known.
func (o Opponent) Player() (PlayerID, bool) {
	return o.player, o.known
}

// Equal reports whether two opponents refer to the same slot value.
func (o Opponent) Equal(other Opponent) bool {
	if o.known != other.known {
		return false
	}
	return !o.known || o.player == other.player
}

func (o Opponent) String() string {
	if !o.known {
		return "?"
	}
	return o.player.String()
}
