package betting

import (
	"fmt"
	"time"
)

// BetType represents a player betting intent.
type BetType int

const (
	Fold BetType = iota
	Check
	Call
	Raise
	AllIn
)

func (t BetType) String() string {
	return [...]string{"fold", "check", "call", "raise", "allin"}[t]
}

// Action is an immutable record of a single betting action. For Raise the
// amount is the total the player is raising to; for AllIn it is the total
// the player ends up committed for this round.
type Action struct {
	PlayerID    string
	Type        BetType
	Amount      int
	Timestamp   time.Time
	Description string
	Metadata    map[string]any
}

// NewAction builds a validated action. Malformed combinations are caller
// bugs: Fold and Check take no amount, Raise and AllIn require a positive
// one. Call carries amount 0; the engine derives the chips to move.
func NewAction(playerID string, t BetType, amount int, ts time.Time) Action {
	if playerID == "" {
		panic("betting: action requires a player id")
	}
	if amount < 0 {
		panic(fmt.Sprintf("betting: action amount must not be negative, got %d", amount))
	}
	switch t {
	case Fold, Check:
		if amount != 0 {
			panic(fmt.Sprintf("betting: %s takes no amount, got %d", t, amount))
		}
	case Raise, AllIn:
		if amount <= 0 {
			panic(fmt.Sprintf("betting: %s requires a positive amount, got %d", t, amount))
		}
	}
	return Action{
		PlayerID:  playerID,
		Type:      t,
		Amount:    amount,
		Timestamp: ts,
	}
}

// IsAggressive reports whether the action increases the bet.
func (a Action) IsAggressive() bool {
	return a.Type == Raise || a.Type == AllIn
}

// MovesChips reports whether the action involves a chip movement.
func (a Action) MovesChips() bool {
	return a.Type == Call || a.Type == Raise || a.Type == AllIn
}
