package betting

import (
	"testing"
	"time"

	"github.com/lox/chipcore/internal/chips"
)

func TestValidateAction(t *testing.T) {
	t.Parallel()

	ledger := chips.NewLedger(map[string]int{
		"rich": 1000,
		"poor": 15,
	})
	now := time.Now()

	tests := []struct {
		name       string
		action     Action
		currentBet int
		minRaise   int
		playerBet  int
		wantOK     bool
		wantRule   string
	}{
		{
			name:   "fold always valid",
			action: NewAction("rich", Fold, 0, now),
			wantOK: true,
		},
		{
			name:       "check with matched bet",
			action:     NewAction("rich", Check, 0, now),
			currentBet: 20,
			playerBet:  20,
			wantOK:     true,
		},
		{
			name:       "check facing a bet",
			action:     NewAction("rich", Check, 0, now),
			currentBet: 20,
			playerBet:  0,
			wantOK:     false,
			wantRule:   "check",
		},
		{
			name:       "call with funds",
			action:     NewAction("rich", Call, 0, now),
			currentBet: 20,
			playerBet:  0,
			wantOK:     true,
		},
		{
			name:       "call with nothing owed",
			action:     NewAction("rich", Call, 0, now),
			currentBet: 20,
			playerBet:  20,
			wantOK:     false,
			wantRule:   "call",
		},
		{
			name:       "call beyond stack",
			action:     NewAction("poor", Call, 0, now),
			currentBet: 100,
			playerBet:  0,
			wantOK:     false,
			wantRule:   "call.funds",
		},
		{
			name:       "raise meeting minimum",
			action:     NewAction("rich", Raise, 40, now),
			currentBet: 20,
			minRaise:   20,
			playerBet:  0,
			wantOK:     true,
		},
		{
			name:       "raise target at current bet",
			action:     NewAction("rich", Raise, 20, now),
			currentBet: 20,
			minRaise:   20,
			playerBet:  0,
			wantOK:     false,
			wantRule:   "raise.target",
		},
		{
			name:       "raise increment below minimum",
			action:     NewAction("rich", Raise, 30, now),
			currentBet: 20,
			minRaise:   20,
			playerBet:  0,
			wantOK:     false,
			wantRule:   "raise.min",
		},
		{
			name:       "raise beyond stack",
			action:     NewAction("poor", Raise, 200, now),
			currentBet: 20,
			minRaise:   20,
			playerBet:  0,
			wantOK:     false,
			wantRule:   "raise.funds",
		},
		{
			name:       "all-in below current bet still valid",
			action:     NewAction("poor", AllIn, 15, now),
			currentBet: 100,
			minRaise:   80,
			playerBet:  0,
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := validateAction(ledger, tt.action, tt.currentBet, tt.minRaise, tt.playerBet)
			if got.OK != tt.wantOK {
				t.Fatalf("validateAction() OK = %v, want %v (%s)", got.OK, tt.wantOK, got.Message)
			}
			if !tt.wantOK && got.Rule != tt.wantRule {
				t.Errorf("validateAction() rule = %q, want %q", got.Rule, tt.wantRule)
			}
		})
	}
}

func TestValidateAllInRequiresChips(t *testing.T) {
	t.Parallel()

	ledger := chips.NewLedger(map[string]int{"busted": 0})
	if v := validateAllIn(ledger, "busted"); v.OK {
		t.Error("all-in with zero chips should be rejected")
	}
	if v := validateAllIn(ledger, "unknown"); v.OK {
		t.Error("all-in by an unknown player should be rejected")
	}
}
