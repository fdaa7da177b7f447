package betting

import (
	"testing"
	"time"
)

func TestNewActionContract(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name      string
		player    string
		betType   BetType
		amount    int
		wantPanic bool
	}{
		{name: "fold", player: "p1", betType: Fold, amount: 0},
		{name: "check", player: "p1", betType: Check, amount: 0},
		{name: "call carries no amount", player: "p1", betType: Call, amount: 0},
		{name: "raise", player: "p1", betType: Raise, amount: 40},
		{name: "all in", player: "p1", betType: AllIn, amount: 100},
		{name: "empty player", player: "", betType: Fold, amount: 0, wantPanic: true},
		{name: "negative amount", player: "p1", betType: Raise, amount: -1, wantPanic: true},
		{name: "fold with amount", player: "p1", betType: Fold, amount: 10, wantPanic: true},
		{name: "check with amount", player: "p1", betType: Check, amount: 10, wantPanic: true},
		{name: "zero raise", player: "p1", betType: Raise, amount: 0, wantPanic: true},
		{name: "zero all in", player: "p1", betType: AllIn, amount: 0, wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			defer func() {
				if r := recover(); (r != nil) != tt.wantPanic {
					t.Errorf("NewAction(%q, %v, %d) panic = %v, wantPanic %v", tt.player, tt.betType, tt.amount, r, tt.wantPanic)
				}
			}()
			action := NewAction(tt.player, tt.betType, tt.amount, now)
			if action.PlayerID != tt.player || action.Amount != tt.amount {
				t.Errorf("NewAction() = %+v", action)
			}
		})
	}
}

func TestBetTypeString(t *testing.T) {
	t.Parallel()

	want := map[BetType]string{
		Fold:  "fold",
		Check: "check",
		Call:  "call",
		Raise: "raise",
		AllIn: "allin",
	}
	for betType, name := range want {
		if got := betType.String(); got != name {
			t.Errorf("BetType(%d).String() = %q, want %q", int(betType), got, name)
		}
	}
}

func TestActionClassification(t *testing.T) {
	t.Parallel()

	now := time.Now()
	if !NewAction("p1", Raise, 40, now).IsAggressive() {
		t.Error("raise should be aggressive")
	}
	if !NewAction("p1", AllIn, 40, now).IsAggressive() {
		t.Error("all-in should be aggressive")
	}
	if NewAction("p1", Call, 0, now).IsAggressive() {
		t.Error("call is not aggressive")
	}
	if NewAction("p1", Check, 0, now).MovesChips() {
		t.Error("check moves no chips")
	}
	if !NewAction("p1", Call, 0, now).MovesChips() {
		t.Error("call moves chips")
	}
}
