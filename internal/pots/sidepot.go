package pots

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// HandStrength is an opaque, totally ordered hand value supplied by the
// external evaluator at showdown. Higher is stronger. This package never
// inspects cards.
type HandStrength int

// SidePot is one layer of the pot in a multi-way all-in scenario. Only the
// players listed in Eligible can win it; a player capped at a lower all-in
// level never appears in higher layers.
type SidePot struct {
	ID       string
	Amount   int
	Eligible []string // sorted ascending
	Main     bool
}

// NewSidePot builds a validated pot layer. An empty eligible set or a
// non-positive amount is a bug in the calculator.
func NewSidePot(amount int, eligible []string, main bool) SidePot {
	if amount <= 0 {
		panic(fmt.Sprintf("pots: side pot amount must be positive, got %d", amount))
	}
	if len(eligible) == 0 {
		panic("pots: side pot requires at least one eligible player")
	}
	players := make([]string, len(eligible))
	copy(players, eligible)
	sort.Strings(players)
	return SidePot{
		ID:       uuid.NewString(),
		Amount:   amount,
		Eligible: players,
		Main:     main,
	}
}

// EligibleFor reports whether a player can win this pot.
func (p SidePot) EligibleFor(player string) bool {
	for _, eligible := range p.Eligible {
		if eligible == player {
			return true
		}
	}
	return false
}

// DistributionResult is the outcome of paying out one or more pots. The
// parts always reconcile: sum(Distributions) + Remaining == TotalDistributed.
type DistributionResult struct {
	Distributions    map[string]int
	TotalDistributed int
	Remaining        int
}

func newDistributionResult(distributions map[string]int, total, remaining int) DistributionResult {
	sum := remaining
	for _, amount := range distributions {
		sum += amount
	}
	if sum != total {
		panic(fmt.Sprintf("pots: distribution does not reconcile: parts sum to %d, total %d", sum, total))
	}
	return DistributionResult{
		Distributions:    distributions,
		TotalDistributed: total,
		Remaining:        remaining,
	}
}
