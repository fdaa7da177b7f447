// Package invariant provides external consistency checks over chip ledger
// snapshots. The ledger enforces conservation only inside SettleHand; this
// package lets an orchestrator assert it across a whole hand.
package invariant

import (
	"fmt"
	"sort"

	"github.com/lox/chipcore/internal/chips"
)

// Violation names a broken invariant. Rule is a stable identifier,
// Message carries the expected/actual detail.
type Violation struct {
	Rule    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Message)
}

// ConservationChecker verifies that chip totals and per-player bounds
// survive a hand intact. It compares ledger snapshots taken before and
// after the sequence under test.
type ConservationChecker struct {
	expectedTotal int
	inferTotal    bool
}

// NewConservationChecker creates a checker pinned to the expected chip
// total for the game.
func NewConservationChecker(expectedTotal int) *ConservationChecker {
	return &ConservationChecker{expectedTotal: expectedTotal}
}

// NewInferredChecker creates a checker that adopts the total from the first
// before-snapshot it sees.
func NewInferredChecker() *ConservationChecker {
	return &ConservationChecker{inferTotal: true}
}

// Check compares two snapshots and returns every violated invariant, or
// nil when all hold. It checks total conservation, non-negative balances,
// frozen-within-balance bounds, and that the transaction log only grew.
func (c *ConservationChecker) Check(before, after chips.Snapshot) []Violation {
	if c.inferTotal {
		c.expectedTotal = before.TotalChips
		c.inferTotal = false
	}

	var violations []Violation
	if before.TotalChips != c.expectedTotal {
		violations = append(violations, Violation{
			Rule:    "conservation.total",
			Message: fmt.Sprintf("total before hand is %d, expected %d", before.TotalChips, c.expectedTotal),
		})
	}
	if after.TotalChips != before.TotalChips {
		violations = append(violations, Violation{
			Rule:    "conservation.delta",
			Message: fmt.Sprintf("total changed from %d to %d across hand", before.TotalChips, after.TotalChips),
		})
	}
	if after.TransactionCount < before.TransactionCount {
		violations = append(violations, Violation{
			Rule:    "log.append-only",
			Message: fmt.Sprintf("transaction count shrank from %d to %d", before.TransactionCount, after.TransactionCount),
		})
	}
	violations = append(violations, checkBounds(after)...)
	return violations
}

// checkBounds verifies per-player invariants on a single snapshot:
// balances are non-negative and 0 <= frozen <= balance.
func checkBounds(s chips.Snapshot) []Violation {
	players := make([]string, 0, len(s.Balances))
	for player := range s.Balances {
		players = append(players, player)
	}
	for player := range s.Frozen {
		if _, ok := s.Balances[player]; !ok {
			players = append(players, player)
		}
	}
	sort.Strings(players)

	var violations []Violation
	for _, player := range players {
		balance := s.Balances[player]
		frozen := s.Frozen[player]
		if balance < 0 {
			violations = append(violations, Violation{
				Rule:    "balance.negative",
				Message: fmt.Sprintf("player %s has balance %d", player, balance),
			})
		}
		if frozen < 0 || frozen > balance {
			violations = append(violations, Violation{
				Rule:    "frozen.bounds",
				Message: fmt.Sprintf("player %s has frozen %d outside [0, %d]", player, frozen, balance),
			})
		}
	}
	return violations
}
