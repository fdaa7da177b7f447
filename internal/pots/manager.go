package pots

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/chipcore/internal/chips"
)

// Manager computes side pots from cumulative contributions and, at
// showdown, distributes winnings back through the ledger. Pots are
// calculated fresh per showdown, consumed once, then cleared.
type Manager struct {
	ledger *chips.Ledger
	pots   []SidePot
	logger *log.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger attaches a structured logger for distribution tracing.
func WithLogger(logger *log.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a pot manager bound to a ledger.
func NewManager(ledger *chips.Ledger, opts ...ManagerOption) *Manager {
	if ledger == nil {
		panic("pots: manager requires a ledger")
	}
	m := &Manager{
		ledger: ledger,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CalculateSidePots layers the per-player contribution totals into a main
// pot and side pots, stores them for distribution, and returns a copy.
// The layered amounts always sum to the contributed total.
func (m *Manager) CalculateSidePots(contributions map[string]int) []SidePot {
	pots := calculateSidePots(contributions)
	m.pots = pots
	for _, pot := range pots {
		m.logger.Debug("pot layered", "id", pot.ID, "amount", pot.Amount, "eligible", len(pot.Eligible), "main", pot.Main)
	}
	return m.SidePots()
}

// DistributePots computes payouts for the given pots without moving any
// chips. Per pot, eligibility is the pot's eligible set intersected with
// the showdown results; ties split evenly with remainder chips going one
// each to winners in ascending player-id order. Pots with no eligible
// winner contribute to Remaining and are never an error.
func (m *Manager) DistributePots(pots []SidePot, results map[string]HandStrength) DistributionResult {
	totals := make(map[string]int)
	totalAmount := 0
	remaining := 0
	for _, pot := range pots {
		payouts, unpaid := distributePot(pot, results)
		for player, amount := range payouts {
			totals[player] += amount
		}
		totalAmount += pot.Amount
		remaining += unpaid
	}
	return newDistributionResult(totals, totalAmount, remaining)
}

// DistributeWinnings distributes the stored pots and performs the real chip
// movement: every non-zero payout is credited through the ledger. The
// returned result reconciles exactly with the pot amounts.
func (m *Manager) DistributeWinnings(results map[string]HandStrength) DistributionResult {
	result := m.DistributePots(m.pots, results)

	winners := make([]string, 0, len(result.Distributions))
	for player := range result.Distributions {
		winners = append(winners, player)
	}
	sort.Strings(winners)
	for _, player := range winners {
		amount := result.Distributions[player]
		if amount > 0 {
			m.ledger.AddChips(player, amount, fmt.Sprintf("pot winnings %d", amount))
			m.logger.Debug("winnings paid", "player", player, "amount", amount)
		}
	}
	return result
}

// TotalPotAmount returns the chips across all stored pots.
func (m *Manager) TotalPotAmount() int {
	total := 0
	for _, pot := range m.pots {
		total += pot.Amount
	}
	return total
}

// MainPot returns the main pot, if pots have been calculated.
func (m *Manager) MainPot() (SidePot, bool) {
	for _, pot := range m.pots {
		if pot.Main {
			return pot, true
		}
	}
	return SidePot{}, false
}

// SidePots returns a copy of the stored pots.
func (m *Manager) SidePots() []SidePot {
	pots := make([]SidePot, len(m.pots))
	copy(pots, m.pots)
	return pots
}

// PlayerEligiblePots returns the stored pots the player can win.
func (m *Manager) PlayerEligiblePots(player string) []SidePot {
	var eligible []SidePot
	for _, pot := range m.pots {
		if pot.EligibleFor(player) {
			eligible = append(eligible, pot)
		}
	}
	return eligible
}

// ValidatePotIntegrity reports whether the stored pots hold exactly the
// expected total.
func (m *Manager) ValidatePotIntegrity(expected int) bool {
	return m.TotalPotAmount() == expected
}

// ClearPots drops the stored pots after a showdown has consumed them.
func (m *Manager) ClearPots() {
	m.pots = nil
}
