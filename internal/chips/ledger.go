package chips

import (
	"fmt"
	"sort"
	"sync"

	"github.com/coder/quartz"
)

// Ledger is the sole owner of player balances and frozen amounts. Every chip
// movement anywhere in the system goes through it and is recorded in an
// append-only transaction log.
//
// All public methods take the ledger mutex for their whole duration, so
// concurrent callers observe each operation atomically. Unexported helpers
// assume the lock is already held.
type Ledger struct {
	mu       sync.Mutex
	balances map[string]int
	frozen   map[string]int
	log      []Transaction
	clock    quartz.Clock
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock injects a clock for transaction timestamps. Tests use
// *quartz.Mock for deterministic output.
func WithClock(clock quartz.Clock) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// NewLedger creates a ledger seeded with the given balances.
// Negative initial balances are a caller bug.
func NewLedger(initial map[string]int, opts ...Option) *Ledger {
	l := &Ledger{
		balances: make(map[string]int, len(initial)),
		frozen:   make(map[string]int),
		clock:    quartz.NewReal(),
	}
	for player, balance := range initial {
		if balance < 0 {
			panic(fmt.Sprintf("chips: initial balance for %s must not be negative, got %d", player, balance))
		}
		l.balances[player] = balance
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Balance returns the player's total chips. Unknown players read as 0.
func (l *Ledger) Balance(player string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[player]
}

// AvailableChips returns the chips the player can currently spend
// (balance minus frozen).
func (l *Ledger) AvailableChips(player string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.available(player)
}

// FrozenChips returns the player's frozen amount.
func (l *Ledger) FrozenChips(player string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frozen[player]
}

// TotalChips returns the sum of all balances, used for conservation checks.
func (l *Ledger) TotalChips() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalChips()
}

// Players returns all known player IDs in ascending order.
func (l *Ledger) Players() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	players := make([]string, 0, len(l.balances))
	for player := range l.balances {
		players = append(players, player)
	}
	sort.Strings(players)
	return players
}

// DeductChips removes chips from a player's balance. It returns false with
// no mutation when the player's available chips cannot cover the amount.
// A non-positive amount is a caller bug.
func (l *Ledger) DeductChips(player string, amount int, description string) bool {
	mustBePositive("deduct", amount)
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.deduct(player, amount, description)
}

// AddChips unconditionally credits a player, creating them if absent.
func (l *Ledger) AddChips(player string, amount int, description string) {
	mustBePositive("add", amount)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.add(player, amount, description)
}

// TransferChips moves chips between two players under a single lock hold.
// A failed deduct leaves no side effect. Transferring to oneself is a
// caller bug.
func (l *Ledger) TransferChips(from, to string, amount int, description string) bool {
	mustBePositive("transfer", amount)
	if from == to {
		panic(fmt.Sprintf("chips: cannot transfer from %s to itself", from))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.deduct(from, amount, fmt.Sprintf("transfer to %s: %s", to, description)) {
		return false
	}
	l.add(to, amount, fmt.Sprintf("transfer from %s: %s", from, description))
	return true
}

// FreezeChips moves chips from available to frozen without touching the
// balance. Returns false when available chips cannot cover the amount.
func (l *Ledger) FreezeChips(player string, amount int, description string) bool {
	mustBePositive("freeze", amount)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.available(player) < amount {
		return false
	}
	l.frozen[player] += amount
	l.append(Freeze, player, amount, description, nil)
	return true
}

// UnfreezeChips releases previously frozen chips back to available.
// Returns false when the frozen amount cannot cover the request.
func (l *Ledger) UnfreezeChips(player string, amount int, description string) bool {
	mustBePositive("unfreeze", amount)
	l.mu.Lock()
	defer l.mu.Unlock()
	frozen := l.frozen[player]
	if frozen < amount {
		return false
	}
	if frozen == amount {
		delete(l.frozen, player)
	} else {
		l.frozen[player] = frozen - amount
	}
	l.append(Unfreeze, player, amount, description, nil)
	return true
}

// SettleHand atomically applies a hand's net outcome: it clears every frozen
// marker, applies each signed delta, and re-checks that the chip total is
// unchanged. A mismatch proves a bookkeeping bug elsewhere and panics; it
// must never be swallowed.
func (l *Ledger) SettleHand(netChanges map[string]int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := l.totalChips()
	l.frozen = make(map[string]int)

	players := make([]string, 0, len(netChanges))
	for player := range netChanges {
		players = append(players, player)
	}
	sort.Strings(players)

	for _, player := range players {
		net := netChanges[player]
		if net == 0 {
			continue
		}
		l.balances[player] += net
		amount := net
		if amount < 0 {
			amount = -amount
		}
		l.append(Settle, player, amount, fmt.Sprintf("hand settlement: net %+d", net), map[string]any{"net": net})
	}

	if after := l.totalChips(); after != before {
		panic(fmt.Sprintf("chips: settlement broke conservation: total was %d, now %d", before, after))
	}
}

// Snapshot returns an immutable copy of the ledger state for external
// invariant checkers. It shares no mutable state with the ledger.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	balances := make(map[string]int, len(l.balances))
	for player, balance := range l.balances {
		balances[player] = balance
	}
	frozen := make(map[string]int, len(l.frozen))
	for player, amount := range l.frozen {
		frozen[player] = amount
	}
	return Snapshot{
		Balances:         balances,
		Frozen:           frozen,
		TotalChips:       l.totalChips(),
		TransactionCount: len(l.log),
		Timestamp:        l.clock.Now(),
	}
}

// TransactionHistory returns a copy of the full transaction log.
func (l *Ledger) TransactionHistory() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	history := make([]Transaction, len(l.log))
	copy(history, l.log)
	return history
}

// PlayerTransactionHistory returns the log entries for a single player.
func (l *Ledger) PlayerTransactionHistory(player string) []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	var history []Transaction
	for _, tx := range l.log {
		if tx.PlayerID == player {
			history = append(history, tx)
		}
	}
	return history
}

// ValidateConservation reports whether the chip total matches the expected
// figure supplied by an external checker.
func (l *Ledger) ValidateConservation(expectedTotal int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalChips() == expectedTotal
}

func (l *Ledger) available(player string) int {
	available := l.balances[player] - l.frozen[player]
	if available < 0 {
		return 0
	}
	return available
}

func (l *Ledger) totalChips() int {
	total := 0
	for _, balance := range l.balances {
		total += balance
	}
	return total
}

func (l *Ledger) deduct(player string, amount int, description string) bool {
	if l.available(player) < amount {
		return false
	}
	l.balances[player] -= amount
	l.append(Deduct, player, amount, description, nil)
	return true
}

func (l *Ledger) add(player string, amount int, description string) {
	l.balances[player] += amount
	l.append(Add, player, amount, description, nil)
}

func (l *Ledger) append(t TransactionType, player string, amount int, description string, metadata map[string]any) {
	l.log = append(l.log, newTransaction(t, player, amount, l.clock.Now(), description, metadata))
}

func mustBePositive(op string, amount int) {
	if amount <= 0 {
		panic(fmt.Sprintf("chips: %s amount must be positive, got %d", op, amount))
	}
}
