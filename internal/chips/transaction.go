package chips

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// TransactionType classifies a ledger entry.
type TransactionType int

const (
	Deduct TransactionType = iota
	Add
	Freeze
	Unfreeze
	Settle
)

func (t TransactionType) String() string {
	return [...]string{"deduct", "add", "freeze", "unfreeze", "settle"}[t]
}

// Transaction is one immutable entry in the ledger's append-only log.
// Entries are never mutated or removed once recorded.
type Transaction struct {
	ID          string
	Type        TransactionType
	PlayerID    string
	Amount      int
	Timestamp   time.Time
	Description string
	Metadata    map[string]any
}

var (
	ulidEntropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	ulidEntropyMu sync.Mutex
)

// newTransactionID returns a monotonic ULID so log order and ID order agree.
func newTransactionID(ts time.Time) string {
	ulidEntropyMu.Lock()
	defer ulidEntropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(ts), ulidEntropy).String()
}

func newTransaction(t TransactionType, playerID string, amount int, ts time.Time, description string, metadata map[string]any) Transaction {
	if playerID == "" {
		panic("chips: transaction requires a player id")
	}
	if amount <= 0 {
		panic(fmt.Sprintf("chips: transaction amount must be positive, got %d", amount))
	}
	return Transaction{
		ID:          newTransactionID(ts),
		Type:        t,
		PlayerID:    playerID,
		Amount:      amount,
		Timestamp:   ts,
		Description: description,
		Metadata:    metadata,
	}
}
