package chips

import "time"

// Snapshot is a point-in-time copy of ledger state. The maps are owned by
// the snapshot and never alias the live ledger.
type Snapshot struct {
	Balances         map[string]int
	Frozen           map[string]int
	TotalChips       int
	TransactionCount int
	Timestamp        time.Time
}

// Balance returns the snapshotted balance for a player.
func (s Snapshot) Balance(player string) int {
	return s.Balances[player]
}

// Available returns the snapshotted spendable chips for a player.
func (s Snapshot) Available(player string) int {
	available := s.Balances[player] - s.Frozen[player]
	if available < 0 {
		return 0
	}
	return available
}
