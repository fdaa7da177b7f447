// Package chips implements the chip ledger: the single source of monetary
// truth for a poker game.
//
// The main type is Ledger, which owns every player balance and frozen amount
// and records each movement in an append-only transaction log. Betting and
// pot distribution never touch balances directly; they go through the
// ledger's atomic operations.
//
// # Failure model
//
// Business failures (insufficient chips) are boolean returns with no side
// effect. Contract violations (non-positive amounts, self-transfers) and
// internal-consistency failures (a settlement that changes the chip total)
// panic, because they prove a bug in the caller or elsewhere in the engine
// and continuing would corrupt the books.
//
// # Deterministic testing
//
// Transaction timestamps come from an injected quartz.Clock:
//
//	clock := quartz.NewMock(t)
//	ledger := chips.NewLedger(map[string]int{"alice": 1000}, chips.WithClock(clock))
package chips
