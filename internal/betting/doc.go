// Package betting drives a single betting round on top of a chip ledger.
//
// The external state machine owns phase sequencing; it calls StartNewRound
// with the blind seats, feeds player intents through ExecutePlayerAction,
// and polls IsRoundComplete. Rule violations (wrong turn, illegal check,
// under-minimum raise, insufficient funds) are ordinary Result values, never
// panics: the caller is expected to retry with a corrected action. A failed
// action leaves both the ledger and the round exactly as they were.
package betting
