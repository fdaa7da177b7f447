package pots

import "sort"

// SplitPot divides an amount evenly among the winners. The integer
// remainder is handed out one chip each to winners in ascending player-id
// order, so a split is always deterministic and never loses a chip.
func SplitPot(amount int, winners []string) map[string]int {
	if amount <= 0 || len(winners) == 0 {
		return map[string]int{}
	}
	ordered := make([]string, len(winners))
	copy(ordered, winners)
	sort.Strings(ordered)

	share := amount / len(ordered)
	remainder := amount % len(ordered)

	payouts := make(map[string]int, len(ordered))
	for i, player := range ordered {
		payouts[player] = share
		if i < remainder {
			payouts[player]++
		}
	}
	return payouts
}

// distributePot pays out a single pot. Eligibility is restricted to players
// with a showdown result; folded contributors forfeit their claim but their
// chips stay in the pot. The pot goes to the eligible players with the
// maximal strength, split evenly. A pot with no eligible winner is skipped
// and its amount reported as unpaid.
func distributePot(pot SidePot, results map[string]HandStrength) (payouts map[string]int, unpaid int) {
	var winners []string
	var best HandStrength
	for _, player := range pot.Eligible {
		strength, ok := results[player]
		if !ok {
			continue
		}
		switch {
		case len(winners) == 0 || strength > best:
			best = strength
			winners = []string{player}
		case strength == best:
			winners = append(winners, player)
		}
	}
	if len(winners) == 0 {
		return nil, pot.Amount
	}
	return SplitPot(pot.Amount, winners), 0
}
