package pots

import (
	"fmt"
	"sort"
)

// ContributionLevel groups the players whose total commitment reached a
// given amount. Levels are the raw material for side-pot layering.
type ContributionLevel struct {
	Amount  int
	Players []string
}

// ContributionLevels returns the distinct commitment amounts ascending,
// each with the players who committed exactly that amount.
func ContributionLevels(contributions map[string]int) []ContributionLevel {
	byAmount := make(map[int][]string)
	for player, amount := range contributions {
		byAmount[amount] = append(byAmount[amount], player)
	}
	amounts := make([]int, 0, len(byAmount))
	for amount := range byAmount {
		amounts = append(amounts, amount)
	}
	sort.Ints(amounts)

	levels := make([]ContributionLevel, 0, len(amounts))
	for _, amount := range amounts {
		players := byAmount[amount]
		sort.Strings(players)
		levels = append(levels, ContributionLevel{Amount: amount, Players: players})
	}
	return levels
}

// calculateSidePots layers per-player contribution totals into pots.
//
// Distinct bet amounts become levels, ascending. For the level above
// previous level L, every contributor who bet at least that level pays
// (level - L) into the layer, so its amount is (level - L) times the
// contributor count. The first layer is the main pot. A player capped at a
// lower level is excluded from every higher layer, which is exactly the
// all-in protection rule.
func calculateSidePots(contributions map[string]int) []SidePot {
	if len(contributions) == 0 {
		return nil
	}
	total := 0
	for player, amount := range contributions {
		if amount <= 0 {
			panic(fmt.Sprintf("pots: contribution for %s must be positive, got %d", player, amount))
		}
		total += amount
	}

	levels := ContributionLevels(contributions)
	pots := make([]SidePot, 0, len(levels))
	previous := 0
	for _, level := range levels {
		var eligible []string
		for player, amount := range contributions {
			if amount >= level.Amount {
				eligible = append(eligible, player)
			}
		}
		amount := (level.Amount - previous) * len(eligible)
		pots = append(pots, NewSidePot(amount, eligible, len(pots) == 0))
		previous = level.Amount
	}

	layered := 0
	for _, pot := range pots {
		layered += pot.Amount
	}
	if layered != total {
		panic(fmt.Sprintf("pots: layering lost chips: contributions total %d, pots total %d", total, layered))
	}
	return pots
}
