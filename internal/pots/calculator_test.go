package pots

import (
	"reflect"
	"testing"
)

func TestCalculateSidePots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		contributions map[string]int
		want          []struct {
			amount   int
			eligible []string
			main     bool
		}
	}{
		{
			name:          "no contributions",
			contributions: map[string]int{},
			want:          nil,
		},
		{
			name:          "everyone matched",
			contributions: map[string]int{"alice": 100, "bob": 100, "carol": 100},
			want: []struct {
				amount   int
				eligible []string
				main     bool
			}{
				{amount: 300, eligible: []string{"alice", "bob", "carol"}, main: true},
			},
		},
		{
			name:          "one short all-in",
			contributions: map[string]int{"alice": 100, "bob": 40, "carol": 100},
			want: []struct {
				amount   int
				eligible []string
				main     bool
			}{
				{amount: 120, eligible: []string{"alice", "bob", "carol"}, main: true},
				{amount: 120, eligible: []string{"alice", "carol"}},
			},
		},
		{
			name: "two all-in levels among five players",
			contributions: map[string]int{
				"a": 800, "b": 900, "c": 800, "d": 900, "e": 900,
			},
			want: []struct {
				amount   int
				eligible []string
				main     bool
			}{
				{amount: 4000, eligible: []string{"a", "b", "c", "d", "e"}, main: true},
				{amount: 300, eligible: []string{"b", "d", "e"}},
			},
		},
		{
			name:          "three distinct levels",
			contributions: map[string]int{"a": 10, "b": 50, "c": 200, "d": 200},
			want: []struct {
				amount   int
				eligible []string
				main     bool
			}{
				{amount: 40, eligible: []string{"a", "b", "c", "d"}, main: true},
				{amount: 120, eligible: []string{"b", "c", "d"}},
				{amount: 300, eligible: []string{"c", "d"}},
			},
		},
		{
			name:          "single player",
			contributions: map[string]int{"a": 25},
			want: []struct {
				amount   int
				eligible []string
				main     bool
			}{
				{amount: 25, eligible: []string{"a"}, main: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := calculateSidePots(tt.contributions)
			if len(got) != len(tt.want) {
				t.Fatalf("calculateSidePots() returned %d pots, want %d", len(got), len(tt.want))
			}
			for i, want := range tt.want {
				if got[i].Amount != want.amount {
					t.Errorf("pot %d amount = %d, want %d", i, got[i].Amount, want.amount)
				}
				if !reflect.DeepEqual(got[i].Eligible, want.eligible) {
					t.Errorf("pot %d eligible = %v, want %v", i, got[i].Eligible, want.eligible)
				}
				if got[i].Main != want.main {
					t.Errorf("pot %d main = %v, want %v", i, got[i].Main, want.main)
				}
			}
		})
	}
}

func TestCalculateSidePotsConservesChips(t *testing.T) {
	t.Parallel()

	contributions := map[string]int{
		"a": 37, "b": 512, "c": 512, "d": 120, "e": 37, "f": 999,
	}
	total := 0
	for _, amount := range contributions {
		total += amount
	}

	pots := calculateSidePots(contributions)
	layered := 0
	for _, pot := range pots {
		layered += pot.Amount
	}
	if layered != total {
		t.Errorf("pots sum to %d, contributions sum to %d", layered, total)
	}
}

func TestCalculateSidePotsRejectsNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero contribution")
		}
	}()
	calculateSidePots(map[string]int{"a": 100, "b": 0})
}

func TestContributionLevels(t *testing.T) {
	t.Parallel()

	levels := ContributionLevels(map[string]int{"a": 50, "b": 100, "c": 50, "d": 200})
	want := []ContributionLevel{
		{Amount: 50, Players: []string{"a", "c"}},
		{Amount: 100, Players: []string{"b"}},
		{Amount: 200, Players: []string{"d"}},
	}
	if !reflect.DeepEqual(levels, want) {
		t.Errorf("ContributionLevels() = %v, want %v", levels, want)
	}
}
