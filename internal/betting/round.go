package betting

// Round holds the state for a single betting street. A round is created by
// Engine.StartNewRound, mutated as actions land, and replaced on reset.
type Round struct {
	CurrentBet int
	MinRaise   int

	bets    map[string]int    // chips committed this street, per player
	actions map[string]Action // last action this street, per player
	active  []string          // non-folded players, seating order preserved
	allIn   map[string]bool   // carried across streets
}

func newRound(active []string, minRaise int, allIn map[string]bool) *Round {
	r := &Round{
		MinRaise: minRaise,
		bets:     make(map[string]int),
		actions:  make(map[string]Action),
		active:   make([]string, len(active)),
		allIn:    make(map[string]bool, len(allIn)),
	}
	copy(r.active, active)
	for player := range allIn {
		r.allIn[player] = true
	}
	return r
}

// PlayerBet returns the chips a player has committed this street.
func (r *Round) PlayerBet(player string) int {
	return r.bets[player]
}

// HasActed reports whether the player has taken an action this street.
// Blind posts do not count as actions.
func (r *Round) HasActed(player string) bool {
	_, ok := r.actions[player]
	return ok
}

// IsActive reports whether the player is still in the hand.
func (r *Round) IsActive(player string) bool {
	for _, p := range r.active {
		if p == player {
			return true
		}
	}
	return false
}

// IsAllIn reports whether the player has committed their whole stack.
func (r *Round) IsAllIn(player string) bool {
	return r.allIn[player]
}

// LastAction returns the player's most recent action this street.
func (r *Round) LastAction(player string) (Action, bool) {
	action, ok := r.actions[player]
	return action, ok
}

func (r *Round) removeActive(player string) {
	for i, p := range r.active {
		if p == player {
			r.active = append(r.active[:i], r.active[i+1:]...)
			return
		}
	}
}

func (r *Round) record(action Action) {
	r.actions[action.PlayerID] = action
}

func (r *Round) totalPot() int {
	total := 0
	for _, bet := range r.bets {
		total += bet
	}
	return total
}
