package betting

import "github.com/lox/chipcore/internal/chips"

// validateAction checks an action against the betting rules before any chip
// moves. It answers with the violated rule so callers can distinguish, say,
// an under-minimum raise from an underfunded one.
func validateAction(ledger *chips.Ledger, action Action, currentBet, minRaise, playerBet int) ValidationResult {
	switch action.Type {
	case Fold:
		return valid()
	case Check:
		return validateCheck(currentBet, playerBet)
	case Call:
		return validateCall(ledger, action.PlayerID, currentBet, playerBet)
	case Raise:
		return validateRaise(ledger, action.PlayerID, action.Amount, currentBet, minRaise, playerBet)
	case AllIn:
		return validateAllIn(ledger, action.PlayerID)
	}
	return invalid("action.type", "unknown bet type %d", int(action.Type))
}

// A check is legal only when the player has already matched the current bet.
func validateCheck(currentBet, playerBet int) ValidationResult {
	if playerBet != currentBet {
		return invalid("check", "cannot check facing a bet: committed %d, current bet %d", playerBet, currentBet)
	}
	return valid()
}

func validateCall(ledger *chips.Ledger, player string, currentBet, playerBet int) ValidationResult {
	toCall := currentBet - playerBet
	if toCall <= 0 {
		return invalid("call", "nothing to call: committed %d, current bet %d", playerBet, currentBet)
	}
	if available := ledger.AvailableChips(player); available < toCall {
		return invalid("call.funds", "insufficient chips to call: need %d, available %d", toCall, available)
	}
	return valid()
}

func validateRaise(ledger *chips.Ledger, player string, target, currentBet, minRaise, playerBet int) ValidationResult {
	if target <= currentBet {
		return invalid("raise.target", "raise target %d must exceed current bet %d", target, currentBet)
	}
	if increment := target - currentBet; increment < minRaise {
		return invalid("raise.min", "raise increment %d below minimum %d", increment, minRaise)
	}
	required := target - playerBet
	if required <= 0 {
		return invalid("raise.target", "player already committed %d of a %d raise", playerBet, target)
	}
	if available := ledger.AvailableChips(player); available < required {
		return invalid("raise.funds", "insufficient chips to raise: need %d, available %d", required, available)
	}
	return valid()
}

// An all-in below the current bet or the minimum raise is never rejected;
// that is the standard short all-in rule. The only requirement is having
// chips to move.
func validateAllIn(ledger *chips.Ledger, player string) ValidationResult {
	if available := ledger.AvailableChips(player); available <= 0 {
		return invalid("allin", "no chips available to move all-in")
	}
	return valid()
}
