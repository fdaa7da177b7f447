package betting

import "fmt"

// Result reports the outcome of a player action. Business-rule failures
// (insufficient funds, wrong turn, illegal check) come back as Success=false
// with a message; they are expected and the caller retries with a corrected
// action.
type Result struct {
	Success    bool
	Action     *Action
	Message    string
	ChipsMoved int
}

func success(action Action, chipsMoved int) Result {
	return Result{Success: true, Action: &action, ChipsMoved: chipsMoved}
}

func failure(action *Action, format string, args ...any) Result {
	return Result{Success: false, Action: action, Message: fmt.Sprintf(format, args...)}
}

// ValidationResult is the outcome of checking one betting rule. Rule names
// are stable identifiers ("check", "call.funds", "raise.min", ...) so
// callers can branch on the violated rule without parsing messages.
type ValidationResult struct {
	OK      bool
	Rule    string
	Message string
}

func valid() ValidationResult {
	return ValidationResult{OK: true}
}

func invalid(rule, format string, args ...any) ValidationResult {
	return ValidationResult{Rule: rule, Message: fmt.Sprintf(format, args...)}
}
