package betting

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/chipcore/internal/chips"
)

// Engine drives one betting round at a time on top of a chip ledger. It
// turns player intents into validated ledger operations plus the round
// bookkeeping: current bet, minimum raise, and who has acted.
//
// The engine holds no lock of its own; it expects a single logical owner
// per in-progress hand. Cross-hand safety comes from the ledger.
type Engine struct {
	ledger   *chips.Ledger
	bigBlind int
	round    *Round
	history  []Action
	logger   *log.Logger
	clock    quartz.Clock
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger attaches a structured logger for action tracing.
func WithLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock injects a clock for action timestamps.
func WithClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) {
		e.clock = clock
	}
}

// NewEngine creates a betting engine bound to a ledger. The big blind
// amount comes from the table's rules configuration.
func NewEngine(ledger *chips.Ledger, bigBlind int, opts ...EngineOption) *Engine {
	if ledger == nil {
		panic("betting: engine requires a ledger")
	}
	if bigBlind <= 0 {
		panic("betting: big blind must be positive")
	}
	e := &Engine{
		ledger:   ledger,
		bigBlind: bigBlind,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		clock:    quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.round = newRound(nil, bigBlind, nil)
	return e
}

// StartNewRound resets the round state and posts both blinds. Blinds are
// mandatory and bypass action validation, but they are all-or-nothing: if
// either player cannot cover their blind, no blind is posted and the round
// does not start. The big blind becomes the current bet.
//
// Blind posts are recorded in the betting history; they do not count as the
// blind players having acted, so both still get their option this round.
func (e *Engine) StartNewRound(active []string, sbPlayer, bbPlayer string) bool {
	if len(active) < 2 {
		return false
	}
	smallBlind := e.bigBlind / 2

	if e.ledger.AvailableChips(sbPlayer) < smallBlind || e.ledger.AvailableChips(bbPlayer) < e.bigBlind {
		e.logger.Debug("round not started, blind short", "sb", sbPlayer, "bb", bbPlayer)
		return false
	}
	if !e.ledger.DeductChips(sbPlayer, smallBlind, "small blind") {
		return false
	}
	if !e.ledger.DeductChips(bbPlayer, e.bigBlind, "big blind") {
		// Another hand on the same ledger raced us between the availability
		// check and the deduct. Return the small blind so nothing is posted.
		e.ledger.AddChips(sbPlayer, smallBlind, "small blind returned")
		return false
	}

	round := newRound(active, e.bigBlind, nil)
	round.bets[sbPlayer] = smallBlind
	round.bets[bbPlayer] = e.bigBlind
	round.CurrentBet = e.bigBlind
	e.round = round

	now := e.clock.Now()
	sb := NewAction(sbPlayer, Raise, smallBlind, now)
	sb.Description = "small blind"
	bb := NewAction(bbPlayer, Raise, e.bigBlind, now)
	bb.Description = "big blind"
	e.history = append(e.history, sb, bb)

	e.logger.Debug("round started", "players", len(active), "sb", sbPlayer, "bb", bbPlayer, "currentBet", round.CurrentBet)
	return true
}

// ExecutePlayerAction validates and applies a single player intent. Business
// failures come back as an unsuccessful Result with the ledger and round
// untouched; a malformed intent (negative raise, fold with an amount) is a
// caller bug and panics.
func (e *Engine) ExecutePlayerAction(player string, betType BetType, amount int) Result {
	if !e.round.IsActive(player) {
		return failure(nil, "player %s is not active in this round", player)
	}
	if e.round.HasActed(player) {
		return failure(nil, "player %s has already acted this round", player)
	}

	// All-in resolves its own total. Fold and Check are intent only
	// (amount 0, enforced by NewAction); for Call the engine derives the
	// chips to move.
	if betType == AllIn {
		return e.executeAllIn(player)
	}

	action := NewAction(player, betType, amount, e.clock.Now())
	if v := validateAction(e.ledger, action, e.round.CurrentBet, e.round.MinRaise, e.round.PlayerBet(player)); !v.OK {
		e.logger.Debug("action rejected", "player", player, "action", betType.String(), "rule", v.Rule, "reason", v.Message)
		return failure(&action, "%s", v.Message)
	}

	switch betType {
	case Fold:
		return e.executeFold(action)
	case Check:
		return e.executeCheck(action)
	case Call:
		return e.executeCall(action)
	case Raise:
		return e.executeRaise(action)
	}
	return failure(&action, "unknown bet type %d", int(betType))
}

func (e *Engine) executeFold(action Action) Result {
	e.round.removeActive(action.PlayerID)
	e.commit(action)
	return success(action, 0)
}

func (e *Engine) executeCheck(action Action) Result {
	e.commit(action)
	return success(action, 0)
}

func (e *Engine) executeCall(action Action) Result {
	toCall := e.round.CurrentBet - e.round.PlayerBet(action.PlayerID)
	if !e.ledger.DeductChips(action.PlayerID, toCall, "call") {
		return failure(&action, "insufficient chips to call %d", toCall)
	}
	e.round.bets[action.PlayerID] = e.round.CurrentBet
	e.commit(action)
	return success(action, toCall)
}

func (e *Engine) executeRaise(action Action) Result {
	target := action.Amount
	required := target - e.round.PlayerBet(action.PlayerID)
	if !e.ledger.DeductChips(action.PlayerID, required, "raise") {
		return failure(&action, "insufficient chips to raise to %d", target)
	}
	e.round.MinRaise = target - e.round.CurrentBet
	e.round.CurrentBet = target
	e.round.bets[action.PlayerID] = target
	e.commit(action)
	return success(action, required)
}

// executeAllIn moves every available chip. When the resulting total exceeds
// the current bet it counts as a raise; otherwise it is a short call with
// no bet-size update.
func (e *Engine) executeAllIn(player string) Result {
	if v := validateAllIn(e.ledger, player); !v.OK {
		return failure(nil, "%s", v.Message)
	}
	available := e.ledger.AvailableChips(player)
	committed := e.round.PlayerBet(player)
	total := committed + available

	action := NewAction(player, AllIn, total, e.clock.Now())
	if !e.ledger.DeductChips(player, available, "all in") {
		return failure(&action, "insufficient chips to move all-in")
	}
	if total > e.round.CurrentBet {
		e.round.MinRaise = total - e.round.CurrentBet
		e.round.CurrentBet = total
	}
	e.round.bets[player] = total
	e.round.allIn[player] = true
	e.commit(action)
	return success(action, available)
}

func (e *Engine) commit(action Action) {
	e.round.record(action)
	e.history = append(e.history, action)
	e.logger.Debug("action applied",
		"player", action.PlayerID,
		"action", action.Type.String(),
		"amount", action.Amount,
		"currentBet", e.round.CurrentBet,
		"minRaise", e.round.MinRaise)
}

// IsRoundComplete reports whether the betting round is closed: at most one
// active player remains, or every active player who is not all-in has acted
// and matched the current bet. All-in players are exempt from the match.
func (e *Engine) IsRoundComplete() bool {
	if len(e.round.active) <= 1 {
		return true
	}
	for _, player := range e.round.active {
		if e.round.IsAllIn(player) {
			continue
		}
		if !e.round.HasActed(player) {
			return false
		}
		if e.round.PlayerBet(player) != e.round.CurrentBet {
			return false
		}
	}
	return true
}

// ResetForNextRound starts a fresh street: the active-player set and all-in
// markers carry over, bets and actions clear, and the minimum raise resets
// to the big blind.
func (e *Engine) ResetForNextRound() {
	e.round = newRound(e.round.active, e.bigBlind, e.round.allIn)
}

// CurrentBet returns the highest total committed this round.
func (e *Engine) CurrentBet() int {
	return e.round.CurrentBet
}

// MinRaise returns the minimum raise increment.
func (e *Engine) MinRaise() int {
	return e.round.MinRaise
}

// PlayerBet returns the chips a player has committed this round.
func (e *Engine) PlayerBet(player string) int {
	return e.round.PlayerBet(player)
}

// ActivePlayers returns the non-folded players in order.
func (e *Engine) ActivePlayers() []string {
	players := make([]string, len(e.round.active))
	copy(players, e.round.active)
	return players
}

// IsPlayerAllIn reports whether a player has committed their whole stack.
func (e *Engine) IsPlayerAllIn(player string) bool {
	return e.round.IsAllIn(player)
}

// TotalPot returns the chips committed this round across all players.
func (e *Engine) TotalPot() int {
	return e.round.totalPot()
}

// LastAction returns a player's most recent action this round.
func (e *Engine) LastAction(player string) (Action, bool) {
	return e.round.LastAction(player)
}

// BettingHistory returns a copy of every action since the engine was
// created, blind posts included.
func (e *Engine) BettingHistory() []Action {
	history := make([]Action, len(e.history))
	copy(history, e.history)
	return history
}

// BigBlind returns the configured big blind amount.
func (e *Engine) BigBlind() int {
	return e.bigBlind
}
