package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/chipcore/internal/betting"
	"github.com/lox/chipcore/internal/chips"
	"github.com/lox/chipcore/internal/invariant"
	"github.com/lox/chipcore/internal/pots"
)

// ErrTooFewPlayers signals that fewer than two players can still post a
// blind, so no further hand can start.
var ErrTooFewPlayers = errors.New("sim: not enough funded players to continue")

// Stats summarises a table run.
type Stats struct {
	HandsPlayed      int
	TotalDistributed int
	PotsLayered      int
	Showdowns        int
	Undistributed    int
}

// Table plays out full hands against the settlement core, standing in for
// the external phase state machine: it decides when rounds start and end,
// supplies blind seats, and hands showdown strengths to the pot manager.
// Hand strengths are random; the point is exercising chip movement, not
// strategy.
type Table struct {
	id      string
	cfg     GameConfig
	ledger  *chips.Ledger
	engine  *betting.Engine
	pots    *pots.Manager
	checker *invariant.ConservationChecker
	rng     *rand.Rand
	logger  *log.Logger
	players []string
	button  int
}

// NewTable seats cfg.Players players with cfg.StartingChips each on a fresh
// ledger. The seed fixes every decision the scripted players make.
func NewTable(cfg GameConfig, seed int64, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	id := uuid.NewString()
	logger = logger.WithPrefix("table").With("table", id[:8])

	players := make([]string, cfg.Players)
	initial := make(map[string]int, cfg.Players)
	for i := range players {
		players[i] = fmt.Sprintf("player-%d", i+1)
		initial[players[i]] = cfg.StartingChips
	}

	ledger := chips.NewLedger(initial)
	return &Table{
		id:      id,
		cfg:     cfg,
		ledger:  ledger,
		engine:  betting.NewEngine(ledger, cfg.BigBlind, betting.WithLogger(logger)),
		pots:    pots.NewManager(ledger, pots.WithLogger(logger)),
		checker: invariant.NewConservationChecker(cfg.Players * cfg.StartingChips),
		rng:     rand.New(rand.NewSource(seed)),
		logger:  logger,
		players: players,
	}
}

// Ledger exposes the table's ledger for external inspection.
func (t *Table) Ledger() *chips.Ledger {
	return t.ledger
}

// PlayHands runs up to n hands, stopping early once fewer than two players
// can post a blind. Any conservation violation is returned as an error.
func (t *Table) PlayHands(n int) (Stats, error) {
	var stats Stats
	for hand := 0; hand < n; hand++ {
		err := t.playHand(hand, &stats)
		if errors.Is(err, ErrTooFewPlayers) {
			t.logger.Info("table over", "hands", stats.HandsPlayed)
			return stats, nil
		}
		if err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (t *Table) playHand(hand int, stats *Stats) error {
	// Only players who can post the big blind are dealt in; anyone else
	// with a remainder sits out with their stack frozen for the hand.
	var active, sitting []string
	for _, player := range t.players {
		if t.ledger.Balance(player) >= t.cfg.BigBlind {
			active = append(active, player)
		} else if t.ledger.Balance(player) > 0 {
			sitting = append(sitting, player)
		}
	}
	if len(active) < 2 {
		return ErrTooFewPlayers
	}

	for _, player := range sitting {
		t.ledger.FreezeChips(player, t.ledger.Balance(player), "sitting out")
	}
	defer func() {
		for _, player := range sitting {
			if frozen := t.ledger.FrozenChips(player); frozen > 0 {
				t.ledger.UnfreezeChips(player, frozen, "hand over")
			}
		}
	}()

	t.button = (t.button + 1) % len(active)
	seating := rotate(active, t.button)
	var sb, bb string
	if len(seating) == 2 {
		sb, bb = seating[0], seating[1]
	} else {
		sb, bb = seating[1], seating[2]
	}
	// Order the round so the small blind is first to act on later streets.
	order := rotate(active, indexOf(active, sb))

	before := t.ledger.Snapshot()
	if !t.engine.StartNewRound(order, sb, bb) {
		return ErrTooFewPlayers
	}
	t.logger.Debug("hand started", "hand", hand, "players", len(order), "sb", sb, "bb", bb)

	contributions := make(map[string]int)
	for street := 0; street < 4; street++ {
		if street > 0 {
			t.engine.ResetForNextRound()
		}
		first := 0
		if street == 0 && len(order) > 2 {
			first = 2 // under the gun, after the blinds
		}
		t.playStreet(order, first)
		for _, player := range order {
			contributions[player] += t.engine.PlayerBet(player)
		}
		if len(t.engine.ActivePlayers()) <= 1 {
			break
		}
	}

	return t.showdown(hand, contributions, before, stats)
}

// playStreet makes one pass over the players still due to act. Raising is
// restricted to the first voluntary action of the street so a single pass
// always closes the round.
func (t *Table) playStreet(order []string, first int) {
	anyoneActed := false
	for i := range order {
		player := order[(first+i)%len(order)]
		if t.engine.IsRoundComplete() {
			return
		}
		if t.engine.IsPlayerAllIn(player) {
			continue
		}
		if _, acted := t.engine.LastAction(player); acted {
			continue
		}
		if !contains(t.engine.ActivePlayers(), player) {
			continue
		}
		t.actFor(player, anyoneActed)
		anyoneActed = true
	}
}

func (t *Table) actFor(player string, anyoneActed bool) {
	toCall := t.engine.CurrentBet() - t.engine.PlayerBet(player)
	available := t.ledger.AvailableChips(player)

	if toCall <= 0 {
		if !anyoneActed && available > t.engine.MinRaise() && t.rng.Intn(100) < 35 {
			target := t.engine.CurrentBet() + t.engine.MinRaise()*(1+t.rng.Intn(3))
			if target-t.engine.PlayerBet(player) <= available {
				if res := t.engine.ExecutePlayerAction(player, betting.Raise, target); res.Success {
					return
				}
			}
		}
		t.engine.ExecutePlayerAction(player, betting.Check, 0)
		return
	}

	if available == 0 {
		t.engine.ExecutePlayerAction(player, betting.Fold, 0)
		return
	}

	if available <= toCall {
		// Short stack: shove or give up. A short all-in never reopens the
		// betting, so it is safe mid-pass.
		if t.rng.Intn(100) < 70 {
			if res := t.engine.ExecutePlayerAction(player, betting.AllIn, available); res.Success {
				return
			}
		}
		t.engine.ExecutePlayerAction(player, betting.Fold, 0)
		return
	}

	if !anyoneActed && t.rng.Intn(100) < 20 {
		target := t.engine.CurrentBet() + t.engine.MinRaise()*(1+t.rng.Intn(2))
		if target-t.engine.PlayerBet(player) <= available {
			if res := t.engine.ExecutePlayerAction(player, betting.Raise, target); res.Success {
				return
			}
		}
	}
	if t.rng.Intn(100) < 80 {
		if res := t.engine.ExecutePlayerAction(player, betting.Call, 0); res.Success {
			return
		}
	}
	t.engine.ExecutePlayerAction(player, betting.Fold, 0)
}

func (t *Table) showdown(hand int, contributions map[string]int, before chips.Snapshot, stats *Stats) error {
	committed := make(map[string]int, len(contributions))
	for player, amount := range contributions {
		if amount > 0 {
			committed[player] = amount
		}
	}

	results := make(map[string]pots.HandStrength)
	for _, player := range t.engine.ActivePlayers() {
		results[player] = pots.HandStrength(t.rng.Intn(7462) + 1)
	}

	layered := t.pots.CalculateSidePots(committed)
	distribution := t.pots.DistributeWinnings(results)
	t.pots.ClearPots()

	stats.HandsPlayed++
	stats.PotsLayered += len(layered)
	stats.TotalDistributed += distribution.TotalDistributed - distribution.Remaining
	stats.Undistributed += distribution.Remaining
	if len(results) > 1 {
		stats.Showdowns++
	}

	after := t.ledger.Snapshot()
	if violations := t.checker.Check(before, after); len(violations) > 0 {
		for _, v := range violations {
			t.logger.Error("invariant violated", "hand", hand, "rule", v.Rule, "detail", v.Message)
		}
		return fmt.Errorf("sim: hand %d violated %d invariant(s): %s", hand, len(violations), violations[0])
	}

	t.logger.Debug("hand settled",
		"hand", hand,
		"pot", distribution.TotalDistributed,
		"pots", len(layered),
		"showdown", len(results) > 1)
	return nil
}

func rotate(players []string, from int) []string {
	out := make([]string, 0, len(players))
	for i := range players {
		out = append(out, players[(from+i)%len(players)])
	}
	return out
}

func indexOf(players []string, player string) int {
	for i, p := range players {
		if p == player {
			return i
		}
	}
	return 0
}

func contains(players []string, player string) bool {
	for _, p := range players {
		if p == player {
			return true
		}
	}
	return false
}
