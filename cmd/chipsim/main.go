package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/chipcore/internal/sim"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"V" help:"Show version"`
	Config  string           `default:"chipsim.hcl" help:"Path to HCL config file"`
	Hands   int              `help:"Hands per table (overrides config)"`
	Tables  int              `help:"Number of tables to run concurrently (overrides config)"`
	Seed    int64            `help:"RNG seed (0 for time-based)"`
	Verbose bool             `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("chipsim"),
		kong.Description("Simulate poker hands against the chip settlement core and verify conservation"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	cfg, err := sim.LoadConfig(cli.Config)
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	if cli.Hands > 0 {
		cfg.Game.Hands = cli.Hands
	}
	if cli.Tables > 0 {
		cfg.Game.Tables = cli.Tables
	}
	seed := cli.Seed
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("Starting simulation",
		"tables", cfg.Game.Tables,
		"hands", cfg.Game.Hands,
		"players", cfg.Game.Players,
		"blinds", fmt.Sprintf("%d/%d", cfg.Game.SmallBlind, cfg.Game.BigBlind),
		"seed", seed)

	start := time.Now()
	var mu sync.Mutex
	var total sim.Stats

	var g errgroup.Group
	for i := 0; i < cfg.Game.Tables; i++ {
		tableSeed := seed + int64(i)
		g.Go(func() error {
			table := sim.NewTable(cfg.Game, tableSeed, logger)
			stats, err := table.PlayHands(cfg.Game.Hands)
			if err != nil {
				return err
			}
			mu.Lock()
			total.HandsPlayed += stats.HandsPlayed
			total.TotalDistributed += stats.TotalDistributed
			total.PotsLayered += stats.PotsLayered
			total.Showdowns += stats.Showdowns
			total.Undistributed += stats.Undistributed
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("Simulation failed", "error", err)
	}

	elapsed := time.Since(start)
	logger.Info("Simulation complete",
		"hands", total.HandsPlayed,
		"showdowns", total.Showdowns,
		"pots", total.PotsLayered,
		"distributed", total.TotalDistributed,
		"undistributed", total.Undistributed,
		"elapsed", elapsed.Round(time.Millisecond))

	if total.HandsPlayed > 0 {
		fmt.Printf("%d hands across %d tables, %.0f hands/sec, every chip accounted for\n",
			total.HandsPlayed, cfg.Game.Tables, float64(total.HandsPlayed)/elapsed.Seconds())
	}
	ctx.Exit(0)
}
