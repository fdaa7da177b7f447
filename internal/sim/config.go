package sim

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the simulator configuration, loaded from HCL.
type Config struct {
	Game GameConfig `hcl:"game,block"`
}

// GameConfig defines the table rules and simulation size.
type GameConfig struct {
	SmallBlind    int   `hcl:"small_blind,optional"`
	BigBlind      int   `hcl:"big_blind"`
	StartingChips int   `hcl:"starting_chips,optional"`
	Players       int   `hcl:"players,optional"`
	Hands         int   `hcl:"hands,optional"`
	Tables        int   `hcl:"tables,optional"`
	Seed          int64 `hcl:"seed,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Game: GameConfig{
			SmallBlind:    10,
			BigBlind:      20,
			StartingChips: 1000,
			Players:       6,
			Hands:         100,
			Tables:        1,
		},
	}
}

// LoadConfig loads simulator configuration from an HCL file. A missing file
// falls back to defaults; a malformed one is an error.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&config)
	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Game.SmallBlind == 0 {
		config.Game.SmallBlind = config.Game.BigBlind / 2
	}
	if config.Game.StartingChips == 0 {
		config.Game.StartingChips = config.Game.BigBlind * 50 // 50 big blinds
	}
	if config.Game.Players == 0 {
		config.Game.Players = 6
	}
	if config.Game.Hands == 0 {
		config.Game.Hands = 100
	}
	if config.Game.Tables == 0 {
		config.Game.Tables = 1
	}
}

func validate(config *Config) error {
	if config.Game.BigBlind <= 0 {
		return fmt.Errorf("big_blind must be positive, got %d", config.Game.BigBlind)
	}
	if config.Game.Players < 2 {
		return fmt.Errorf("players must be at least 2, got %d", config.Game.Players)
	}
	if config.Game.StartingChips < config.Game.BigBlind {
		return fmt.Errorf("starting_chips %d cannot cover the big blind %d", config.Game.StartingChips, config.Game.BigBlind)
	}
	return nil
}
