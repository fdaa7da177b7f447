package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chipsim.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
game {
  small_blind    = 25
  big_blind      = 50
  starting_chips = 5000
  players        = 4
  hands          = 250
  tables         = 3
  seed           = 42
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 25, config.Game.SmallBlind)
	assert.Equal(t, 50, config.Game.BigBlind)
	assert.Equal(t, 5000, config.Game.StartingChips)
	assert.Equal(t, 4, config.Game.Players)
	assert.Equal(t, 250, config.Game.Hands)
	assert.Equal(t, 3, config.Game.Tables)
	assert.Equal(t, int64(42), config.Game.Seed)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
game {
  big_blind = 40
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20, config.Game.SmallBlind, "small blind defaults to half the big blind")
	assert.Equal(t, 2000, config.Game.StartingChips, "stacks default to 50 big blinds")
	assert.Equal(t, 6, config.Game.Players)
	assert.Equal(t, 100, config.Game.Hands)
	assert.Equal(t, 1, config.Game.Tables)
}

func TestLoadConfigMissingFileFallsBack(t *testing.T) {
	t.Parallel()

	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigRejectsMalformed(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(writeConfig(t, `game { big_blind = `))
	assert.Error(t, err)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "non-positive big blind",
			content: `
game {
  big_blind = -20
}
`,
		},
		{
			name: "too few players",
			content: `
game {
  big_blind = 20
  players   = 1
}
`,
		},
		{
			name: "stack cannot cover the blind",
			content: `
game {
  big_blind      = 100
  starting_chips = 50
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
