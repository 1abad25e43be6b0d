package dinebench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
agents: 7
think: {min: 5, max: 25}
dine:
  min: 2
  max: 8
distribution: exponential
cycles: 4
backoff: 2ms
seed: 99
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, Config{
		Agents:       7,
		Think:        Range{Min: 5, Max: 25},
		Dine:         Range{Min: 2, Max: 8},
		Distribution: Exponential,
		Cycles:       4,
		Backoff:      2 * time.Millisecond,
		Seed:         99,
	}, cfg)
}

func TestLoadConfig_KeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "agents: 9\n"))
	require.NoError(t, err)

	want := DefaultConfig()
	want.Agents = 9
	assert.Equal(t, want, cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "distribution: gaussian\n"))
	assert.ErrorIs(t, err, ErrInvalidDistribution)

	_, err = LoadConfig(writeConfig(t, "agents: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeConfig(t, "think: [1, 2\n"))
	assert.Error(t, err)
}
