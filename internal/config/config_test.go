package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peovukea/Pathfinding-visualization/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Grid.Rows)
	assert.Equal(t, 800, cfg.Grid.Width)
	assert.Equal(t, 15*time.Millisecond, cfg.Animation.StepDelay)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathfinder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grid:
  rows: 20
animation:
  step_delay: 40ms
log:
  format: json
`), 0o600))

	t.Setenv("PATHFINDER_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("PATHFINDER_GRID_ROWS", "25")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Grid.Rows, "environment wins over file")
	assert.Equal(t, 800, cfg.Grid.Width, "default kept")
	assert.Equal(t, 40*time.Millisecond, cfg.Animation.StepDelay)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"PATHFINDER_GRID_ROWS":  "0",
		"PATHFINDER_GRID_WIDTH": "10",
		"PATHFINDER_LOG_LEVEL":  "loud",
		"PATHFINDER_LOG_FORMAT": "xml",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := config.Load("")
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefault_IgnoresEnv(t *testing.T) {
	t.Setenv("PATHFINDER_GRID_ROWS", "7")
	cfg := config.Default()
	assert.Equal(t, 50, cfg.Grid.Rows)
	assert.NoError(t, cfg.Validate())
}
