package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyplan/internal/planner"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, planner.DefaultConfig(), cfg.Planner.Core())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STUDYPLAN_LOG_LEVEL", "debug")
	t.Setenv("STUDYPLAN_SERVER_PORT", "9090")
	t.Setenv("STUDYPLAN_PLANNER_MAX_SESSION", "45m")
	t.Setenv("STUDYPLAN_DB", "/tmp/plan.db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 45*time.Minute, cfg.Planner.MaxSession)
	assert.Equal(t, "/tmp/plan.db", cfg.DBPath)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studyplan.yaml")
	doc := "env: production\nlog:\n  format: json\nplanner:\n  max_days: 30\n  buffer_factor: 0.9\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 30, cfg.Planner.MaxDays)
	assert.InDelta(t, 0.9, cfg.Planner.BufferFactor, 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}
