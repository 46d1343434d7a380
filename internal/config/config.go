// Package config loads studyplan settings from defaults, an optional
// config file, a .env file and STUDYPLAN_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/studyplan/internal/planner"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "STUDYPLAN"

type Config struct {
	Env    string
	DBPath string

	Log     LogConfig
	Server  ServerConfig
	Planner PlannerConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PlannerConfig tunes the scheduling core.
type PlannerConfig struct {
	MaxSession    time.Duration
	MinSession    time.Duration
	BufferFactor  float64
	MinTopicHours float64
	MaxDays       int
}

// Load reads configuration. A non-empty path names a config file (any
// format viper understands) that must exist. Environment variables win
// over the file, which wins over defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// STUDYPLAN_DB is the historical name of the database override.
	if err := v.BindEnv("db_path", EnvPrefix+"_DB_PATH", EnvPrefix+"_DB"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Env:    v.GetString("env"),
		DBPath: v.GetString("db_path"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  parseDuration(v.GetString("server.read_timeout"), 10*time.Second),
			WriteTimeout: parseDuration(v.GetString("server.write_timeout"), 30*time.Second),
		},
		Planner: PlannerConfig{
			MaxSession:    parseDuration(v.GetString("planner.max_session"), planner.DefaultMaxSession),
			MinSession:    parseDuration(v.GetString("planner.min_session"), planner.DefaultMinSession),
			BufferFactor:  v.GetFloat64("planner.buffer_factor"),
			MinTopicHours: v.GetFloat64("planner.min_topic_hours"),
			MaxDays:       v.GetInt("planner.max_days"),
		},
	}
	return cfg, nil
}

// Core returns the planner configuration. Invalid values fall back to the
// planner's own defaults.
func (c PlannerConfig) Core() planner.Config {
	return planner.Config{
		MaxSession:    c.MaxSession,
		MinSession:    c.MinSession,
		BufferFactor:  c.BufferFactor,
		MinTopicHours: c.MinTopicHours,
		MaxDays:       c.MaxDays,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("db_path", "")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")

	v.SetDefault("planner.max_session", planner.DefaultMaxSession.String())
	v.SetDefault("planner.min_session", planner.DefaultMinSession.String())
	v.SetDefault("planner.buffer_factor", planner.DefaultBufferFactor)
	v.SetDefault("planner.min_topic_hours", planner.DefaultMinTopicHours)
	v.SetDefault("planner.max_days", planner.DefaultMaxDays)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
