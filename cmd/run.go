package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/studyplan/internal/app"
	"github.com/abhisek/studyplan/internal/config"
	"github.com/abhisek/studyplan/internal/logger"
	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/store"
)

// runtime bundles what every command needs once flags are parsed.
type runtime struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
	app   *app.App
	out   io.Writer
}

// setup loads config, builds the logger, opens the store and wires the app.
func setup(cmd *cobra.Command) (*runtime, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if jsonLogs, _ := cmd.Flags().GetBool("json-logs"); jsonLogs {
		cfg.Log.Format = "json"
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))

	a := app.New(app.Options{
		Store:   st,
		Planner: planner.New(cfg.Planner.Core(), log.Named("planner")),
		Logger:  log,
	})

	return &runtime{
		cfg:   cfg,
		log:   log,
		store: st,
		app:   a,
		out:   colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ()),
	}, nil
}

// Close releases the store and flushes the logger.
func (r *runtime) Close() {
	r.store.Close()
	_ = r.log.Sync()
}

func (r *runtime) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *runtime) println(args ...any) {
	fmt.Fprintln(r.out, args...)
}
