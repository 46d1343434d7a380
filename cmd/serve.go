package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/config"
	"github.com/abhisek/studyplan/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner and session tracker over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			rt.cfg.Server.Port = port
		}
		if rt.cfg.Env == config.EnvProduction {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(rt.app, rt.store, rt.cfg.Server, rt.log.Named("http"))
		addr := fmt.Sprintf(":%d", rt.cfg.Server.Port)
		fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s\n", addr)
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "Port to listen on (default from config, 8080)")
}
