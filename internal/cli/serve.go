package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/logflow/internal/config"
	"github.com/mmynk/logflow/internal/server"
	"github.com/mmynk/logflow/pkg/logging"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Connect API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logging.Configure(cfg.LogLevel, cfg.LogFormat)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.String("db", "", "SQLite database path (in-memory when empty)")
	flags.String("rules", "", "cleaning rules file (.toml or .yaml); watched for changes")
	flags.String("static", "", "directory of static dashboard files to serve")
	flags.Bool("metrics", true, "expose /metrics and record RPC metrics")
	flags.StringSlice("steps", nil, "automation pipeline steps (default: built-in pipeline)")

	_ = v.BindPFlag("addr", flags.Lookup("addr"))
	_ = v.BindPFlag("db_path", flags.Lookup("db"))
	_ = v.BindPFlag("rules_path", flags.Lookup("rules"))
	_ = v.BindPFlag("static_path", flags.Lookup("static"))
	_ = v.BindPFlag("metrics_enabled", flags.Lookup("metrics"))
	_ = v.BindPFlag("automation_steps", flags.Lookup("steps"))
	return cmd
}

func runServer(ctx context.Context, cfg config.Config) error {
	srv, err := server.New(cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	if err := srv.Run(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		return err
	}
	slog.Info("Server stopped")
	return nil
}
