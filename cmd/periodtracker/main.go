package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/periodtracker/internal/config"
	"github.com/terraincognita07/periodtracker/internal/logging"
	"go.uber.org/zap"
)

// runtimeEnv is filled by the root command before any subcommand runs.
type runtimeEnv struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	env := &runtimeEnv{}

	root := &cobra.Command{
		Use:   "periodtracker",
		Short: "Menstrual cycle tracker with a web API and a terminal prompt loop",
		Long: `periodtracker records period starts and daily symptoms, derives cycle
statistics, and offers phase-aware advice.

Configuration comes from defaults, an optional YAML file named by CONFIG_PATH,
and environment variables such as PORT, DB_PATH, DATA_FILE and SECRET_KEY.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			env.cfg = cfg
			env.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env.logger != nil {
				_ = env.logger.Sync()
			}
		},
	}

	root.AddCommand(
		newServeCommand(env),
		newTrackCommand(env),
		newResetPasswordCommand(env),
	)
	return root
}
