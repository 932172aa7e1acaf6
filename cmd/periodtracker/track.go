package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/periodtracker/internal/cli"
	"github.com/terraincognita07/periodtracker/internal/i18n"
	"github.com/terraincognita07/periodtracker/internal/storage"
	"go.uber.org/zap"
)

func newTrackCommand(env *runtimeEnv) *cobra.Command {
	var dataFile string
	var exportDir string

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Track your cycle from the terminal",
		Long: `Starts an interactive menu for logging periods and symptoms and for viewing
the dashboard, calendar, history and insights. Data is kept in one JSON file
(DATA_FILE, or --data-file).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := env.cfg
			if dataFile == "" {
				dataFile = cfg.Storage.DataFile
			}

			manager, err := i18n.NewEmbeddedManager(cfg.Server.DefaultLanguage)
			if err != nil {
				return fmt.Errorf("i18n init failed: %w", err)
			}
			advice, err := newAdviceService(cmd.Context(), cfg.Advice, nil, env.logger)
			if err != nil {
				return fmt.Errorf("advice init failed: %w", err)
			}

			store := storage.NewFileStore(dataFile)
			env.logger.Debug("using data file", zap.String("path", store.Path()))

			tracker := cli.NewTracker(cmd.InOrStdin(), cmd.OutOrStdout(), cli.TrackerOptions{
				Store:     store,
				Advice:    advice,
				I18n:      manager,
				Language:  manager.DefaultLanguage(),
				Location:  resolveLocation(cfg, env.logger),
				ExportDir: exportDir,
				Logger:    env.logger,
			})
			return tracker.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&dataFile, "data-file", "", "path of the JSON data file (defaults to DATA_FILE)")
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for exported backups")
	return cmd
}
