package main

import (
	"github.com/spf13/cobra"
	"github.com/terraincognita07/periodtracker/internal/cli"
)

func newResetPasswordCommand(env *runtimeEnv) *cobra.Command {
	var usePrompt bool
	var dbPath string

	cmd := &cobra.Command{
		Use:   "reset-password <username>",
		Short: "Reset a web account password",
		Long: `Generates a temporary password for the account, or with --prompt asks for
a new one without echoing it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = env.cfg.Storage.DBPath
			}
			return cli.RunResetPasswordCommand(cli.ResetPasswordOptions{
				DBPath:   dbPath,
				Username: args[0],
				Prompt:   usePrompt,
				Out:      cmd.OutOrStdout(),
				Logger:   env.logger,
			})
		},
	}

	cmd.Flags().BoolVar(&usePrompt, "prompt", false, "read the new password from the terminal")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (defaults to DB_PATH)")
	return cmd
}
