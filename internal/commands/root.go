package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/txnapi/internal/buildinfo"
	"github.com/cleared-dev/txnapi/internal/config"
)

type rootOptions struct {
	configPath string
	envFile    string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "txnapi",
		Short:   "Transaction record keeping with spreadsheet import and CSV export",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to the config file")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file with TXNAPI_* overrides (default: .env next to the config)")

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(opts),
		newExportCommand(opts),
		newListCommand(opts),
		newGetCommand(opts),
		newAddCommand(opts),
		newSetStatusCommand(opts),
	)

	return rootCmd
}
