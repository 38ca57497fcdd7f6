package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"catalogpix/config"
	"catalogpix/internal/settings"
)

type rootOptions struct {
	dbPath  string
	verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "catalogpix",
		Short: "Generate and attach product photos to catalog categories",
		Long: "catalogpix reads a JSON list of product categories, generates a product " +
			"photo for each via the Gemini image API, uploads the images to Azure Blob " +
			"storage, and exports the resulting {id, name, url} mapping.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", config.DBPath(), "path to the local settings database")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newSettingsCommand(opts))

	return cmd
}

// openStore opens the settings database. The access token is encrypted at
// rest with a key derived from the configured passphrase.
func openStore(opts *rootOptions) (*settings.Store, error) {
	return settings.NewStore(opts.dbPath, settings.DeriveKey(config.SettingsPassphrase()))
}
