package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"catalogpix/internal/settings"
)

func newSettingsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage destination storage credentials",
	}
	cmd.AddCommand(newSettingsSetCommand(opts))
	cmd.AddCommand(newSettingsShowCommand(opts))
	return cmd
}

func newSettingsSetCommand(opts *rootOptions) *cobra.Command {
	var creds settings.Credentials

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save storage credentials (overwrites the stored set)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !creds.Configured() {
				return fmt.Errorf("all of --storage-url, --container and --token are required")
			}
			store, err := openStore(opts)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Save(creds); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.StorageURL, "storage-url", "", "storage endpoint base URL, e.g. https://myaccount.blob.core.windows.net")
	cmd.Flags().StringVar(&creds.Container, "container", "", "blob container name")
	cmd.Flags().StringVar(&creds.Token, "token", "", "SAS token including the leading '?'")
	return cmd
}

func newSettingsShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored credentials with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(opts)
			if err != nil {
				return err
			}
			defer store.Close()

			creds := store.Load()
			if !creds.Configured() {
				fmt.Fprintln(cmd.OutOrStdout(), "Storage credentials are not configured.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Storage URL: %s\n", creds.StorageURL)
			fmt.Fprintf(cmd.OutOrStdout(), "Container:   %s\n", creds.Container)
			fmt.Fprintf(cmd.OutOrStdout(), "Token:       %s\n", maskToken(creds.Token))
			return nil
		},
	}
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", 8) + token[len(token)-4:]
}
