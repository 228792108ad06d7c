// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"ayga/mcp/internal/keychain"
)

// logoutCmd removes saved executor credentials. The executor keeps no
// server-side session, so there is nothing to revoke remotely.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove saved credentials from the keychain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			return fmt.Errorf("keychain unavailable: %w", err)
		}
		if err := km.ClearCredentials(); err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}
		pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Saved credentials have been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
