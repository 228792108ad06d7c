// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ayga/mcp/internal/httperrors"
	"ayga/mcp/internal/server"
)

// healthCmd queries the executor health endpoint.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check executor health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		var raw json.RawMessage
		err := spin("Checking "+a.api.BaseURL(), func() error {
			var err error
			raw, err = a.api.Health(ctx)
			return err
		})
		if err != nil {
			httperrors.Present(os.Stderr, err, "checking executor health")
			return errReported
		}
		fmt.Fprintln(cmd.OutOrStdout(), server.Render(raw))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
