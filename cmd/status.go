// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"ayga/mcp/internal/auth"
	"ayga/mcp/internal/httperrors"
	"ayga/mcp/internal/logging"
	"ayga/mcp/internal/registry"
)

// statusCmd summarizes configuration, credentials and executor reachability.
var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"whoami"},
	Short:   "Show executor, credential and tool status",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		executor := "unknown"
		authState := "not checked"
		_ = spin("Contacting "+a.api.BaseURL(), func() error {
			if v, err := a.api.Version(ctx); err == nil {
				executor = v
			} else {
				executor = "unreachable (" + httperrors.Describe(err) + ")"
			}
			if a.creds.Method() == auth.MethodAnonymous {
				authState = "anonymous"
				return nil
			}
			if _, err := a.session.Token(ctx); err != nil {
				authState = logging.PresentError("failed", err)
			} else {
				authState = "ok"
			}
			return nil
		})

		data := pterm.TableData{
			{"API URL", a.api.BaseURL()},
			{"Executor", executor},
			{"Credentials", string(a.creds.Source)},
			{"Login method", string(a.creds.Method())},
			{"Authentication", authState},
			{"Default timeout", a.defaultTimeout().String()},
			{"Tools", pterm.Sprint(registry.Default().Len())},
		}
		return pterm.DefaultTable.WithWriter(cmd.OutOrStdout()).WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
