// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

// printVersion prints the client version and the version reported by the executor.
func printVersion(cmd *cobra.Command) error {
	a := newApp()
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	executorVersion, err := a.api.Version(ctx)
	if err != nil {
		a.logger.Debug("executor version unavailable", a.logger.Args("error", err.Error()))
		executorVersion = "unknown"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ayga-mcp %s\nexecutor %s\n", Version, executorVersion)
	return nil
}
