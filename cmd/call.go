// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ayga/mcp/internal/logging"
	"ayga/mcp/internal/registry"
	"ayga/mcp/internal/server"
	"ayga/mcp/internal/terminal"
)

var (
	callArgs     []string
	callArgsJSON string
	callTimeout  int
)

// callCmd invokes one tool from the terminal, the same way an agent would.
var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke a tool and print its JSON payload",
	Long: `The call command runs one tool exactly as the MCP server would and prints the
resulting JSON payload to stdout. Arguments are given as repeated --arg key=value
pairs or as a JSON object with --args-json; --arg values override --args-json.

Example:
  ayga-mcp call search_perplexity --arg query="latest Go release" --timeout 60`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toolArgs, err := parseCallArgs(callArgsJSON, callArgs)
		if err != nil {
			return err
		}
		if callTimeout > 0 {
			toolArgs["timeout"] = callTimeout
		}

		a := newApp()
		srv := server.New(registry.Default(), a.api,
			server.WithLogger(a.logger),
			server.WithVersion(Version),
			server.WithDefaultTimeout(a.defaultTimeout()),
		)

		progress := terminal.NewProgress(os.Stderr, "Waiting for "+args[0], terminal.IsTerminal(os.Stderr))
		raw, err := srv.Invoke(cmd.Context(), args[0], toolArgs, progress.Update)
		progress.Done()

		out := cmd.OutOrStdout()
		if err != nil {
			fmt.Fprintln(out, server.ErrorPayload(err))
			fmt.Fprint(os.Stderr, logging.FormatToolError(err))
			return errReported
		}
		fmt.Fprintln(out, server.Render(raw))
		return nil
	},
}

func init() {
	callCmd.Flags().StringArrayVar(&callArgs, "arg", nil, "Tool argument as key=value (repeatable)")
	callCmd.Flags().StringVar(&callArgsJSON, "args-json", "", "Tool arguments as a JSON object")
	callCmd.Flags().IntVar(&callTimeout, "timeout", 0, "Polling deadline in seconds (default from config)")
	rootCmd.AddCommand(callCmd)
}

// parseCallArgs merges a JSON object with key=value pairs. Pair values stay
// strings; integer fields accept numeric strings.
func parseCallArgs(rawJSON string, pairs []string) (map[string]any, error) {
	out := map[string]any{}
	if strings.TrimSpace(rawJSON) != "" {
		if err := json.Unmarshal([]byte(rawJSON), &out); err != nil {
			return nil, fmt.Errorf("--args-json must be a JSON object: %w", err)
		}
		if out == nil {
			out = map[string]any{}
		}
	}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("--arg %q must look like key=value", p)
		}
		out[k] = v
	}
	return out, nil
}
