// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for ayga-mcp.
// It implements the MCP server entry point plus terminal commands for listing
// and calling tools, checking executor health and managing credentials, using
// the Cobra CLI framework. Human-facing output goes to stderr with pterm;
// stdout carries only tool payloads and MCP frames.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// errReported marks a failure that has already been shown to the user.
var errReported = errors.New("already reported")

var (
	showVersion bool

	flagAPIURL    string
	flagUsername  string
	flagPassword  string
	flagAPIKey    string
	flagLogLevel  string
	flagLogFormat string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ayga-mcp",
	Short: "MCP tool server for the ayga parser executor",
	Long: `ayga-mcp exposes the parsers of the ayga executor (search engines, AI assistants,
translators and scrapers) as Model Context Protocol tools. Agents launch
'ayga-mcp serve'; the other commands help you inspect and test the tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			return printVersion(cmd)
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show client and executor version information")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagAPIURL, "api-url", "", "Executor base URL (default https://redis.ayga.tech)")
	pf.StringVar(&flagUsername, "username", "", "Executor username")
	pf.StringVar(&flagPassword, "password", "", "Executor password")
	pf.StringVar(&flagAPIKey, "api-key", "", "Executor API key")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error, off")
	pf.StringVar(&flagLogFormat, "log-format", "", "Log format: colorful or json")
}
