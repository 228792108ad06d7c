// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"ayga/mcp/internal/registry"
	"ayga/mcp/internal/server"
	"ayga/mcp/internal/telemetry"
)

var serveHTTPAddr string

// serveCmd runs the MCP server. This is the command agents launch.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP tool server (stdio by default)",
	Long: `The serve command exposes every parser, metadata and key-value tool over the
Model Context Protocol. By default it speaks MCP on stdin/stdout, which is what
desktop agents expect. Use --http to serve the streamable HTTP transport instead.

Logs are written to stderr; stdout is reserved for protocol frames.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a := newApp()

		shutdown, err := telemetry.Setup(ctx, a.cfg.Telemetry, Version)
		if err != nil {
			a.logger.Warn("tracing disabled", a.logger.Args("error", err.Error()))
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(flushCtx)
		}()

		opts := []server.Option{
			server.WithLogger(a.logger),
			server.WithVersion(Version),
			server.WithDefaultTimeout(a.defaultTimeout()),
		}
		if obs, err := telemetry.NewGlobalObserver(); err == nil {
			opts = append(opts, server.WithObserver(obs))
		} else {
			a.logger.Warn("metrics disabled", a.logger.Args("error", err.Error()))
		}
		srv := server.New(registry.Default(), a.api, opts...)

		a.logger.Debug("credentials resolved", a.logger.Args(
			"api_url", a.cfg.APIURL,
			"source", string(a.creds.Source),
			"method", string(a.creds.Method()),
		))
		if serveHTTPAddr != "" {
			return srv.ServeHTTP(ctx, serveHTTPAddr)
		}
		return srv.ServeStdio(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "Serve streamable HTTP on this address (e.g. :8080) instead of stdio")
	rootCmd.AddCommand(serveCmd)
}
