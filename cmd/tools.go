// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ayga/mcp/internal/registry"
)

var toolsOutput string

// toolListing is the serialized form of one tool.
type toolListing struct {
	Name        string         `json:"name" yaml:"name"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	TaskKind    string         `json:"task_kind,omitempty" yaml:"task_kind,omitempty"`
	Category    string         `json:"category" yaml:"category"`
	InputSchema map[string]any `json:"input_schema" yaml:"input_schema"`
}

// toolsCmd prints the tool registry. It never contacts the executor.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools served over MCP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeTools(cmd.OutOrStdout(), registry.Default().List(), toolsOutput)
	},
}

func init() {
	toolsCmd.Flags().StringVarP(&toolsOutput, "output", "o", "table", "Output format: table, json or yaml")
	rootCmd.AddCommand(toolsCmd)
}

func listing(tools []registry.Tool) []toolListing {
	out := make([]toolListing, 0, len(tools))
	for _, t := range tools {
		out = append(out, toolListing{
			Name:        t.Name,
			Title:       t.Title,
			Description: t.Description,
			TaskKind:    t.TaskKind,
			Category:    t.Category.String(),
			InputSchema: t.Schema.JSONSchema(),
		})
	}
	return out
}

// writeTools renders tools to w in the requested format.
func writeTools(w io.Writer, tools []registry.Tool, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listing(tools))
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(listing(tools))
	case "table", "":
		data := pterm.TableData{{"TOOL", "TITLE", "ARGUMENTS"}}
		for _, t := range tools {
			var fields []string
			for _, f := range t.Schema.Fields() {
				name := f.Name
				if f.Required {
					name += "*"
				}
				fields = append(fields, name)
			}
			data = append(data, []string{t.Name, t.Title, strings.Join(fields, " ")})
		}
		return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
	}
	return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
}
