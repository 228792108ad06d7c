// Package main is the entry point for ayga-mcp.
// It serves the ayga parser executor as Model Context Protocol tools.
package main

import (
	"ayga/mcp/cmd"
)

// main is the entry point for the ayga-mcp application.
func main() {
	cmd.Execute()
}
