// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	apperr "ayga/mcp/internal/errors"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// FormatToolError formats a failed tool call for the terminal: a styled
// title chosen by error kind, the masked message, and a hint when one helps.
func FormatToolError(err error) string {
	if err == nil {
		return ""
	}
	var title, hint string
	switch apperr.KindOf(err) {
	case apperr.Validation:
		title = "Invalid Arguments"
		hint = "Run 'ayga-mcp tools' to see the accepted arguments."
	case apperr.Auth:
		title = "Authentication Failed"
		hint = "Check your credentials or run 'ayga-mcp login'."
	case apperr.Timeout:
		title = "Task Timed Out"
		hint = "The task may still finish remotely; retry with a larger --timeout."
	case apperr.Submission:
		title = "Task Rejected"
	case apperr.UnknownTool:
		title = "Unknown Tool"
		hint = "Run 'ayga-mcp tools' to list available tools."
	case apperr.Transport:
		title = "Connection Problem"
		hint = "Run 'ayga-mcp health' to check connectivity."
	default:
		title = "Executor Error"
	}

	var b strings.Builder
	b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint(title))
	b.WriteString("\n\n")
	b.WriteString(Mask(apperr.Message(err)))
	b.WriteString("\n")
	if hint != "" {
		b.WriteString("\n")
		b.WriteString(pterm.NewStyle(pterm.FgGray).Sprint(hint))
		b.WriteString("\n")
	}
	return b.String()
}
