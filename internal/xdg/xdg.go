// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg provides helpers to resolve XDG Base Directory paths for ayga-mcp.
// It implements the XDG Base Directory specification for determining appropriate
// locations for configuration files, falling back to traditional locations when
// XDG environment variables are not set.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "ayga-mcp"

// ConfigDir returns the XDG config directory for ayga-mcp.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/ayga-mcp when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
