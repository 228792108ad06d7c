// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build !darwin

package keychain

import "errors"

// newSecurityBackend reports that the security CLI exists only on macOS,
// so NewManager falls back to the keyring library.
func newSecurityBackend() (keychainBackend, error) {
	return nil, errors.New("security backend only available on macOS")
}
