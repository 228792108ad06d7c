// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for ayga-mcp.
// This module manages all interactions with the OS keychain/credential store,
// which holds the executor username, password and API key saved by `ayga-mcp login`.
//
// On macOS the native `security` command is tried first; every other platform
// goes through github.com/99designs/keyring with native backends only.
package keychain

import (
	"errors"
	"runtime"
	"strings"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// ErrNotFound is returned when no credentials are stored.
var ErrNotFound = errors.New("no stored credentials")

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	backend keychainBackend
}

// keychainBackend defines the interface for keychain operations.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "ayga-mcp"

// Keys used for storing secrets in the OS keychain.
const (
	KeyUsername = "executor_username"
	KeyPassword = "executor_password"
	KeyAPIKey   = "executor_api_key"
)

// Credentials are the secrets persisted by login.
type Credentials struct {
	Username string
	Password string
	APIKey   string
}

// Empty reports whether no secret is set.
func (c Credentials) Empty() bool {
	return c.Username == "" && c.Password == "" && c.APIKey == ""
}

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	// Try native security backend first on macOS
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{backend: backend}, nil
		}
		// Fall through to keyring library if security command fails
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return NewWithKeyring(ring), nil
}

// NewWithKeyring wraps an already opened keyring, e.g. keyring.NewArrayKeyring in tests.
func NewWithKeyring(ring keyring.Keyring) *Manager {
	return &Manager{backend: ringBackend{ring: ring}}
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}
	return globalManager, nil
}

// allowedBackends lists the native stores for the current OS. No file fallback.
func allowedBackends() []keyring.BackendType {
	switch runtime.GOOS {
	case "darwin":
		// Pass requires the 'pass' utility: brew install pass
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend}
	default:
		return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	}
}

// openRing opens the OS keyring using native platform backends only.
func openRing() (keyring.Keyring, error) {
	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends(),
		PassPrefix:      ServiceName,
		WinCredPrefix:   ServiceName,
		KWalletAppID:    ServiceName,
		KWalletFolder:   ServiceName,
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. On macOS 26.0+, install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}
	return ring, nil
}

// SaveCredentials stores the non-empty fields of c, replacing previous values.
// This method is thread-safe.
func (m *Manager) SaveCredentials(c Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, kv := range [][2]string{{KeyUsername, c.Username}, {KeyPassword, c.Password}, {KeyAPIKey, c.APIKey}} {
		if kv[1] == "" {
			_ = m.backend.Delete(kv[0])
			continue
		}
		if err := m.backend.Set(kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// LoadCredentials retrieves stored credentials. ErrNotFound means nothing is stored.
// This method is thread-safe.
func (m *Manager) LoadCredentials() (Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var c Credentials
	for _, f := range []struct {
		key string
		dst *string
	}{{KeyUsername, &c.Username}, {KeyPassword, &c.Password}, {KeyAPIKey, &c.APIKey}} {
		v, err := m.backend.Get(f.key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return Credentials{}, err
		}
		*f.dst = strings.TrimSpace(v)
	}
	if c.Empty() {
		return c, ErrNotFound
	}
	return c, nil
}

// ClearCredentials removes all stored secrets.
// This method is thread-safe.
func (m *Manager) ClearCredentials() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_ = m.backend.Delete(KeyUsername)
	_ = m.backend.Delete(KeyPassword)
	_ = m.backend.Delete(KeyAPIKey)
	return nil
}

// ringBackend adapts keyring.Keyring to keychainBackend.
type ringBackend struct {
	ring keyring.Keyring
}

func (r ringBackend) Set(key, value string) error {
	return r.ring.Set(keyring.Item{Key: key, Data: []byte(value)})
}

func (r ringBackend) Get(key string) (string, error) {
	it, err := r.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(it.Data), nil
}

func (r ringBackend) Delete(key string) error {
	err := r.ring.Remove(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}
