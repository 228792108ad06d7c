// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"errors"
	"os"
	"strings"

	"ayga/mcp/internal/config"
	"ayga/mcp/internal/keychain"
)

// Source names where credentials were found.
type Source string

const (
	SourceFlags    Source = "flags"
	SourceEnv      Source = "env"
	SourceKeychain Source = "keychain"
	SourceNone     Source = "none"
)

// Method is how a Session obtains its token.
type Method string

const (
	MethodPassword  Method = "password"
	MethodAPIKey    Method = "api_key"
	MethodAnonymous Method = "anonymous"
)

// Credentials are the secrets used to obtain an executor token.
type Credentials struct {
	Username string
	Password string
	APIKey   string
	Source   Source
}

// Method reports which login flow the credentials select.
// A username with a password wins over an API key.
func (c Credentials) Method() Method {
	switch {
	case c.Username != "" && c.Password != "":
		return MethodPassword
	case c.APIKey != "":
		return MethodAPIKey
	}
	return MethodAnonymous
}

// Store is the subset of the keychain used for credential lookup.
type Store interface {
	LoadCredentials() (keychain.Credentials, error)
}

// Resolve picks credentials from flags, then the environment, then store.
// The first layer that selects a login flow wins as a whole; layers are
// never mixed. lookup defaults to os.Getenv and store may be nil.
func Resolve(flags Credentials, lookup func(string) string, store Store) (Credentials, error) {
	if lookup == nil {
		lookup = os.Getenv
	}

	flags = trimmed(flags)
	if flags.Method() != MethodAnonymous {
		flags.Source = SourceFlags
		return flags, nil
	}

	env := Credentials{
		Username: config.Getenv(lookup, "AYGA_USERNAME", "REDIS_USERNAME"),
		Password: config.Getenv(lookup, "AYGA_PASSWORD", "REDIS_PASSWORD"),
		APIKey:   config.Getenv(lookup, "AYGA_API_KEY", "REDIS_API_KEY"),
		Source:   SourceEnv,
	}
	if env.Method() != MethodAnonymous {
		return env, nil
	}

	if store != nil {
		kc, err := store.LoadCredentials()
		switch {
		case err == nil:
			c := trimmed(Credentials{Username: kc.Username, Password: kc.Password, APIKey: kc.APIKey})
			if c.Method() != MethodAnonymous {
				c.Source = SourceKeychain
				return c, nil
			}
		case !errors.Is(err, keychain.ErrNotFound):
			return Credentials{Source: SourceNone}, err
		}
	}
	return Credentials{Source: SourceNone}, nil
}

func trimmed(c Credentials) Credentials {
	c.Username = strings.TrimSpace(c.Username)
	c.APIKey = strings.TrimSpace(c.APIKey)
	return c
}
