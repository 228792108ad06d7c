// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"ayga/mcp/internal/auth"
	"ayga/mcp/internal/config"
	apperr "ayga/mcp/internal/errors"
	"ayga/mcp/internal/httperrors"
	"ayga/mcp/internal/keychain"
	"ayga/mcp/internal/logging"
	"ayga/mcp/internal/terminal"
)

// loginCmd verifies executor credentials and stores them in the OS keychain.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Verify executor credentials and save them to the keychain",
	Long: `The login command stores the credentials that serve and call use to obtain
an executor token. Credentials come from --username/--password or --api-key,
from AYGA_USERNAME/AYGA_PASSWORD or AYGA_API_KEY, or from an interactive prompt.
Leave the username empty at the prompt to enter an API key instead.
When --api-url is given it is saved to the config file as well.

The credentials are checked against the executor before anything is saved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		creds := a.creds
		if creds.Source == auth.SourceKeychain || creds.Method() == auth.MethodAnonymous {
			var err error
			creds, err = promptCredentials(terminal.NewPrompter())
			if err != nil {
				return err
			}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		session := auth.NewSession(a.api, creds, auth.WithSessionLogger(a.logger))
		err := spin("Verifying credentials with "+a.api.BaseURL(), func() error {
			_, err := session.Token(ctx)
			return err
		})
		if err != nil {
			if apperr.KindOf(err) == apperr.Transport {
				httperrors.Present(os.Stderr, err, "verifying credentials")
				return errReported
			}
			return errors.New(logging.PresentError("login failed", err))
		}

		km, err := keychain.GetManager()
		if err != nil {
			return fmt.Errorf("keychain unavailable: %w", err)
		}
		if err := km.SaveCredentials(keychain.Credentials{
			Username: creds.Username,
			Password: creds.Password,
			APIKey:   creds.APIKey,
		}); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}

		if flagAPIURL != "" {
			if err := rememberAPIURL(flagAPIURL); err != nil {
				a.logger.Warn("API URL not saved to config", a.logger.Args("error", err.Error()))
			}
		}

		who := creds.Username
		if creds.Method() == auth.MethodAPIKey {
			who = "API key"
		}
		pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Logged in to %s as %s", a.api.BaseURL(), who)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// rememberAPIURL stores url in the config file so later commands use the
// executor the credentials were verified against.
func rememberAPIURL(url string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.APIURL = url
	return config.Save(cfg)
}

// promptCredentials asks for a username and password, or an API key when
// the username is left empty. Prompt lines are cleared afterwards on a TTY.
func promptCredentials(p *terminal.Prompter) (auth.Credentials, error) {
	creds := auth.Credentials{Source: auth.SourceFlags}
	username, err := p.ReadLine("Username (leave empty to use an API key): ")
	if err != nil {
		return creds, err
	}
	if username == "" {
		key, err := p.ReadSecret("API key: ")
		if err != nil {
			return creds, err
		}
		if key == "" {
			return creds, errors.New("no credentials entered")
		}
		creds.APIKey = key
		clearPrompt(2)
		return creds, nil
	}
	password, err := p.ReadSecret("Password: ")
	if err != nil {
		return creds, err
	}
	if password == "" {
		return creds, errors.New("password must not be empty")
	}
	creds.Username, creds.Password = username, password
	clearPrompt(2)
	return creds, nil
}

// clearPrompt erases the last n prompt lines from stderr.
func clearPrompt(n int) {
	if !terminal.IsTerminal(os.Stderr) {
		return
	}
	width := terminal.Width(os.Stderr)
	terminal.ClearPreviousLines(os.Stderr, n*width, width)
}
