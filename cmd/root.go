// Package cmd provides the command-line interface for the Trello skill tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dgmdan/trello-codex-skill/internal/config"
	"github.com/dgmdan/trello-codex-skill/internal/logging"
	"github.com/dgmdan/trello-codex-skill/internal/trello"
)

var rootCmd = &cobra.Command{
	Use:   "trello-skill",
	Short: "Fetch and create Trello cards for use as working context",
	Long: `trello-skill talks to the Trello REST API so a coding assistant can pull
card details (description, comments, attachments) into a conversation or
file new cards from one.

Credentials come from TRELLO_API_KEY and TRELLO_TOKEN. When the token is
missing, commands print an authorization link instead of calling the API;
open it, approve the application, and export the token Trello displays.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(authCmd)
}

// errAuthPending is returned when credential resolution halted waiting
// for the user to mint a token, so the process exits non-zero without
// touching the API.
var errAuthPending = errors.New("authorization pending; set TRELLO_TOKEN and re-run")

// requireClient resolves credentials and builds the API client. On a
// pending resolution it prints the authorization instructions and
// returns errAuthPending.
func requireClient() (*trello.Client, error) {
	resolution, err := config.Resolve()
	if err != nil {
		return nil, err
	}

	if !resolution.Ready {
		printAuthInstructions(resolution.AuthURL)
		return nil, errAuthPending
	}

	logging.Debug("credentials resolved",
		"api_key", logging.MaskSensitive(resolution.Credentials.APIKey),
		"token", logging.MaskSensitive(resolution.Credentials.Token),
		"base_url", resolution.Credentials.BaseURL)

	return trello.NewClient(resolution.Credentials), nil
}

func printAuthInstructions(authURL string) {
	color.New(color.FgYellow).Fprintln(os.Stderr, "TRELLO_TOKEN is not configured.")
	fmt.Fprintln(os.Stderr, "To grant access, open the following link while signed in as a board member,")
	fmt.Fprintln(os.Stderr, "approve the application, and set TRELLO_TOKEN to the token Trello displays:")
	fmt.Fprintln(os.Stderr)
	color.New(color.FgCyan).Fprintf(os.Stderr, "  %s\n", authURL)
}
