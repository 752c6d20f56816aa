package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgmdan/trello-codex-skill/internal/config"
)

// authCmd prints the authorization URL without contacting the API, as
// an explicit entry point to the token bootstrap flow.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Print the Trello authorization URL for the configured API key",
	Long: `Print the URL used to authorize this application and mint an API token.

Open the link while signed in as a board member, approve the application,
and export the token Trello displays as TRELLO_TOKEN. Requires only
TRELLO_API_KEY to be set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolution, err := config.Resolve()
		if err != nil {
			return err
		}

		authURL := resolution.AuthURL
		if resolution.Ready {
			fmt.Fprintln(cmd.ErrOrStderr(), "TRELLO_TOKEN is already set; a new token would replace it.")
			authURL = config.AuthorizationURL(resolution.Credentials.APIKey, resolution.Credentials.AuthScope)
		}

		fmt.Fprintln(cmd.OutOrStdout(), authURL)
		return nil
	},
}
