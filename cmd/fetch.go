package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgmdan/trello-codex-skill/internal/format"
	"github.com/dgmdan/trello-codex-skill/internal/logging"
	"github.com/dgmdan/trello-codex-skill/internal/trello"
)

// fetchCmd retrieves a single card with its comments and attachments.
var fetchCmd = &cobra.Command{
	Use:   "fetch CARD_ID",
	Short: "Fetch a Trello card with comments and attachments",
	Long: `Fetch a Trello card's details, comments, and attachments.

The card may be identified by its short link (the token in the card URL),
its full 24-character ID, or its numeric short ID.

Example:
  trello-skill fetch abc123XY --format markdown --actions-limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		if outputFormat != "markdown" && outputFormat != "json" {
			return fmt.Errorf("invalid format %q: must be markdown or json", outputFormat)
		}

		actionsLimit, err := cmd.Flags().GetInt("actions-limit")
		if err != nil {
			return err
		}
		if actionsLimit <= 0 {
			return fmt.Errorf("actions limit must be a positive integer, got %d", actionsLimit)
		}

		client, err := requireClient()
		if err != nil {
			return err
		}

		logging.Info("fetching card", "card_id", args[0], "actions_limit", actionsLimit)

		card, err := client.GetCard(args[0], actionsLimit)
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			out, err := format.JSON(card)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), format.Markdown(card, actionsLimit))
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("format", "markdown", "Output format: markdown or json")
	fetchCmd.Flags().Int("actions-limit", trello.DefaultActionsLimit, "Maximum number of comment actions to fetch")
}
