package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgmdan/trello-codex-skill/internal/logging"
)

// updateCmd applies small mutations to an existing card: comments,
// file attachments, and due-complete status.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Comment on, attach files to, or complete a Trello card",
	Long: `Leave a comment, upload attachments, or mark a Trello card as complete.

At least one of --comment, --attach, or --complete must be given. Actions
are applied in that order and reported individually.

Example:
  trello-skill update --card abc123XY --comment "Deployed to staging" --complete`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cardID, _ := cmd.Flags().GetString("card")
		comment, _ := cmd.Flags().GetString("comment")
		attachments, _ := cmd.Flags().GetStringArray("attach")
		complete, _ := cmd.Flags().GetBool("complete")

		if cardID == "" {
			return fmt.Errorf("card flag is required")
		}
		if comment == "" && len(attachments) == 0 && !complete {
			return fmt.Errorf("specify at least one action: --comment, --attach, or --complete")
		}

		client, err := requireClient()
		if err != nil {
			return err
		}

		if comment != "" {
			if err := client.AddComment(cardID, comment); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "- Comment added.")
		}

		for _, path := range attachments {
			attachment, err := client.AttachFile(cardID, path)
			if err != nil {
				return err
			}
			logging.Debug("uploaded attachment", "card_id", cardID, "attachment_id", attachment.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "- Uploaded %s.\n", attachment.Name)
		}

		if complete {
			if err := client.MarkComplete(cardID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "- Card marked complete.")
		}

		return nil
	},
}

func init() {
	updateCmd.Flags().String("card", "", "Card short link or full ID (required)")
	updateCmd.Flags().String("comment", "", "Text to add as a comment on the card")
	updateCmd.Flags().StringArray("attach", nil, "Path to a file to upload (repeatable)")
	updateCmd.Flags().Bool("complete", false, "Mark the card as complete (sets dueComplete)")
}
