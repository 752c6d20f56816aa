package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgmdan/trello-codex-skill/internal/format"
	"github.com/dgmdan/trello-codex-skill/internal/logging"
	"github.com/dgmdan/trello-codex-skill/internal/trello"
	"github.com/dgmdan/trello-codex-skill/pkg/models"
)

// createCmd files a new card on a board and list.
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a Trello card on a board and list",
	Long: `Create a Trello card on the given board and list.

The list may be referenced by its ID or by its display name. Names are
matched case-insensitively against the board's open lists; when several
lists share a name, the first one in board order is used.

Example:
  trello-skill create --board Hk3fLplc --list "To Do" --name "Fix login bug"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		board, _ := cmd.Flags().GetString("board")
		listRef, _ := cmd.Flags().GetString("list")
		name, _ := cmd.Flags().GetString("name")
		desc, _ := cmd.Flags().GetString("desc")
		due, _ := cmd.Flags().GetString("due")
		pos, _ := cmd.Flags().GetString("pos")
		labelIDs, _ := cmd.Flags().GetStringArray("label")
		memberIDs, _ := cmd.Flags().GetStringArray("member")
		urlSource, _ := cmd.Flags().GetString("url-source")
		outputFormat, _ := cmd.Flags().GetString("format")

		if board == "" {
			return fmt.Errorf("board flag is required")
		}
		if listRef == "" {
			return fmt.Errorf("list flag is required")
		}
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("name flag is required and must not be empty")
		}
		if outputFormat != "summary" && outputFormat != "json" {
			return fmt.Errorf("invalid format %q: must be summary or json", outputFormat)
		}

		client, err := requireClient()
		if err != nil {
			return err
		}

		listID := listRef
		listName := ""
		if !trello.IsID(listRef) {
			lists, err := client.GetBoardLists(board)
			if err != nil {
				return err
			}
			resolved, err := trello.ResolveList(lists, listRef)
			if err != nil {
				return fmt.Errorf("cannot find list %q on board %q: %w", listRef, board, err)
			}
			listID = resolved.ID
			listName = resolved.Name
			logging.Debug("resolved list", "list", listRef, "list_id", listID)
		}

		logging.Info("creating card", "board", board, "list_id", listID, "name", name)

		card, err := client.CreateCard(models.CardFields{
			Name:      name,
			ListID:    listID,
			Desc:      desc,
			Due:       due,
			Pos:       pos,
			LabelIDs:  labelIDs,
			MemberIDs: memberIDs,
			URLSource: urlSource,
		})
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

		fmt.Fprintln(cmd.OutOrStdout(), format.Summary(card, board, listName))
		return nil
	},
}

func init() {
	createCmd.Flags().String("board", "", "Board short link or full ID (required)")
	createCmd.Flags().String("list", "", "List name (case-insensitive) or list ID on the board (required)")
	createCmd.Flags().String("name", "", "Title for the new card (required)")
	createCmd.Flags().String("desc", "", "Card description")
	createCmd.Flags().String("due", "", "ISO 8601 due date/time")
	createCmd.Flags().String("pos", "bottom", "Card position: top, bottom, or a fractional value")
	createCmd.Flags().StringArray("label", nil, "Label ID to attach (repeatable)")
	createCmd.Flags().StringArray("member", nil, "Member ID to assign (repeatable)")
	createCmd.Flags().String("url-source", "", "URL to attach to the card on creation")
	createCmd.Flags().String("format", "summary", "Output format: summary or json")
}
