// Package format renders Trello card payloads for output.
//
// Everything in this package is a pure function of its inputs: no
// network, no environment, identical output for identical payloads.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgmdan/trello-codex-skill/pkg/models"
)

// Markdown renders a card as a human-readable markdown summary with
// fixed section order: title, metadata, description, attachments,
// comments. Comments are listed most recent first and truncated to
// commentLimit; a non-positive limit keeps them all.
func Markdown(card *models.Card, commentLimit int) string {
	var lines []string

	title := card.Name
	if title == "" {
		title = "<unnamed card>"
	}
	lines = append(lines, fmt.Sprintf("## Trello card: %s", title))

	cardURL := card.ShortURL
	if cardURL == "" {
		cardURL = card.URL
	}
	if cardURL != "" {
		lines = append(lines, fmt.Sprintf("[Open in Trello](%s)", cardURL))
	}
	lines = append(lines, "")

	shortLink := card.ShortLink
	if shortLink == "" {
		shortLink = "<n/a>"
	}
	lines = append(lines,
		fmt.Sprintf("- Short link: %s", shortLink),
		fmt.Sprintf("- Due: %s", formatTime(card.Due)),
		fmt.Sprintf("- Members: %s", formatMembers(card.Members)),
		fmt.Sprintf("- Labels: %s", formatLabels(card.Labels)),
	)
	if badges := summarizeBadges(card.Badges); badges != "" {
		lines = append(lines, fmt.Sprintf("- Badges: %s", badges))
	}
	if card.DateLastActivity != "" {
		lines = append(lines, fmt.Sprintf("- Last activity: %s", formatTime(card.DateLastActivity)))
	}
	lines = append(lines, "")

	lines = append(lines, "### Description")
	if desc := strings.TrimSpace(card.Desc); desc != "" {
		lines = append(lines, indent(desc, "  "))
	} else {
		lines = append(lines, "<no description>")
	}
	lines = append(lines, "")

	lines = append(lines, "### Attachments")
	if len(card.Attachments) > 0 {
		for _, attachment := range card.Attachments {
			lines = append(lines, formatAttachment(attachment))
		}
	} else {
		lines = append(lines, "<no attachments>")
	}
	lines = append(lines, "")

	lines = append(lines, "### Comments")
	comments := recentComments(card.Actions, commentLimit)
	if len(comments) > 0 {
		for _, comment := range comments {
			author := comment.MemberCreator.FullName
			if author == "" {
				author = comment.MemberCreator.Username
			}
			if author == "" {
				author = comment.MemberCreator.ID
			}
			if author == "" {
				author = "Unknown"
			}
			lines = append(lines, fmt.Sprintf("- %s by %s: %s", formatTime(comment.Date), author, comment.Data.Text))
		}
	} else {
		lines = append(lines, "<no comments>")
	}

	return strings.Join(lines, "\n")
}

// Summary renders the short confirmation shown after card creation.
// board is the identifier the caller supplied; listName falls back to
// the raw list ID when resolution was skipped.
func Summary(card *models.Card, board, listName string) string {
	if listName == "" {
		listName = card.ListID
	}
	lines := []string{
		"Created Trello card:",
		fmt.Sprintf("- Name: %s", card.Name),
		fmt.Sprintf("- Board: %s", board),
		fmt.Sprintf("- List: %s", listName),
		fmt.Sprintf("- URL: %s", card.ShortURL),
		fmt.Sprintf("- ID: %s", card.ID),
	}
	return strings.Join(lines, "\n")
}

// JSON emits the card as indented JSON. When the raw API payload is
// available it is passed through untouched, so no fields are lost to
// decoding.
func JSON(card *models.Card) (string, error) {
	if len(card.Raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, card.Raw, "", "  "); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	out, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// recentComments filters comment actions, orders them most recent
// first, and truncates to limit.
func recentComments(actions []models.Action, limit int) []models.Action {
	var comments []models.Action
	for _, action := range actions {
		if action.Data.Text == "" {
			continue
		}
		comments = append(comments, action)
	}

	sort.SliceStable(comments, func(i, j int) bool {
		ti, iOK := parseTime(comments[i].Date)
		tj, jOK := parseTime(comments[j].Date)
		if iOK && jOK {
			return ti.After(tj)
		}
		return comments[i].Date > comments[j].Date
	})

	if limit > 0 && len(comments) > limit {
		comments = comments[:limit]
	}
	return comments
}

func formatAttachment(attachment models.Attachment) string {
	name := attachment.Name
	if name == "" {
		name = "Attachment"
	}
	attURL := attachment.URL
	if attURL == "" {
		attURL = attachment.DownloadURL
	}

	var meta []string
	if attachment.Bytes > 0 {
		meta = append(meta, humanBytes(attachment.Bytes))
	}
	if attachment.MimeType != "" {
		meta = append(meta, attachment.MimeType)
	}
	if attachment.IsUpload {
		meta = append(meta, "uploaded")
	}
	metaText := ""
	if len(meta) > 0 {
		metaText = fmt.Sprintf(" (%s)", strings.Join(meta, ", "))
	}

	if attURL != "" {
		return fmt.Sprintf("- [%s](%s)%s", name, attURL, metaText)
	}
	return fmt.Sprintf("- %s%s", name, metaText)
}

func formatLabels(labels []models.Label) string {
	var parts []string
	for _, label := range labels {
		name := label.Name
		if name == "" {
			name = label.ID
		}
		if name == "" {
			name = "<label>"
		}
		if label.Color != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", name, label.Color))
		} else {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "<none>"
	}
	return strings.Join(parts, ", ")
}

func formatMembers(members []models.Member) string {
	var parts []string
	for _, member := range members {
		name := member.FullName
		if name == "" {
			name = member.Username
		}
		if name == "" {
			name = member.ID
		}
		if name == "" {
			name = "<member>"
		}
		if member.Username != "" && !strings.Contains(name, member.Username) {
			parts = append(parts, fmt.Sprintf("%s (@%s)", name, member.Username))
		} else {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "<none>"
	}
	return strings.Join(parts, ", ")
}

func summarizeBadges(badges models.Badges) string {
	var pieces []string
	if badges.Due != "" {
		pieces = append(pieces, fmt.Sprintf("due %s", formatTime(badges.Due)))
	}
	if badges.DueComplete {
		pieces = append(pieces, "completed")
	}
	if badges.Subscribed {
		pieces = append(pieces, "subscribed")
	}
	if badges.Attachments > 0 {
		pieces = append(pieces, fmt.Sprintf("%d attachments", badges.Attachments))
	}
	if badges.CheckItems > 0 {
		pieces = append(pieces, fmt.Sprintf("%d/%d checklist items", badges.CheckItemsChecked, badges.CheckItems))
	}
	if badges.Votes > 0 {
		pieces = append(pieces, fmt.Sprintf("votes: %d", badges.Votes))
	}
	return strings.Join(pieces, ", ")
}

// formatTime normalizes a Trello RFC 3339 timestamp for display.
// Empty values render as "n/a"; unparseable values pass through.
func formatTime(value string) string {
	if value == "" {
		return "n/a"
	}
	if t, ok := parseTime(value); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return value
}

func parseTime(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func humanBytes(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f%s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1fPB", size)
}

func indent(text, prefix string) string {
	parts := strings.Split(text, "\n")
	for i, line := range parts {
		if line != "" {
			parts[i] = prefix + line
		}
	}
	return strings.Join(parts, "\n")
}
