// Package models defines data structures shared across the application.
package models

import "encoding/json"

// Card represents a Trello card as returned by the REST API.
//
// Dates are kept as the RFC 3339 strings Trello sends; formatting
// normalizes them for display.
type Card struct {
	// ID is the full 24-character card identifier
	ID string `json:"id"`

	// Name is the card title
	Name string `json:"name"`

	// Desc is the card description (markdown)
	Desc string `json:"desc"`

	// Due is the due date, empty when unset
	Due string `json:"due"`

	// DueComplete indicates the due date has been marked done
	DueComplete bool `json:"dueComplete"`

	// ShortLink is Trello's compact URL-safe identifier
	ShortLink string `json:"shortLink"`

	// ShortURL is the canonical short URL for the card
	ShortURL string `json:"shortUrl"`

	// URL is the full card URL
	URL string `json:"url"`

	// DateLastActivity is the timestamp of the most recent change
	DateLastActivity string `json:"dateLastActivity"`

	// BoardID and ListID locate the card
	BoardID string `json:"idBoard"`
	ListID  string `json:"idList"`

	Badges      Badges       `json:"badges"`
	Labels      []Label      `json:"labels"`
	Members     []Member     `json:"members"`
	Attachments []Attachment `json:"attachments"`

	// Actions holds commentCard actions when requested
	Actions []Action `json:"actions"`

	// Raw is the undecoded API response body, retained so JSON output
	// can pass the payload through without dropping fields.
	Raw json.RawMessage `json:"-"`
}

// Badges summarizes card counters shown on the board front.
type Badges struct {
	Due               string `json:"due"`
	DueComplete       bool   `json:"dueComplete"`
	Subscribed        bool   `json:"subscribed"`
	Attachments       int    `json:"attachments"`
	CheckItems        int    `json:"checkItems"`
	CheckItemsChecked int    `json:"checkItemsChecked"`
	Votes             int    `json:"votes"`
}

// Label is a colored tag attached to a card.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Member is a Trello user referenced by a card or action.
type Member struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

// Attachment is a file or link attached to a card.
type Attachment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	DownloadURL string `json:"downloadUrl"`
	Bytes       int64  `json:"bytes"`
	Date        string `json:"date"`
	MimeType    string `json:"mimeType"`
	IsUpload    bool   `json:"isUpload"`
}

// Action is a Trello audit-log entry; commentCard actions carry the
// comment text in Data.Text.
type Action struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Date          string     `json:"date"`
	Data          ActionData `json:"data"`
	MemberCreator Member     `json:"memberCreator"`
}

// ActionData holds the type-specific payload of an action.
type ActionData struct {
	Text string `json:"text"`
}

// List is a named column on a board.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Board is a Trello workspace containing lists.
type Board struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortLink string `json:"shortLink"`
}

// CardFields carries the caller-supplied values for card creation.
// Name and ListID are required; everything else is optional.
type CardFields struct {
	Name      string
	ListID    string
	Desc      string
	Due       string
	Pos       string
	LabelIDs  []string
	MemberIDs []string
	URLSource string
}
