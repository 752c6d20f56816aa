// Package trello provides functionality for interacting with the Trello REST API.
package trello

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/dgmdan/trello-codex-skill/internal/config"
	"github.com/dgmdan/trello-codex-skill/internal/logging"
	"github.com/dgmdan/trello-codex-skill/pkg/models"
)

// requestTimeout bounds every round-trip to Trello.
const requestTimeout = 30 * time.Second

// DefaultActionsLimit is the number of commentCard actions requested
// when the caller does not specify a limit.
const DefaultActionsLimit = 100

// Client handles interactions with the Trello API. Authentication is
// carried as key/token query parameters on every request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      config.Credentials
}

// NewClient creates a Trello client from resolved credentials.
func NewClient(creds config.Credentials) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(creds.BaseURL, "/"),
		creds:      creds,
	}
}

// GetCard fetches a card with the full set of expansions the formatter
// relies on: commentCard actions (up to actionsLimit), attachments,
// labels, and members. A card with none of these yields empty
// collections, not an error.
func (c *Client) GetCard(id string, actionsLimit int) (*models.Card, error) {
	if actionsLimit <= 0 {
		actionsLimit = DefaultActionsLimit
	}

	params := url.Values{}
	params.Set("fields", strings.Join([]string{
		"name", "desc", "due", "dueComplete", "shortUrl", "shortLink",
		"dateLastActivity", "badges", "idBoard", "idList",
	}, ","))
	params.Set("attachments", "true")
	params.Set("attachment_fields", "name,url,downloadUrl,bytes,date,mimeType,isUpload")
	params.Set("labels", "true")
	params.Set("label_fields", "name,color")
	params.Set("members", "true")
	params.Set("member_fields", "fullName,username")
	params.Set("actions", "commentCard")
	params.Set("actions_limit", strconv.Itoa(actionsLimit))
	params.Set("actions_fields", "id,type,date,memberCreator,data")

	card := &models.Card{}
	if err := c.get("/cards/"+url.PathEscape(id), params, card); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch card %q", id)
	}
	return card, nil
}

// GetBoardLists fetches the open lists of a board. The board may be
// identified by short link or full ID.
func (c *Client) GetBoardLists(board string) ([]models.List, error) {
	params := url.Values{}
	params.Set("fields", "id,name")
	params.Set("filter", "open")

	var lists []models.List
	if err := c.get("/boards/"+url.PathEscape(board)+"/lists", params, &lists); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errors.Wrapf(err, "board %q not found", board)
		}
		return nil, errors.Wrapf(err, "failed to fetch lists for board %q", board)
	}
	return lists, nil
}

// CreateCard creates a card on the list named in fields. The list ID
// must already be resolved; creation is a single API call with no
// rollback concerns.
func (c *Client) CreateCard(fields models.CardFields) (*models.Card, error) {
	if strings.TrimSpace(fields.Name) == "" {
		return nil, errors.New("card name must not be empty")
	}
	if fields.ListID == "" {
		return nil, errors.New("list id must not be empty")
	}

	params := url.Values{}
	params.Set("name", strings.TrimSpace(fields.Name))
	params.Set("idList", fields.ListID)
	params.Set("desc", fields.Desc)
	pos := fields.Pos
	if pos == "" {
		pos = "bottom"
	}
	params.Set("pos", pos)
	if fields.Due != "" {
		params.Set("due", fields.Due)
	}
	if len(fields.LabelIDs) > 0 {
		params.Set("idLabels", strings.Join(fields.LabelIDs, ","))
	}
	if len(fields.MemberIDs) > 0 {
		params.Set("idMembers", strings.Join(fields.MemberIDs, ","))
	}
	if fields.URLSource != "" {
		params.Set("urlSource", fields.URLSource)
	}

	card := &models.Card{}
	if err := c.submit(http.MethodPost, "/cards", params, card); err != nil {
		return nil, errors.Wrap(err, "failed to create card")
	}
	return card, nil
}

// AddComment posts a comment on a card.
func (c *Client) AddComment(cardID, text string) error {
	params := url.Values{}
	params.Set("text", text)

	path := "/cards/" + url.PathEscape(cardID) + "/actions/comments"
	if err := c.submit(http.MethodPost, path, params, nil); err != nil {
		return errors.Wrapf(err, "failed to comment on card %q", cardID)
	}
	return nil
}

// MarkComplete sets dueComplete on a card.
func (c *Client) MarkComplete(cardID string) error {
	params := url.Values{}
	params.Set("dueComplete", "true")

	if err := c.submit(http.MethodPut, "/cards/"+url.PathEscape(cardID), params, nil); err != nil {
		return errors.Wrapf(err, "failed to mark card %q complete", cardID)
	}
	return nil
}

// AttachFile uploads a local file as a card attachment. The MIME type
// is guessed from the file extension.
func (c *Client) AttachFile(cardID, path string) (*models.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "attachment not found or not readable: %s", path)
	}

	name := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("name", name); err != nil {
		return nil, errors.Wrap(err, "failed to build upload request")
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build upload request")
	}
	if _, err := part.Write(data); err != nil {
		return nil, errors.Wrap(err, "failed to build upload request")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to build upload request")
	}

	endpoint := c.baseURL + "/cards/" + url.PathEscape(cardID) + "/attachments?" + c.authParams(nil).Encode()
	req, err := http.NewRequest(http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	attachment := &models.Attachment{}
	if err := c.do(req, attachment); err != nil {
		return nil, errors.Wrapf(err, "failed to attach %s to card %q", name, cardID)
	}
	return attachment, nil
}

// get issues a GET with auth and the given query parameters.
func (c *Client) get(path string, params url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + c.authParams(params).Encode()
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	return c.do(req, out)
}

// submit issues a POST or PUT with auth and a form-encoded body, the
// way Trello's write endpoints expect.
func (c *Client) submit(method, path string, params url.Values, out any) error {
	form := c.authParams(params)
	req, err := http.NewRequest(method, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

// authParams copies params and appends the key/token pair.
func (c *Client) authParams(params url.Values) url.Values {
	merged := url.Values{}
	for k, vs := range params {
		merged[k] = vs
	}
	merged.Set("key", c.creds.APIKey)
	merged.Set("token", c.creds.Token)
	return merged
}

func (c *Client) do(req *http.Request, out any) error {
	logging.Debug("trello request",
		"method", req.Method,
		"path", req.URL.Path,
		"token", logging.MaskSensitive(c.creds.Token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(ErrUnreachable, "%v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read Trello response")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.Wrapf(ErrAuthRejected,
			"HTTP %d from Trello; re-run the authorization flow and set TRELLO_TOKEN: %s",
			resp.StatusCode, config.AuthorizationURL(c.creds.APIKey, c.creds.AuthScope))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return errors.Errorf("trello API returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "failed to decode Trello response")
	}
	if card, ok := out.(*models.Card); ok {
		card.Raw = append(json.RawMessage(nil), body...)
	}
	return nil
}
