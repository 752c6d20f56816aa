package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgmdan/trello-codex-skill/internal/config"
)

const cardWithCommentsJSON = `{
	"id": "5f1a2b3c4d5e6f7a8b9c0d1e",
	"name": "Fix login bug",
	"desc": "Users cannot sign in.",
	"shortLink": "abc123XY",
	"shortUrl": "https://trello.com/c/abc123XY",
	"actions": [
		{"id":"a1","type":"commentCard","date":"2026-08-20T10:00:00.000Z","data":{"text":"first"},"memberCreator":{"fullName":"Dana Hart"}},
		{"id":"a2","type":"commentCard","date":"2026-08-22T10:00:00.000Z","data":{"text":"second"},"memberCreator":{"fullName":"Dana Hart"}},
		{"id":"a3","type":"commentCard","date":"2026-08-24T10:00:00.000Z","data":{"text":"third"},"memberCreator":{"fullName":"Sam Ochs"}},
		{"id":"a4","type":"commentCard","date":"2026-08-26T10:00:00.000Z","data":{"text":"fourth"},"memberCreator":{"fullName":"Sam Ochs"}},
		{"id":"a5","type":"commentCard","date":"2026-08-28T10:00:00.000Z","data":{"text":"fifth"},"memberCreator":{"fullName":"Dana Hart"}}
	]
}`

func TestFetchMarkdownLimitsComments(t *testing.T) {
	var gotLimit string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/abc123", r.URL.Path)
		gotLimit = r.URL.Query().Get("actions_limit")
		w.Write([]byte(cardWithCommentsJSON))
	}))
	defer server.Close()

	t.Setenv("TRELLO_API_KEY", "test-key")
	t.Setenv("TRELLO_TOKEN", "test-token")
	t.Setenv("TRELLO_API_BASE_URL", server.URL)

	out, err := runCommand(t, "fetch", "abc123", "--format", "markdown", "--actions-limit", "2")
	require.NoError(t, err)

	assert.Equal(t, "2", gotLimit)

	commentSection := out[strings.Index(out, "### Comments"):]
	var comments []string
	for _, line := range strings.Split(commentSection, "\n") {
		if strings.HasPrefix(line, "- ") {
			comments = append(comments, line)
		}
	}
	require.Len(t, comments, 2, "limit 2 against 5 comments must render exactly 2:\n%s", out)
	assert.Contains(t, comments[0], "fifth", "most recent comment first")
	assert.Contains(t, comments[1], "fourth")
}

func TestFetchJSONOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(cardWithCommentsJSON))
	}))
	defer server.Close()

	t.Setenv("TRELLO_API_KEY", "test-key")
	t.Setenv("TRELLO_TOKEN", "test-token")
	t.Setenv("TRELLO_API_BASE_URL", server.URL)

	out, err := runCommand(t, "fetch", "abc123", "--format", "json", "--actions-limit", "100")
	require.NoError(t, err)

	assert.Contains(t, out, `"shortLink": "abc123XY"`)
	assert.NotContains(t, out, "## Trello card")
}

func TestFetchNoNetworkWithoutCredentials(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	t.Run("Missing API key is fatal", func(t *testing.T) {
		t.Setenv("TRELLO_API_KEY", "")
		t.Setenv("TRELLO_TOKEN", "")
		t.Setenv("TRELLO_API_BASE_URL", server.URL)

		_, err := runCommand(t, "fetch", "abc123", "--format", "markdown", "--actions-limit", "100")
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrMissingAPIKey)
	})

	t.Run("Missing token halts pending authorization", func(t *testing.T) {
		t.Setenv("TRELLO_API_KEY", "test-key")
		t.Setenv("TRELLO_TOKEN", "")
		t.Setenv("TRELLO_API_BASE_URL", server.URL)

		_, err := runCommand(t, "fetch", "abc123", "--format", "markdown", "--actions-limit", "100")
		require.Error(t, err)
		assert.ErrorIs(t, err, errAuthPending)
	})

	assert.Equal(t, 0, requests, "credential failures must happen before any network call")
}

func TestFetchFlagValidation(t *testing.T) {
	t.Setenv("TRELLO_API_KEY", "test-key")
	t.Setenv("TRELLO_TOKEN", "test-token")

	_, err := runCommand(t, "fetch", "abc123", "--format", "xml", "--actions-limit", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	_, err = runCommand(t, "fetch", "abc123", "--format", "markdown", "--actions-limit", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")
}
