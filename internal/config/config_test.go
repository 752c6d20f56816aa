package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		token      string
		scope      string
		baseURL    string
		wantErr    bool
		wantReady  bool
		wantAuthIn []string
	}{
		{
			name:    "Missing API key is fatal",
			key:     "",
			token:   "some-token",
			wantErr: true,
		},
		{
			name:       "Key without token is pending with auth URL",
			key:        "abc123key",
			token:      "",
			wantReady:  false,
			wantAuthIn: []string{"key=abc123key", "scope=read%2Cwrite", "expiration=never", "response_type=token"},
		},
		{
			name:       "Custom scope appears in auth URL",
			key:        "abc123key",
			token:      "",
			scope:      "read",
			wantAuthIn: []string{"scope=read"},
		},
		{
			name:      "Key and token are ready",
			key:       "abc123key",
			token:     "tok456",
			wantReady: true,
		},
		{
			name:      "Base URL override with trailing slash is trimmed",
			key:       "abc123key",
			token:     "tok456",
			baseURL:   "http://localhost:8080/1/",
			wantReady: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TRELLO_API_KEY", tt.key)
			t.Setenv("TRELLO_TOKEN", tt.token)
			t.Setenv("TRELLO_AUTH_SCOPE", tt.scope)
			t.Setenv("TRELLO_API_BASE_URL", tt.baseURL)

			res, err := Resolve()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMissingAPIKey)
				assert.Nil(t, res)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tt.wantReady, res.Ready)

			if tt.wantReady {
				assert.Equal(t, tt.key, res.Credentials.APIKey)
				assert.Equal(t, tt.token, res.Credentials.Token)
				assert.Empty(t, res.AuthURL)
				if tt.baseURL != "" {
					assert.Equal(t, "http://localhost:8080/1", res.Credentials.BaseURL)
				} else {
					assert.Equal(t, DefaultBaseURL, res.Credentials.BaseURL)
				}
			} else {
				assert.Empty(t, res.Credentials.Token)
				for _, want := range tt.wantAuthIn {
					assert.Contains(t, res.AuthURL, want)
				}
			}
		})
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv("TRELLO_API_KEY", "k")
	t.Setenv("TRELLO_TOKEN", "t")
	os.Unsetenv("TRELLO_AUTH_SCOPE")
	os.Unsetenv("TRELLO_API_BASE_URL")

	res, err := Resolve()
	require.NoError(t, err)
	require.True(t, res.Ready)
	assert.Equal(t, DefaultAuthScope, res.Credentials.AuthScope)
	assert.Equal(t, DefaultBaseURL, res.Credentials.BaseURL)
}

func TestAuthorizationURL(t *testing.T) {
	url := AuthorizationURL("mykey", "read,write")

	assert.Contains(t, url, "https://trello.com/1/authorize?")
	assert.Contains(t, url, "key=mykey")
	assert.Contains(t, url, "scope=read%2Cwrite")
	assert.Contains(t, url, "expiration=never")

	// Deterministic given the same inputs.
	assert.Equal(t, url, AuthorizationURL("mykey", "read,write"))
}
