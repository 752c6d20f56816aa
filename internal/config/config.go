// Package config provides centralized configuration management for the application.
package config

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is the Trello cloud REST endpoint.
	DefaultBaseURL = "https://api.trello.com/1"

	// DefaultAuthScope is requested when TRELLO_AUTH_SCOPE is not set.
	DefaultAuthScope = "read,write"

	// authorizationBase is the page the user visits to mint a token.
	authorizationBase = "https://trello.com/1/authorize"

	// appName is displayed on Trello's authorization page.
	appName = "Codex Trello Access"
)

// ErrMissingAPIKey indicates TRELLO_API_KEY is absent. Nothing can be
// done without it, so callers must halt before any network activity.
var ErrMissingAPIKey = errors.New("TRELLO_API_KEY is not configured; export it before running the tool")

// Credentials holds the values needed to authenticate Trello requests.
// Constructed once per invocation and never persisted.
type Credentials struct {
	// APIKey is the Trello application key (TRELLO_API_KEY)
	APIKey string

	// Token is the user's API token (TRELLO_TOKEN)
	Token string

	// AuthScope is the scope requested during authorization
	AuthScope string

	// BaseURL is the REST endpoint, overridable for testing
	BaseURL string
}

// Resolution is the two-state outcome of credential resolution: Ready
// with usable Credentials, or pending authorization with the URL the
// user must visit to obtain a token.
type Resolution struct {
	Ready       bool
	Credentials Credentials
	AuthURL     string
}

// Resolve reads Trello credentials from environment variables.
//
// A missing API key is fatal. A present key without a token yields a
// pending resolution carrying the authorization URL; no network call is
// made in either case.
func Resolve() (*Resolution, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("trello.auth_scope", DefaultAuthScope)
	v.SetDefault("trello.base_url", DefaultBaseURL)

	v.BindEnv("trello.api_key", "TRELLO_API_KEY")
	v.BindEnv("trello.token", "TRELLO_TOKEN")
	v.BindEnv("trello.auth_scope", "TRELLO_AUTH_SCOPE")
	v.BindEnv("trello.base_url", "TRELLO_API_BASE_URL")

	key := v.GetString("trello.api_key")
	if key == "" {
		return nil, ErrMissingAPIKey
	}

	scope := v.GetString("trello.auth_scope")
	if scope == "" {
		scope = DefaultAuthScope
	}

	baseURL := strings.TrimRight(v.GetString("trello.base_url"), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	token := v.GetString("trello.token")
	if token == "" {
		return &Resolution{
			AuthURL: AuthorizationURL(key, scope),
		}, nil
	}

	return &Resolution{
		Ready: true,
		Credentials: Credentials{
			APIKey:    key,
			Token:     token,
			AuthScope: scope,
			BaseURL:   baseURL,
		},
	}, nil
}

// AuthorizationURL builds the link the user opens to grant access.
// Trello displays a token on approval; the expiration is fixed to
// "never" so the grant does not need periodic renewal.
func AuthorizationURL(key, scope string) string {
	params := url.Values{}
	params.Set("key", key)
	params.Set("scope", scope)
	params.Set("expiration", "never")
	params.Set("name", appName)
	params.Set("response_type", "token")
	return authorizationBase + "?" + params.Encode()
}
