// ABOUTME: OAuth token lifecycle for the Google Classroom session
// ABOUTME: Handles token storage at XDG paths, refresh, and change-only persistence
package classroom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/harperreed/classwatch/config"
)

// ErrNoToken signals that no persisted token exists and the interactive
// bootstrap (the auth command) has to run first.
var ErrNoToken = errors.New("no stored token, run 'classwatch auth' first")

// NewOAuthConfig creates the OAuth2 config for the Classroom and Drive APIs.
func NewOAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Scopes:       cfg.Google.Scopes,
		Endpoint:     google.Endpoint,
	}
}

// TokenPath returns the XDG-compliant path for the stored OAuth token.
func TokenPath() string {
	return filepath.Join(config.Dir(), "token.json")
}

// SaveToken writes the OAuth token with restricted permissions.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	return nil
}

// LoadToken loads the stored OAuth token. A missing file maps to ErrNoToken;
// a present-but-unreadable file is reported loudly, never treated as absent,
// since silently re-bootstrapping could lose the refresh token.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var token oauth2.Token
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token file %s: %w", path, err)
	}

	return &token, nil
}

// Authorize loads the stored token, obtains a current access token from the
// provider, and returns a reusable token source. The stored record is
// rewritten only when the access token actually changed, and a refresh
// response that omits the refresh token never clobbers the stored one.
func Authorize(ctx context.Context, cfg *config.Config, tokenPath string) (oauth2.TokenSource, error) {
	stored, err := LoadToken(tokenPath)
	if err != nil {
		return nil, err
	}

	oc := NewOAuthConfig(cfg)
	ts := oc.TokenSource(ctx, stored)

	fresh, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh access token: %w", err)
	}

	if err := saveIfChanged(tokenPath, stored, fresh); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	return oauth2.ReuseTokenSource(fresh, ts), nil
}

// saveIfChanged reconciles a refresh response with the stored record. An
// unchanged access token means no disk write at all; a response lacking a
// refresh token keeps the stored one.
func saveIfChanged(path string, stored, fresh *oauth2.Token) error {
	if fresh.AccessToken == stored.AccessToken {
		return nil
	}

	merged := *fresh
	if merged.RefreshToken == "" {
		merged.RefreshToken = stored.RefreshToken
	}
	return SaveToken(path, &merged)
}

// Exchange trades an authorization code for a token and persists it. Used by
// the interactive bootstrap; a pre-existing stored refresh token survives an
// exchange response that lacks one.
func Exchange(ctx context.Context, cfg *config.Config, tokenPath, code string) (*oauth2.Token, error) {
	oc := NewOAuthConfig(cfg)

	token, err := oc.Exchange(ctx, code, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	if token.RefreshToken == "" {
		if prev, err := LoadToken(tokenPath); err == nil {
			token.RefreshToken = prev.RefreshToken
		}
	}

	if err := SaveToken(tokenPath, token); err != nil {
		return nil, err
	}

	return token, nil
}

// AuthURL produces the user-facing authorization URL for the bootstrap flow.
func AuthURL(cfg *config.Config) string {
	return NewOAuthConfig(cfg).AuthCodeURL("state", oauth2.AccessTypeOffline)
}
