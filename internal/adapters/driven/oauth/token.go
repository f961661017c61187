// Package oauth provides bearer credentials for the drive API via the
// OAuth refresh-token flow. Refresh happens transparently and the access
// token is reused until it expires.
package oauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
)

// Ensure RefreshTokenProvider implements the interface.
var _ driven.TokenProvider = (*RefreshTokenProvider)(nil)

// Config holds the OAuth application credentials.
type Config struct {
	// ClientID is the OAuth application ID (required).
	ClientID string

	// ClientSecret is the application secret. Empty for public clients.
	ClientSecret string

	// TokenURL is the provider's token endpoint (required).
	TokenURL string

	// RefreshToken is the long-lived refresh token (required).
	RefreshToken string

	// Scopes requested on refresh.
	Scopes []string
}

// RefreshTokenProvider exchanges a refresh token for access tokens on
// demand, caching the current access token until expiry.
type RefreshTokenProvider struct {
	source oauth2.TokenSource
}

// NewRefreshTokenProvider creates a provider from OAuth app credentials.
func NewRefreshTokenProvider(cfg Config) (*RefreshTokenProvider, error) {
	if cfg.ClientID == "" || cfg.TokenURL == "" || cfg.RefreshToken == "" {
		return nil, fmt.Errorf("oauth: client ID, token URL and refresh token are required")
	}

	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURL},
		Scopes:       cfg.Scopes,
	}

	base := conf.TokenSource(context.Background(), &oauth2.Token{RefreshToken: cfg.RefreshToken})
	return &RefreshTokenProvider{
		source: oauth2.ReuseTokenSource(nil, base),
	}, nil
}

// GetToken returns a valid access token, refreshing when expired.
func (p *RefreshTokenProvider) GetToken(_ context.Context) (string, error) {
	token, err := p.source.Token()
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	return token.AccessToken, nil
}

// IsAuthenticated reports whether the provider is configured.
func (p *RefreshTokenProvider) IsAuthenticated() bool {
	return p.source != nil
}
