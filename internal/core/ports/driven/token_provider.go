package driven

import "context"

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle token refresh transparently; the core holds no
// credential across ticks.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it is refreshed automatically.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated returns true if valid authentication is available.
	IsAuthenticated() bool
}

// StaticTokenProvider wraps a caller-supplied bearer token, e.g. one taken
// from the tick request itself.
type StaticTokenProvider struct {
	Token string
}

// GetToken returns the wrapped token.
func (p StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	return p.Token, nil
}

// IsAuthenticated reports whether a token is present.
func (p StaticTokenProvider) IsAuthenticated() bool {
	return p.Token != ""
}

type tokenContextKey struct{}

// WithToken returns a context carrying a per-request bearer token.
// Adapters prefer a context token over their configured provider, so a
// caller-supplied credential is used for exactly one tick and never held.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext extracts a per-request bearer token, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok && token != ""
}
