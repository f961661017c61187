// Package graph provides the remote drive adapter over a Microsoft
// Graph-style HTTP API: folder listing, content download, item relocation
// and small-blob writes, plus the chunked upload session protocol.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.RemoteStore = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://graph.microsoft.com/v1.0"
	DefaultTimeout = 60 * time.Second

	// DefaultRequestsPerSecond throttles drive calls. Generous: the
	// sequential pipeline rarely reaches it, but a tick against a large
	// inbox stays polite.
	DefaultRequestsPerSecond = 10
)

// Config holds configuration for the drive client.
type Config struct {
	// BaseURL is the API base URL (default: the Graph v1.0 endpoint).
	BaseURL string

	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration

	// RequestsPerSecond bounds the call rate (default: 10).
	RequestsPerSecond float64

	// Tokens supplies bearer credentials. A per-request token carried in
	// the context takes precedence.
	Tokens driven.TokenProvider
}

// Client issues authenticated calls against the remote drive tree.
// It does not retry; retry policy belongs to the caller.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  driven.TokenProvider
	limiter *rate.Limiter
}

// NewClient creates a drive client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		tokens:  cfg.Tokens,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// driveItemPayload is the wire shape of a drive item.
type driveItemPayload struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	WebURL string          `json:"webUrl"`
	Size   int64           `json:"size"`
	Folder json.RawMessage `json:"folder"`
}

// listResponse is the wire shape of a children listing.
type listResponse struct {
	Value []driveItemPayload `json:"value"`
}

func (p driveItemPayload) toDomain() domain.DriveItem {
	return domain.DriveItem{
		ID:     p.ID,
		Name:   p.Name,
		WebURL: p.WebURL,
		Size:   p.Size,
		Folder: len(p.Folder) > 0 && string(p.Folder) != "null",
	}
}

// List returns the children of the folder at path.
// A missing folder yields an empty slice so first-run behavior is
// well-defined.
func (c *Client) List(ctx context.Context, folderPath string) ([]domain.DriveItem, error) {
	endpoint := c.baseURL + "/me/drive/root:" + escapePath(folderPath) + ":/children"

	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		if status == http.StatusNotFound {
			return []domain.DriveItem{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", folderPath, err)
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	items := make([]domain.DriveItem, 0, len(resp.Value))
	for _, p := range resp.Value {
		items = append(items, p.toDomain())
	}
	return items, nil
}

// Download fetches the full content of an item.
func (c *Client) Download(ctx context.Context, itemID string) ([]byte, error) {
	endpoint := c.baseURL + "/me/drive/items/" + url.PathEscape(itemID) + "/content"

	body, _, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", itemID, err)
	}
	return body, nil
}

// DownloadPath fetches the content of the item at a fixed path.
// A missing item yields domain.ErrNotFound so callers can create it.
func (c *Client) DownloadPath(ctx context.Context, path string) ([]byte, error) {
	endpoint := c.baseURL + "/me/drive/root:" + escapePath(path) + ":/content"

	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, fmt.Errorf("download %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("download %s: %w", path, err)
	}
	return body, nil
}

// relocateRequest is the wire shape of an item move.
type relocateRequest struct {
	ParentReference struct {
		Path string `json:"path"`
	} `json:"parentReference"`
	Name string `json:"name,omitempty"`
}

// Relocate moves an item into the destination folder, optionally renaming it.
func (c *Client) Relocate(ctx context.Context, itemID, destFolderPath, newName string) error {
	endpoint := c.baseURL + "/me/drive/items/" + url.PathEscape(itemID)

	var req relocateRequest
	req.ParentReference.Path = "/drive/root:" + destFolderPath
	req.Name = newName

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal relocate: %w", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if _, _, err := c.do(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload), headers); err != nil {
		return fmt.Errorf("relocate %s: %w", itemID, err)
	}
	return nil
}

// CreateOrReplace writes data to path in a single request.
func (c *Client) CreateOrReplace(ctx context.Context, path string, data []byte) (*domain.DriveItem, error) {
	endpoint := c.baseURL + "/me/drive/root:" + escapePath(path) + ":/content"

	headers := map[string]string{"Content-Type": "application/octet-stream"}
	body, _, err := c.do(ctx, http.MethodPut, endpoint, bytes.NewReader(data), headers)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	var p driveItemPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	item := p.toDomain()
	return &item, nil
}

// do issues one authenticated request and returns the response body.
// Non-2xx statuses surface as a StatusError carrying the code and body.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, headers map[string]string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &domain.StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, resp.StatusCode, nil
}

// token resolves the bearer credential: per-request context token first,
// then the configured provider.
func (c *Client) token(ctx context.Context) (string, error) {
	if token, ok := driven.TokenFromContext(ctx); ok {
		return token, nil
	}
	if c.tokens != nil && c.tokens.IsAuthenticated() {
		return c.tokens.GetToken(ctx)
	}
	return "", domain.ErrMissingCredential
}

// escapePath percent-encodes each segment of a drive path, keeping the
// separators.
func escapePath(p string) string {
	segments := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(segments, "/")
}
