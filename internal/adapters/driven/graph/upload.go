package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperbox-cli/internal/logger"
)

// Ensure Uploader implements the interface.
var _ driven.Uploader = (*Uploader)(nil)

// Uploader implements the session-based large-binary upload protocol on top
// of the drive client: open a session with replace-on-conflict semantics,
// then PUT successive byte ranges until the store reports completion.
type Uploader struct {
	client    *Client
	chunkSize int64
}

// NewUploader creates a chunked uploader.
// A non-positive chunkSize falls back to the 2 MiB default.
func NewUploader(client *Client, chunkSize int64) *Uploader {
	if chunkSize <= 0 {
		chunkSize = domain.DefaultChunkSize
	}
	return &Uploader{client: client, chunkSize: chunkSize}
}

// sessionRequest opens an upload session that replaces any existing item.
type sessionRequest struct {
	Item struct {
		ConflictBehavior string `json:"@microsoft.graph.conflictBehavior"`
	} `json:"item"`
}

// sessionResponse is the wire shape of a created upload session.
type sessionResponse struct {
	UploadURL string `json:"uploadUrl"`
}

// Upload writes data to path through an upload session.
// A 200 or 201 chunk response completes the upload and returns the created
// item; 202 advances the window by exactly one chunk; any other status
// aborts the whole upload with no partial resume.
func (u *Uploader) Upload(ctx context.Context, path string, data []byte) (*domain.DriveItem, error) {
	uploadURL, err := u.openSession(ctx, path)
	if err != nil {
		return nil, err
	}

	total := int64(len(data))
	for start := int64(0); start < total; start += u.chunkSize {
		end := start + u.chunkSize
		if end > total {
			end = total
		}

		item, done, err := u.putChunk(ctx, uploadURL, data[start:end], start, end-1, total)
		if err != nil {
			return nil, fmt.Errorf("chunk %d-%d: %w", start, end-1, err)
		}
		if done {
			return item, nil
		}
	}

	// The store accepted every chunk without signalling completion.
	return nil, fmt.Errorf("%w: session never completed", domain.ErrUploadAborted)
}

// openSession creates the upload session and returns its URL.
func (u *Uploader) openSession(ctx context.Context, path string) (string, error) {
	endpoint := u.client.baseURL + "/me/drive/root:" + escapePath(path) + ":/createUploadSession"

	var req sessionRequest
	req.Item.ConflictBehavior = "replace"
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	body, _, err := u.client.do(ctx, http.MethodPost, endpoint, bytes.NewReader(payload), headers)
	if err != nil {
		return "", fmt.Errorf("create upload session: %w", err)
	}

	var resp sessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode session: %w", err)
	}
	if resp.UploadURL == "" {
		return "", fmt.Errorf("%w: session has no upload URL", domain.ErrUploadAborted)
	}
	return resp.UploadURL, nil
}

// putChunk uploads one byte range. The session URL is pre-authenticated, so
// no bearer header is sent.
func (u *Uploader) putChunk(ctx context.Context, uploadURL string, chunk []byte, start, end, total int64) (*domain.DriveItem, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(chunk))
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Length", strconv.Itoa(len(chunk)))
	req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, total))
	req.ContentLength = int64(len(chunk))

	resp, err := u.client.http.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("send chunk: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read chunk response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var p driveItemPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, false, fmt.Errorf("decode item: %w", err)
		}
		item := p.toDomain()
		return &item, true, nil

	case http.StatusAccepted:
		logger.Debug("upload window advanced past byte %d of %d", end, total)
		return nil, false, nil

	default:
		return nil, false, fmt.Errorf("%w: %w", domain.ErrUploadAborted,
			&domain.StatusError{Code: resp.StatusCode, Body: string(body)})
	}
}
