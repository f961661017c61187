package excel

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
)

// fakeStore keeps blobs in memory, keyed by path.
type fakeStore struct {
	blobs   map[string][]byte
	getErr  error
	putErr  error
	puts    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: map[string][]byte{}}
}

func (s *fakeStore) List(_ context.Context, _ string) ([]domain.DriveItem, error) {
	return nil, nil
}

func (s *fakeStore) Download(_ context.Context, _ string) ([]byte, error) {
	return nil, domain.ErrNotFound
}

func (s *fakeStore) DownloadPath(_ context.Context, path string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	blob, ok := s.blobs[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return blob, nil
}

func (s *fakeStore) Relocate(_ context.Context, _, _, _ string) error {
	return nil
}

func (s *fakeStore) CreateOrReplace(_ context.Context, path string, data []byte) (*domain.DriveItem, error) {
	if s.putErr != nil {
		return nil, s.putErr
	}
	s.puts++
	s.blobs[path] = data
	return &domain.DriveItem{ID: "blob", Name: path}, nil
}

func sheetRows(t *testing.T, blob []byte) [][]string {
	t.Helper()
	file, err := excelize.OpenReader(bytes.NewReader(blob))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(SheetName)
	require.NoError(t, err)
	return rows
}

func row(title string) driven.LedgerRow {
	return driven.LedgerRow{
		Title:     title,
		Authors:   "Doe; Roe",
		Keywords:  "k1; k2",
		Summary:   "summary",
		PdfURL:    "https://d/1",
		CreatedAt: "2026-01-02T03:04:05Z",
	}
}

func TestAppend_CreatesLedgerWithHeader(t *testing.T) {
	store := newFakeStore()
	appender := NewAppender(store, "/Papers/papers.xlsx")

	require.NoError(t, appender.Append(context.Background(), row("First")))

	rows := sheetRows(t, store.blobs["/Papers/papers.xlsx"])
	require.Len(t, rows, 2)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "First", rows[1][0])
	assert.Equal(t, "Doe; Roe", rows[1][1])
}

func TestAppend_TwoRowsInOrder(t *testing.T) {
	store := newFakeStore()
	appender := NewAppender(store, "/Papers/papers.xlsx")
	ctx := context.Background()

	require.NoError(t, appender.Append(ctx, row("First")))
	require.NoError(t, appender.Append(ctx, row("Second")))

	// Header + row1 + row2, in that order.
	rows := sheetRows(t, store.blobs["/Papers/papers.xlsx"])
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "First", rows[1][0])
	assert.Equal(t, "Second", rows[2][0])
}

func TestAppend_DuplicatesAllowed(t *testing.T) {
	store := newFakeStore()
	appender := NewAppender(store, "/Papers/papers.xlsx")
	ctx := context.Background()

	require.NoError(t, appender.Append(ctx, row("Same")))
	require.NoError(t, appender.Append(ctx, row("Same")))

	rows := sheetRows(t, store.blobs["/Papers/papers.xlsx"])
	assert.Len(t, rows, 3)
}

func TestAppend_FetchErrorSurfaced(t *testing.T) {
	store := newFakeStore()
	store.getErr = &domain.StatusError{Code: 503, Body: "down"}
	appender := NewAppender(store, "/Papers/papers.xlsx")

	err := appender.Append(context.Background(), row("X"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestAppend_WriteErrorSurfaced(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("write denied")
	appender := NewAppender(store, "/Papers/papers.xlsx")

	err := appender.Append(context.Background(), row("X"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write ledger")
}

func TestAppend_CorruptBlobRejected(t *testing.T) {
	store := newFakeStore()
	store.blobs["/Papers/papers.xlsx"] = []byte("not an xlsx")
	appender := NewAppender(store, "/Papers/papers.xlsx")

	err := appender.Append(context.Background(), row("X"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse ledger")
	// The corrupt blob is never overwritten.
	assert.Zero(t, store.puts)
}
