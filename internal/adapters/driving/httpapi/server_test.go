package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driving"
)

type mockWatch struct {
	report    *domain.TickReport
	err       error
	lastToken string
	ticks     int
}

var _ driving.WatchService = (*mockWatch)(nil)

func (m *mockWatch) Tick(ctx context.Context) (*domain.TickReport, error) {
	m.ticks++
	m.lastToken, _ = driven.TokenFromContext(ctx)
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockWatch) Status() driving.WatchStatus {
	return driving.WatchStatus{Watching: false, Hint: "trigger ticks via POST /api/watch/tick"}
}

func okReport() *domain.TickReport {
	return &domain.TickReport{
		OK:        true,
		TickID:    "tick-1",
		Found:     2,
		Processed: 2,
		Success:   1,
		Results: []domain.ProcessingResult{
			{OK: true, ID: "a", Title: "Paper A", File: "a.pdf"},
			{OK: false, Err: domain.ErrKindMoveFailed, File: "b.pdf"},
		},
		When: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func doTick(t *testing.T, watch *mockWatch, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	srv := NewServer(watch)
	req := httptest.NewRequest(http.MethodPost, "/api/watch/tick", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestTick_MissingCredential(t *testing.T) {
	watch := &mockWatch{report: okReport()}
	rec := doTick(t, watch, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, watch.ticks)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "missing_credential", body["error"])
}

func TestTick_BearerHeader(t *testing.T) {
	watch := &mockWatch{report: okReport()}
	rec := doTick(t, watch, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer header-token")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "header-token", watch.lastToken)

	var report domain.TickReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.OK)
	assert.Equal(t, "tick-1", report.TickID)
	assert.Len(t, report.Results, 2)
	assert.Equal(t, "2025-06-01T12:00:00Z", report.When.Format(time.RFC3339))
}

func TestTick_CookieCredential(t *testing.T) {
	watch := &mockWatch{report: okReport()}
	rec := doTick(t, watch, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cookie-token", watch.lastToken)
}

func TestTick_HeaderWinsOverCookie(t *testing.T) {
	watch := &mockWatch{report: okReport()}
	doTick(t, watch, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
	})

	assert.Equal(t, "header-token", watch.lastToken)
}

func TestTick_ListFailure(t *testing.T) {
	watch := &mockWatch{err: domain.ErrListFailed}
	rec := doTick(t, watch, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer t")
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "list_failed", body["error"])
}

func TestStatus(t *testing.T) {
	srv := NewServer(&mockWatch{})
	req := httptest.NewRequest(http.MethodGet, "/api/watch/status", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var status driving.WatchStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.Watching)
	assert.NotEmpty(t, status.Hint)
}

func TestHealthz(t *testing.T) {
	srv := NewServer(&mockWatch{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
