package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownloadFailedKind(t *testing.T) {
	assert.Equal(t, ErrorKind("download_failed_404"), DownloadFailedKind(404))
	assert.Equal(t, ErrorKind("download_failed_500"), DownloadFailedKind(500))
}

func TestTickReportCountSuccess(t *testing.T) {
	report := TickReport{
		Results: []ProcessingResult{
			{OK: true, ID: "a"},
			{OK: false, Err: ErrKindMoveFailed},
			{OK: true, ID: "b"},
		},
	}
	report.CountSuccess()
	assert.Equal(t, 2, report.Success)
}

func TestNewDocumentMetadata(t *testing.T) {
	meta := NewDocumentMetadata("paper.pdf")

	assert.Equal(t, "paper.pdf", meta.FileName)
	assert.NotNil(t, meta.Authors)
	assert.NotNil(t, meta.Keywords)
	assert.Empty(t, meta.Authors)
	assert.Empty(t, meta.Keywords)
	assert.Empty(t, meta.Title)
	assert.Empty(t, meta.Abstract)
	assert.Empty(t, meta.Conclusion)
}
