package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output   []byte
	err      error
	lastName string
	lastArgs []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.lastName = name
	m.lastArgs = args
	return m.output, m.err
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.TextExtractor = (*Extractor)(nil)
}

func TestExtract(t *testing.T) {
	runner := &mockRunner{output: []byte("Paper Title\n\nBody text.\n")}
	extractor := NewWithRunner(runner)

	text, err := extractor.Extract(context.Background(), []byte("%PDF-1.4 fake"), "paper.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Paper Title\n\nBody text.\n", text)

	assert.Equal(t, "pdftotext", runner.lastName)
	require.Len(t, runner.lastArgs, 4)
	assert.Equal(t, []string{"-enc", "UTF-8"}, runner.lastArgs[:2])
	assert.Equal(t, "-", runner.lastArgs[3])
}

func TestExtract_EmptyDocument(t *testing.T) {
	extractor := NewWithRunner(&mockRunner{})

	_, err := extractor.Extract(context.Background(), nil, "empty.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty document")
}

func TestExtract_ToolFailure(t *testing.T) {
	runner := &mockRunner{err: errors.New("syntax error in xref table")}
	extractor := NewWithRunner(runner)

	_, err := extractor.Extract(context.Background(), []byte("%PDF-1.4"), "broken.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.pdf")
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Error(t, ErrPDFToolNotFound)
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}

// Integration test - only runs if pdftotext is available.
func TestExtract_Integration(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Skip("pdftotext not available, skipping integration test")
	}
	t.Skip("integration test requires sample PDF file")
}
