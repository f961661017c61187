// Package pdf provides a TextExtractor backed by the poppler pdftotext
// tool. Extraction is best-effort: a scanned or malformed PDF may yield
// empty text or an error, which the orchestrator isolates per item.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner executes an external command and returns its output.
// Abstracted for testability.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor extracts plain text from PDF bytes.
type Extractor struct {
	runner CommandRunner
}

// New creates an extractor using the real pdftotext binary.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates an extractor with an injected runner, for tests.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Extract writes the document to a temporary file and converts it with
// pdftotext. name is used for diagnostics only.
func (e *Extractor) Extract(ctx context.Context, data []byte, name string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("extract %s: empty document", name)
	}

	tmp, err := os.CreateTemp("", "paperbox-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	// "-" sends the text to stdout; -enc keeps the output UTF-8.
	out, err := e.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", tmp.Name(), "-")
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", name, err)
	}
	return string(out), nil
}

// CheckAvailable verifies pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return fmt.Errorf("%w: %w", ErrPDFToolNotFound, err)
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return `pdftotext is part of poppler:
  macOS:  brew install poppler
  Debian: apt install poppler-utils
  Fedora: dnf install poppler-utils`
}

// TempDirUsage reports where extraction scratch files go, for diagnostics.
func TempDirUsage() string {
	return filepath.Join(os.TempDir(), "paperbox-*.pdf")
}
