package driven

import "context"

// TextExtractor turns document bytes into best-effort plain text.
// Extraction is an external capability: implementations may shell out to a
// tool or call a service, and may fail. The orchestrator treats a failure
// as a per-item exception, never a tick abort.
type TextExtractor interface {
	// Extract returns the plain text of the document.
	// name is the original file name, used for diagnostics only.
	Extract(ctx context.Context, data []byte, name string) (string, error)
}
