package driven

import (
	"context"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
)

// MetadataGenerator derives a bibliographic record from extracted text.
// Generation never fails: any internal error degrades to the heuristic
// fallback so a successfully extracted document always has some record.
type MetadataGenerator interface {
	// Generate produces the metadata record for one document.
	Generate(ctx context.Context, text, fileName string) domain.DocumentMetadata
}

// LedgerRow is one spreadsheet row recorded per processed document.
// Column order matches the fixed ledger header.
type LedgerRow struct {
	Title      string
	Authors    string
	Keywords   string
	Summary    string
	Conclusion string
	PdfURL     string
	CreatedAt  string
}

// LedgerAppender appends rows to the remote spreadsheet ledger.
// The append is a full read-modify-write of the blob with no concurrency
// check: concurrent ticks can race and lose an append (last-writer-wins).
type LedgerAppender interface {
	// Append adds row as the last row of the ledger's first sheet,
	// creating the ledger with its header row if it does not exist.
	Append(ctx context.Context, row LedgerRow) error
}

// KnowledgeBase exports a metadata record as a knowledge-base page.
// The orchestrator treats exports as fire-and-forget: failures are logged,
// never surfaced to the tick report.
type KnowledgeBase interface {
	// Export creates a page for the record and returns its identifier.
	Export(ctx context.Context, meta domain.DocumentMetadata) (string, error)
}
