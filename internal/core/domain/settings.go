package domain

// Batch size bounds. Each tick processes at most MaxBatchSize items so a
// single invocation stays bounded regardless of inbox backlog.
const (
	MinBatchSize = 1
	MaxBatchSize = 5
)

// DefaultChunkSize is the chunked-upload window size (2 MiB).
const DefaultChunkSize = 2 * 1024 * 1024

// DefaultExtension is the document extension the watcher selects.
const DefaultExtension = ".pdf"

// Default folder locations in the remote drive tree.
const (
	DefaultInboxPath     = "/Papers/Inbox"
	DefaultProcessedPath = "/Papers/Processed"
	DefaultErrorsPath    = "/Papers/Errors"
	DefaultLedgerPath    = "/Papers/papers.xlsx"
)

// Settings holds the watch pipeline configuration. Values come from the
// environment (and optionally a config file) via the config adapter;
// Normalise applies defaults and clamping before use.
type Settings struct {
	// InboxPath is the folder scanned for new documents.
	InboxPath string

	// ProcessedPath is the destination folder for selected documents.
	ProcessedPath string

	// ErrorsPath is the destination folder for failed documents when
	// ErrorsOnFailure is enabled.
	ErrorsPath string

	// LedgerPath is the fixed location of the spreadsheet ledger blob.
	LedgerPath string

	// BatchSize is the maximum number of items per tick, clamped to
	// [MinBatchSize, MaxBatchSize].
	BatchSize int

	// Extension is the document extension filter (case-insensitive).
	Extension string

	// ChunkSize is the chunked-upload window size in bytes.
	ChunkSize int64

	// ErrorsOnFailure relocates items to ErrorsPath when processing fails
	// after relocation. Off by default: the observed behavior leaves such
	// items in the processed folder.
	ErrorsOnFailure bool
}

// Normalise fills defaults and clamps BatchSize into its valid range.
func (s *Settings) Normalise() {
	if s.InboxPath == "" {
		s.InboxPath = DefaultInboxPath
	}
	if s.ProcessedPath == "" {
		s.ProcessedPath = DefaultProcessedPath
	}
	if s.ErrorsPath == "" {
		s.ErrorsPath = DefaultErrorsPath
	}
	if s.LedgerPath == "" {
		s.LedgerPath = DefaultLedgerPath
	}
	if s.Extension == "" {
		s.Extension = DefaultExtension
	}
	if s.ChunkSize <= 0 {
		s.ChunkSize = DefaultChunkSize
	}
	if s.BatchSize < MinBatchSize {
		s.BatchSize = MinBatchSize
	}
	if s.BatchSize > MaxBatchSize {
		s.BatchSize = MaxBatchSize
	}
}
