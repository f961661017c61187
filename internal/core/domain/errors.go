package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested remote item or blob does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingCredential indicates the caller supplied no bearer credential.
	// The tick aborts before touching any remote item.
	ErrMissingCredential = errors.New("missing_credential")

	// ErrListFailed indicates the inbox listing itself failed.
	// The tick aborts before touching any remote item.
	ErrListFailed = errors.New("list_failed")

	// ErrLLMUnavailable indicates no language model credential is configured.
	// Metadata generation degrades to the heuristic fallback.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrExtractorUnavailable indicates the text extraction tool is missing.
	ErrExtractorUnavailable = errors.New("text extractor unavailable")

	// ErrSchemaMismatch indicates the knowledge-base schema no longer matches
	// the configured property mapping. The cached schema must be invalidated
	// and re-resolved.
	ErrSchemaMismatch = errors.New("knowledge-base schema mismatch")

	// ErrUploadAborted indicates a chunked upload received an unexpected
	// status and was abandoned. There is no partial resume.
	ErrUploadAborted = errors.New("upload aborted")
)
