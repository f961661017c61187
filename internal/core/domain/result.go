package domain

import (
	"fmt"
	"time"
)

// ErrorKind classifies a per-item processing failure.
type ErrorKind string

// Per-item error kinds. The tick-level kinds (missing credential, listing
// failure) abort the whole tick and are modelled as sentinel errors instead.
const (
	// ErrKindMoveFailed means relocation to the processed folder failed.
	// The item stays in the inbox and is retried on a later tick.
	ErrKindMoveFailed ErrorKind = "move_failed"

	// ErrKindException is the catch-all for extraction or recording
	// failures after a successful download.
	ErrKindException ErrorKind = "exception"
)

// DownloadFailedKind builds the error kind for a failed download,
// carrying the remote status code.
func DownloadFailedKind(status int) ErrorKind {
	return ErrorKind(fmt.Sprintf("download_failed_%d", status))
}

// ProcessingResult records the outcome for one attempted inbox item.
// Results are immutable after creation and discarded with the tick report.
type ProcessingResult struct {
	// OK is true when the item was recorded successfully.
	OK bool `json:"ok"`

	// ID is the remote item ID, when known.
	ID string `json:"id,omitempty"`

	// Title is the derived document title, when metadata was generated.
	Title string `json:"title,omitempty"`

	// Err is the failure classification for unsuccessful items.
	Err ErrorKind `json:"error,omitempty"`

	// File is the item's file name at selection time.
	File string `json:"file"`
}

// TickReport aggregates the outcome of one watch tick.
type TickReport struct {
	// OK is true when the listing succeeded, regardless of per-item failures.
	OK bool `json:"ok"`

	// TickID identifies this invocation in logs and responses.
	TickID string `json:"tick_id"`

	// Found is the number of matching inbox items before batching.
	Found int `json:"found"`

	// Processed is the number of items attempted this tick.
	Processed int `json:"processed"`

	// Success is the number of items with OK results.
	Success int `json:"success"`

	// Results holds one entry per attempted item, in processing order.
	Results []ProcessingResult `json:"results"`

	// When is the tick completion time.
	When time.Time `json:"when"`
}

// CountSuccess recomputes the Success counter from the result list.
func (r *TickReport) CountSuccess() {
	n := 0
	for _, res := range r.Results {
		if res.OK {
			n++
		}
	}
	r.Success = n
}
