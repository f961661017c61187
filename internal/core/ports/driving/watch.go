package driving

import (
	"context"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
)

// WatchService runs the batch ingestion pipeline.
// Each invocation makes bounded, self-contained progress: there is no
// persisted state between ticks and no background loop.
type WatchService interface {
	// Tick runs one bounded pass over the inbox and returns the aggregate
	// report. It returns an error only when nothing was touched
	// (missing credential or listing failure); per-item failures are
	// isolated into the report.
	Tick(ctx context.Context) (*domain.TickReport, error)

	// Status describes the (stateless) watch loop.
	Status() WatchStatus
}

// WatchStatus is the read-only description of the watch design.
type WatchStatus struct {
	// Watching is always false: ticks are driven by an external scheduler.
	Watching bool `json:"watching"`

	// Hint tells operators how to drive the pipeline.
	Hint string `json:"hint"`
}
