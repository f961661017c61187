package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/paperbox-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driving.WatchService = (*Watcher)(nil)

// statusHint tells operators how to drive the stateless pipeline.
const statusHint = "no background loop; trigger POST /api/watch/tick from an external scheduler"

// Watcher runs the per-tick batch pipeline: list, select, relocate,
// download, extract, summarise, record. Items are processed strictly in
// sequence and failures are isolated per item; only a listing failure
// aborts the tick.
type Watcher struct {
	settings  domain.Settings
	store     driven.RemoteStore
	extractor driven.TextExtractor
	metadata  driven.MetadataGenerator
	ledger    driven.LedgerAppender
	knowledge driven.KnowledgeBase
}

// NewWatcher creates the batch orchestrator.
// ledger and knowledge are optional; a nil collaborator disables that
// export. settings are normalised on construction.
func NewWatcher(
	settings domain.Settings,
	store driven.RemoteStore,
	extractor driven.TextExtractor,
	metadata driven.MetadataGenerator,
	ledger driven.LedgerAppender,
	knowledge driven.KnowledgeBase,
) *Watcher {
	settings.Normalise()
	return &Watcher{
		settings:  settings,
		store:     store,
		extractor: extractor,
		metadata:  metadata,
		ledger:    ledger,
		knowledge: knowledge,
	}
}

// Tick runs one bounded pass over the inbox.
func (w *Watcher) Tick(ctx context.Context) (*domain.TickReport, error) {
	items, err := w.store.List(ctx, w.settings.InboxPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrListFailed, err)
	}

	candidates := w.selectCandidates(items)
	report := &domain.TickReport{
		OK:      true,
		TickID:  uuid.NewString(),
		Found:   len(candidates),
		Results: []domain.ProcessingResult{},
	}

	if len(candidates) == 0 {
		report.When = time.Now().UTC()
		logger.Debug("tick %s: inbox empty", report.TickID)
		return report, nil
	}

	batch := candidates
	if len(batch) > w.settings.BatchSize {
		batch = batch[:w.settings.BatchSize]
	}

	logger.Info("tick %s: %d found, processing %d", report.TickID, report.Found, len(batch))

	for _, item := range batch {
		result := w.processOne(ctx, item)
		report.Results = append(report.Results, result)
	}

	report.Processed = len(report.Results)
	report.CountSuccess()
	report.When = time.Now().UTC()
	return report, nil
}

// Status describes the stateless watch design.
func (w *Watcher) Status() driving.WatchStatus {
	return driving.WatchStatus{Watching: false, Hint: statusHint}
}

// selectCandidates filters the listing to files with the configured
// extension. Folders and non-matching files are ignored and not counted.
func (w *Watcher) selectCandidates(items []domain.DriveItem) []domain.DriveItem {
	var out []domain.DriveItem
	for _, item := range items {
		if item.HasExtension(w.settings.Extension) {
			out = append(out, item)
		}
	}
	return out
}

// processOne runs the per-item pipeline and never returns an error:
// every failure is folded into the result so the batch always continues.
//
// The item is relocated to the processed folder before any extraction is
// attempted, and the relocation is not rolled back on later failure. A
// downloaded-but-unrecorded item therefore stays in the processed folder
// unless ErrorsOnFailure routes it to the errors folder instead.
func (w *Watcher) processOne(ctx context.Context, item domain.DriveItem) domain.ProcessingResult {
	if err := w.store.Relocate(ctx, item.ID, w.settings.ProcessedPath, ""); err != nil {
		logger.Warn("relocate %s: %v", item.Name, err)
		return domain.ProcessingResult{Err: domain.ErrKindMoveFailed, File: item.Name}
	}

	data, err := w.store.Download(ctx, item.ID)
	if err != nil {
		status, _ := domain.StatusOf(err)
		logger.Warn("download %s: %v", item.Name, err)
		w.maybeMoveToErrors(ctx, item)
		return domain.ProcessingResult{Err: domain.DownloadFailedKind(status), File: item.Name}
	}

	text, err := w.extractor.Extract(ctx, data, item.Name)
	if err != nil {
		logger.Warn("extract %s: %v", item.Name, err)
		w.maybeMoveToErrors(ctx, item)
		return domain.ProcessingResult{Err: domain.ErrKindException, File: item.Name}
	}

	meta := w.metadata.Generate(ctx, text, item.Name)
	meta.FileName = item.Name
	meta.FileURL = item.WebURL

	w.exportRecord(ctx, meta)

	return domain.ProcessingResult{OK: true, ID: item.ID, Title: meta.Title, File: item.Name}
}

// exportRecord performs the best-effort exports. Failures from either
// collaborator are logged and swallowed so that a ledger or knowledge-base
// outage never blocks the relocation already performed.
func (w *Watcher) exportRecord(ctx context.Context, meta domain.DocumentMetadata) {
	if w.knowledge != nil {
		if pageID, err := w.knowledge.Export(ctx, meta); err != nil {
			logger.Error("knowledge-base export for %s: %v", meta.FileName, err)
		} else {
			logger.Debug("knowledge-base page %s created for %s", pageID, meta.FileName)
		}
	}

	if w.ledger != nil {
		row := driven.LedgerRow{
			Title:      meta.Title,
			Authors:    strings.Join(meta.Authors, "; "),
			Keywords:   strings.Join(meta.Keywords, "; "),
			Summary:    meta.Abstract,
			Conclusion: meta.Conclusion,
			PdfURL:     meta.FileURL,
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := w.ledger.Append(ctx, row); err != nil {
			logger.Error("ledger append for %s: %v", meta.FileName, err)
		}
	}
}

// maybeMoveToErrors routes a failed item to the errors folder when
// ErrorsOnFailure is set. Best-effort: a failed move leaves the item where
// the earlier relocation put it.
func (w *Watcher) maybeMoveToErrors(ctx context.Context, item domain.DriveItem) {
	if !w.settings.ErrorsOnFailure {
		return
	}
	if err := w.store.Relocate(ctx, item.ID, w.settings.ErrorsPath, ""); err != nil {
		logger.Warn("move to errors %s: %v", item.Name, err)
	}
}
