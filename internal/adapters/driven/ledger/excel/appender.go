// Package excel provides the spreadsheet ledger adapter. The ledger is a
// single xlsx blob in the remote store with a fixed header row and one row
// per recorded document.
package excel

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperbox-cli/internal/logger"
)

// Ensure Appender implements the interface.
var _ driven.LedgerAppender = (*Appender)(nil)

// SheetName is the name of the ledger's single sheet.
const SheetName = "Papers"

// Header is the fixed 7-column schema, written once at creation and never
// altered.
var Header = []string{"Title", "Authors", "Keywords", "Summary", "Conclusion", "PdfUrl", "CreatedAt"}

// Appender performs the read-modify-write append cycle over the remote
// ledger blob. There is no optimistic-concurrency check: overlapping ticks
// race on the whole blob and the last writer wins.
type Appender struct {
	store driven.RemoteStore
	path  string
}

// NewAppender creates a ledger appender for the blob at path.
func NewAppender(store driven.RemoteStore, path string) *Appender {
	return &Appender{store: store, path: path}
}

// Append adds row as the last row of the sheet, creating the ledger with
// its header row when the blob does not exist yet.
func (a *Appender) Append(ctx context.Context, row driven.LedgerRow) error {
	file, err := a.fetchOrCreate(ctx)
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := file.GetRows(SheetName)
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	values := []interface{}{
		row.Title, row.Authors, row.Keywords, row.Summary,
		row.Conclusion, row.PdfURL, row.CreatedAt,
	}
	if err := file.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("append row: %w", err)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("serialise ledger: %w", err)
	}

	if _, err := a.store.CreateOrReplace(ctx, a.path, buf.Bytes()); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}

	logger.Debug("ledger row appended at %s (row %d)", a.path, len(rows)+1)
	return nil
}

// fetchOrCreate downloads the existing ledger blob or synthesizes a fresh
// workbook containing only the header row.
func (a *Appender) fetchOrCreate(ctx context.Context) (*excelize.File, error) {
	blob, err := a.store.DownloadPath(ctx, a.path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return newLedgerFile()
		}
		return nil, fmt.Errorf("fetch ledger: %w", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}
	return file, nil
}

// newLedgerFile builds an empty workbook with the header row.
func newLedgerFile() (*excelize.File, error) {
	file := excelize.NewFile()
	if err := file.SetSheetName(file.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := file.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return file, nil
}
