package repository

import (
	"context"
)

// Row is one non-blank data row of a sheet
type Row struct {
	// Number is the physical 1-based row in the sheet; the header is row 1
	Number int `json:"number"`
	// Values is keyed by the transformed header name. Cells hold string, float64 or bool.
	Values map[string]any `json:"values"`
}

// SheetGateway is the only I/O boundary with the spreadsheet store
type SheetGateway interface {
	// ReadTable returns every non-blank row of a sheet.
	// Fails with apperror.ErrSheetNotFound when the sheet is absent and apperror.ErrBackendUnavailable
	// when the store cannot be reached.
	ReadTable(ctx context.Context, spreadsheetID, sheetName string) ([]Row, error)

	// AppendRows adds fixed-width rows after the last non-blank row covered by rangeRef (e.g. "Habits!A:M")
	AppendRows(ctx context.Context, spreadsheetID, rangeRef string, rows [][]string) error

	// OverwriteRange writes rows starting at an explicit range (e.g. "Habits!A5:M5").
	// Overwriting with empty strings is how rows are deleted.
	OverwriteRange(ctx context.Context, spreadsheetID, rangeRef string, rows [][]string) error
}
