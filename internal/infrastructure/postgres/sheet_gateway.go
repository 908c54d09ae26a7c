package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/domain/repository"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/sheet"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
	CREATE TABLE IF NOT EXISTS sheets (
		spreadsheet_id TEXT NOT NULL,
		name           TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (spreadsheet_id, name)
	);

	CREATE TABLE IF NOT EXISTS sheet_rows (
		spreadsheet_id TEXT NOT NULL,
		sheet          TEXT NOT NULL,
		row_number     INT NOT NULL,
		cells          TEXT[] NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (spreadsheet_id, sheet, row_number),
		FOREIGN KEY (spreadsheet_id, sheet) REFERENCES sheets (spreadsheet_id, name) ON DELETE CASCADE
	);
`

// SheetGateway emulates a spreadsheet on PostgreSQL, one row of text cells per sheet row
type SheetGateway struct {
	pool *pgxpool.Pool
}

// NewSheetGateway creates a PostgreSQL-backed sheet gateway
func NewSheetGateway(pool *pgxpool.Pool) *SheetGateway {
	return &SheetGateway{pool: pool}
}

var _ repository.SheetGateway = (*SheetGateway)(nil)

// Migrate creates the tables if they do not exist
func (g *SheetGateway) Migrate(ctx context.Context) error {
	if _, err := g.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate sheet tables: %w", err)
	}
	return nil
}

// EnsureSheet registers a sheet and writes its header row when missing
func (g *SheetGateway) EnsureSheet(ctx context.Context, spreadsheetID, name string, header []string) error {
	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO sheets (spreadsheet_id, name) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, spreadsheetID, name)
	if err != nil {
		return fmt.Errorf("failed to register sheet: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO sheet_rows (spreadsheet_id, sheet, row_number, cells) VALUES ($1, $2, 1, $3)
		ON CONFLICT DO NOTHING
	`, spreadsheetID, name, header)
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (g *SheetGateway) ReadTable(ctx context.Context, spreadsheetID, sheetName string) ([]repository.Row, error) {
	var exists bool
	err := g.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM sheets WHERE spreadsheet_id = $1 AND name = $2)
	`, spreadsheetID, sheetName).Scan(&exists)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrBackendUnavailable, "failed to read sheet", err)
	}
	if !exists {
		return nil, apperror.New(apperror.ErrSheetNotFound, fmt.Sprintf("sheet %q not found", sheetName))
	}

	rows, err := g.pool.Query(ctx, `
		SELECT row_number, cells
		FROM sheet_rows
		WHERE spreadsheet_id = $1 AND sheet = $2
		ORDER BY row_number
	`, spreadsheetID, sheetName)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrBackendUnavailable, "failed to read sheet", err)
	}
	defer rows.Close()

	var grid [][]any
	for rows.Next() {
		var (
			number int
			cells  []string
		)
		if err := rows.Scan(&number, &cells); err != nil {
			return nil, apperror.Wrap(apperror.ErrBackendUnavailable, "failed to scan sheet row", err)
		}
		for len(grid) < number {
			grid = append(grid, []any{})
		}
		grid[number-1] = sheet.Strings([][]string{cells})[0]
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.ErrBackendUnavailable, "failed to iterate sheet rows", err)
	}

	return sheet.Records(grid), nil
}

func (g *SheetGateway) AppendRows(ctx context.Context, spreadsheetID, rangeRef string, rows [][]string) error {
	return g.write(ctx, spreadsheetID, rangeRef, func(tx pgx.Tx, r sheet.Range) (int, error) {
		var last int
		err := tx.QueryRow(ctx, `
			SELECT COALESCE(MAX(row_number), 1)
			FROM sheet_rows
			WHERE spreadsheet_id = $1 AND sheet = $2 AND array_to_string(cells, '') <> ''
		`, spreadsheetID, r.Sheet).Scan(&last)
		return last + 1, err
	}, rows)
}

func (g *SheetGateway) OverwriteRange(ctx context.Context, spreadsheetID, rangeRef string, rows [][]string) error {
	return g.write(ctx, spreadsheetID, rangeRef, func(_ pgx.Tx, r sheet.Range) (int, error) {
		if r.StartRow == 0 {
			return 0, fmt.Errorf("range %q has no start row", rangeRef)
		}
		return r.StartRow, nil
	}, rows)
}

// write locks the sheet, resolves the first target row and merges each row into the stored cells
func (g *SheetGateway) write(
	ctx context.Context,
	spreadsheetID, rangeRef string,
	firstRow func(pgx.Tx, sheet.Range) (int, error),
	rows [][]string,
) error {
	r, err := sheet.ParseRange(rangeRef)
	if err != nil {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "invalid range", err)
	}
	if r.StartCol == 0 {
		r.StartCol = 1
	}

	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	var name string
	err = tx.QueryRow(ctx, `
		SELECT name FROM sheets WHERE spreadsheet_id = $1 AND name = $2 FOR UPDATE
	`, spreadsheetID, r.Sheet).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "failed to write rows",
			apperror.New(apperror.ErrSheetNotFound, fmt.Sprintf("sheet %q not found", r.Sheet)))
	}
	if err != nil {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "failed to lock sheet", err)
	}

	start, err := firstRow(tx, r)
	if err != nil {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "failed to resolve target row", err)
	}

	for i, values := range rows {
		number := start + i

		var existing []string
		err := tx.QueryRow(ctx, `
			SELECT cells FROM sheet_rows
			WHERE spreadsheet_id = $1 AND sheet = $2 AND row_number = $3
		`, spreadsheetID, r.Sheet, number).Scan(&existing)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return apperror.Wrap(apperror.ErrBackendWriteFailed, "failed to read target row", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO sheet_rows (spreadsheet_id, sheet, row_number, cells)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (spreadsheet_id, sheet, row_number)
			DO UPDATE SET cells = EXCLUDED.cells, updated_at = now()
		`, spreadsheetID, r.Sheet, number, mergeCells(existing, r.StartCol, values))
		if err != nil {
			return apperror.Wrap(apperror.ErrBackendWriteFailed, "failed to write row", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "failed to commit rows", err)
	}
	return nil
}

// mergeCells writes values into existing starting at the 1-based column
func mergeCells(existing []string, col int, values []string) []string {
	out := append([]string(nil), existing...)
	for len(out) < col-1+len(values) {
		out = append(out, "")
	}
	copy(out[col-1:], values)
	return out
}
