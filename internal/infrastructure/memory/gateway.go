// Package memory provides an in-process SheetGateway for local development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/domain/repository"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/sheet"
)

// Gateway keeps every sheet as a grid of cells, header row first
type Gateway struct {
	mu     sync.Mutex
	sheets map[string][][]any

	readFailures int
	readErr      error
	writeErr     error
	reads        int
	writes       int
}

// NewGateway creates an empty in-memory store
func NewGateway() *Gateway {
	return &Gateway{sheets: make(map[string][][]any)}
}

func key(spreadsheetID, name string) string {
	return spreadsheetID + "/" + name
}

// CreateSheet adds a sheet with the given header row. Existing sheets are left untouched.
func (g *Gateway) CreateSheet(spreadsheetID, name string, header []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := key(spreadsheetID, name)
	if _, ok := g.sheets[k]; ok {
		return
	}
	g.sheets[k] = sheet.Strings([][]string{header})
}

// Grid returns a copy of a sheet's cells, header included
func (g *Gateway) Grid(spreadsheetID, name string) [][]any {
	g.mu.Lock()
	defer g.mu.Unlock()
	return copyGrid(g.sheets[key(spreadsheetID, name)])
}

// FailReads makes the next n reads fail with err
func (g *Gateway) FailReads(n int, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.readFailures = n
	g.readErr = err
}

// FailWrites makes every write fail with err until called with nil
func (g *Gateway) FailWrites(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.writeErr = err
}

// Reads returns how many ReadTable calls were served or failed
func (g *Gateway) Reads() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reads
}

// Writes returns how many write calls were attempted
func (g *Gateway) Writes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.writes
}

func (g *Gateway) ReadTable(ctx context.Context, spreadsheetID, sheetName string) ([]repository.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.Wrap(apperror.ErrBackendUnavailable, "read cancelled", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.reads++
	if g.readFailures > 0 {
		g.readFailures--
		return nil, g.readErr
	}

	grid, ok := g.sheets[key(spreadsheetID, sheetName)]
	if !ok {
		return nil, apperror.New(apperror.ErrSheetNotFound, fmt.Sprintf("sheet %q not found", sheetName))
	}
	return sheet.Records(copyGrid(grid)), nil
}

func (g *Gateway) AppendRows(ctx context.Context, spreadsheetID, rangeRef string, rows [][]string) error {
	return g.write(ctx, spreadsheetID, rangeRef, func(r sheet.Range, grid [][]any) ([][]any, error) {
		next := len(grid)
		for next > 1 && sheet.IsBlank(grid[next-1]) {
			next--
		}
		return place(grid, next, r.StartCol, rows), nil
	})
}

func (g *Gateway) OverwriteRange(ctx context.Context, spreadsheetID, rangeRef string, rows [][]string) error {
	return g.write(ctx, spreadsheetID, rangeRef, func(r sheet.Range, grid [][]any) ([][]any, error) {
		if r.StartRow == 0 {
			return nil, fmt.Errorf("range %q has no start row", rangeRef)
		}
		return place(grid, r.StartRow-1, r.StartCol, rows), nil
	})
}

func (g *Gateway) write(ctx context.Context, spreadsheetID, rangeRef string, apply func(sheet.Range, [][]any) ([][]any, error)) error {
	if err := ctx.Err(); err != nil {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "write cancelled", err)
	}

	r, err := sheet.ParseRange(rangeRef)
	if err != nil {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "invalid range", err)
	}
	if r.StartCol == 0 {
		r.StartCol = 1
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.writes++
	if g.writeErr != nil {
		return g.writeErr
	}

	k := key(spreadsheetID, r.Sheet)
	grid, ok := g.sheets[k]
	if !ok {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "failed to write rows",
			apperror.New(apperror.ErrSheetNotFound, fmt.Sprintf("sheet %q not found", r.Sheet)))
	}

	updated, err := apply(r, grid)
	if err != nil {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "failed to write rows", err)
	}
	g.sheets[k] = updated
	return nil
}

// place writes rows into grid starting at row index and 1-based column, growing the grid as needed
func place(grid [][]any, index, col int, rows [][]string) [][]any {
	for i, row := range rows {
		at := index + i
		for len(grid) <= at {
			grid = append(grid, []any{})
		}
		cells := grid[at]
		for len(cells) < col-1+len(row) {
			cells = append(cells, "")
		}
		for j, v := range row {
			cells[col-1+j] = v
		}
		grid[at] = cells
	}
	return grid
}

func copyGrid(grid [][]any) [][]any {
	if grid == nil {
		return nil
	}
	out := make([][]any, len(grid))
	for i, row := range grid {
		out[i] = append([]any(nil), row...)
	}
	return out
}
