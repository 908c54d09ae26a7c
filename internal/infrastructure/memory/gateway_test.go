package memory

import (
	"context"
	"testing"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetID = "test-sheet"

func TestGateway_AppendOverwriteRead(t *testing.T) {
	ctx := context.Background()
	g := NewGateway()
	g.CreateSheet(sheetID, "HabitLogs", []string{"id", "habitId", "date", "completedValue", "completedAt"})

	require.NoError(t, g.AppendRows(ctx, sheetID, "HabitLogs!A:E", [][]string{
		{"1", "7", "2024-02-01", "", "2024-02-01T08:00:00Z"},
		{"2", "7", "2024-02-02", "3", "2024-02-02T08:00:00Z"},
	}))

	rows, err := g.ReadTable(ctx, sheetID, "HabitLogs")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, "7", rows[0].Values["habitid"], "header keys are lowercased")
	assert.Equal(t, 3, rows[1].Number)

	logs := spreadsheet.NormalizeHabitLogs(rows)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(7), logs[0].HabitID)
	assert.Equal(t, "2024-02-01", logs[0].Date)
	assert.Nil(t, logs[0].CompletedValue)
	require.NotNil(t, logs[1].CompletedValue)
	assert.Equal(t, 3, *logs[1].CompletedValue)

	// blank the first data row
	require.NoError(t, g.OverwriteRange(ctx, sheetID, "HabitLogs!A2:E2", [][]string{{"", "", "", "", ""}}))

	rows, err = g.ReadTable(ctx, sheetID, "HabitLogs")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Number, "blanked rows keep their position")

	require.NoError(t, g.AppendRows(ctx, sheetID, "HabitLogs!A:E", [][]string{{"3", "8", "2024-02-03", "", ""}}))
	rows, err = g.ReadTable(ctx, sheetID, "HabitLogs")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 4, rows[1].Number)
}

func TestGateway_AppendReusesTrailingBlankRows(t *testing.T) {
	ctx := context.Background()
	g := NewGateway()
	g.CreateSheet(sheetID, "Habits", []string{"id", "displayName"})

	require.NoError(t, g.AppendRows(ctx, sheetID, "Habits!A:B", [][]string{{"1", "Run"}, {"2", "Read"}}))
	require.NoError(t, g.OverwriteRange(ctx, sheetID, "Habits!A3:B3", [][]string{{"", ""}}))
	require.NoError(t, g.AppendRows(ctx, sheetID, "Habits!A:B", [][]string{{"3", "Walk"}}))

	grid := g.Grid(sheetID, "Habits")
	require.Len(t, grid, 3)
	assert.Equal(t, []any{"3", "Walk"}, grid[2])
}

func TestGateway_Errors(t *testing.T) {
	ctx := context.Background()
	g := NewGateway()

	_, err := g.ReadTable(ctx, sheetID, "Missing")
	assert.ErrorIs(t, err, apperror.ErrSheetNotFound)

	err = g.AppendRows(ctx, sheetID, "Missing!A:B", [][]string{{"1", "x"}})
	assert.ErrorIs(t, err, apperror.ErrBackendWriteFailed)
	assert.ErrorIs(t, err, apperror.ErrSheetNotFound)

	g.CreateSheet(sheetID, "Habits", []string{"id"})
	g.FailReads(2, apperror.ErrBackendUnavailable)
	_, err = g.ReadTable(ctx, sheetID, "Habits")
	assert.ErrorIs(t, err, apperror.ErrBackendUnavailable)
	_, err = g.ReadTable(ctx, sheetID, "Habits")
	assert.ErrorIs(t, err, apperror.ErrBackendUnavailable)
	_, err = g.ReadTable(ctx, sheetID, "Habits")
	assert.NoError(t, err)
	assert.Equal(t, 4, g.Reads())

	g.FailWrites(apperror.ErrBackendWriteFailed)
	assert.ErrorIs(t, g.OverwriteRange(ctx, sheetID, "Habits!A2:A2", [][]string{{"1"}}), apperror.ErrBackendWriteFailed)

	g.FailWrites(nil)
	assert.ErrorIs(t, g.OverwriteRange(ctx, sheetID, "Habits!A:A", [][]string{{"1"}}), apperror.ErrBackendWriteFailed)
}
