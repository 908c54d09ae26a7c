package sheet

import (
	"testing"

	"github.com/abuabdirohman4/better-habit/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		ref    string
		want   Range
		format string
	}{
		{"Habits!A:M", Range{Sheet: "Habits", StartCol: 1, EndCol: 13}, "Habits!A:M"},
		{"Habits!A5:M5", Range{Sheet: "Habits", StartCol: 1, EndCol: 13, StartRow: 5, EndRow: 5}, "Habits!A5:M5"},
		{"HabitLogs!A2:E9", Range{Sheet: "HabitLogs", StartCol: 1, EndCol: 5, StartRow: 2, EndRow: 9}, "HabitLogs!A2:E9"},
		{"'Habit Logs'!B3", Range{Sheet: "Habit Logs", StartCol: 2, EndCol: 2, StartRow: 3, EndRow: 3}, "'Habit Logs'!B3:B3"},
		{"Habits", Range{Sheet: "Habits"}, "Habits"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParseRange(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.format, got.String())
		})
	}
}

func TestParseRange_Invalid(t *testing.T) {
	for _, ref := range []string{"", "!A1", "Habits!1A", "Habits!M1:A1", "Habits!A5:A2"} {
		_, err := ParseRange(ref)
		assert.Error(t, err, ref)
	}
}

func TestRangeBuilders(t *testing.T) {
	assert.Equal(t, "Habits!A:M", ColumnsRange("Habits", 13))
	assert.Equal(t, "Habits!A7:M7", RowRange("Habits", 7, 13))
	assert.Equal(t, "AA", ColumnName(27))
	assert.Equal(t, 26, ColumnNumber("z"))
}

func TestHeaderKey(t *testing.T) {
	tests := map[string]string{
		"id":             "id",
		"displayName":    "displayname",
		"Display Name":   "displayName",
		"habit_id":       "habitId",
		"Is Reminder On": "isReminderOn",
		"  goal  unit ":  "goalUnit",
		"createdAt":      "createdat",
	}
	for in, want := range tests {
		assert.Equal(t, want, HeaderKey(in), in)
	}
}

func TestRecords_SkipsBlankRowsKeepingNumbers(t *testing.T) {
	grid := [][]any{
		{"id", "displayName", "isActive"},
		{"1", "Run", true},
		{"", "", ""},
		{},
		{"3", "Read"},
	}

	got := Records(grid)
	want := []repository.Row{
		{Number: 2, Values: map[string]any{"id": "1", "displayname": "Run", "isactive": true}},
		{Number: 5, Values: map[string]any{"id": "3", "displayname": "Read"}},
	}
	assert.Equal(t, want, got)
	assert.Empty(t, Records(nil))
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "1705276800000", CellString(float64(1705276800000)))
	assert.Equal(t, "2.5", CellString(2.5))
	assert.Equal(t, "true", CellString(true))
	assert.Equal(t, "x", CellString(" x "))
	assert.Equal(t, "", CellString(nil))
}
