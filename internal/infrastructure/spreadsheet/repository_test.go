package spreadsheet

import (
	"context"
	"testing"
	"time"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/repository"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testSheetID = "sheet-1"

var testNow = time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	gw     *memory.Gateway
	habits repository.HabitRepository
	logs   repository.HabitLogRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gw := memory.NewGateway()
	gw.CreateSheet(testSheetID, DefaultHabitsSheet, HabitHeader())
	gw.CreateSheet(testSheetID, DefaultLogsSheet, LogHeader())
	return newFixtureWith(t, gw, Options{})
}

func newFixtureWith(t *testing.T, gw repository.SheetGateway, opts Options) *fixture {
	t.Helper()
	opts.SpreadsheetID = testSheetID
	opts.Now = func() time.Time { return testNow }
	opts.RetryBackoff = time.Millisecond
	opts.Logger = zaptest.NewLogger(t)

	habits := NewHabitRepository(gw, opts)
	f := &fixture{habits: habits, logs: NewHabitLogRepository(gw, habits, opts)}
	if m, ok := gw.(*memory.Gateway); ok {
		f.gw = m
	}
	return f
}

func (f *fixture) createHabit(t *testing.T, name string) *entity.Habit {
	t.Helper()
	h, err := f.habits.Create(context.Background(), entity.CreateHabitData{DisplayName: name, IconName: "run_icon"})
	require.NoError(t, err)
	return h
}

func TestHabitRepository_CreateAppendsFullRow(t *testing.T) {
	f := newFixture(t)

	h := f.createHabit(t, "  Morning Run ")
	assert.Equal(t, testNow.UnixMilli(), h.ID)
	assert.Equal(t, "Morning Run", h.DisplayName)
	assert.True(t, h.IsActive)
	assert.Equal(t, "2024-02-01T09:30:00Z", h.CreatedAt)

	grid := f.gw.Grid(testSheetID, DefaultHabitsSheet)
	require.Len(t, grid, 2)
	require.Len(t, grid[1], HabitWidth)
	assert.Equal(t, "true", grid[1][11])
	assert.Equal(t, "false", grid[1][8])

	habits, err := f.habits.List(context.Background())
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, *h, habits[0])
}

func TestHabitRepository_CreateAssignsDistinctIDs(t *testing.T) {
	f := newFixture(t)
	a := f.createHabit(t, "A")
	b := f.createHabit(t, "B")
	assert.Greater(t, b.ID, a.ID)
}

func TestHabitRepository_CreateValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		data entity.CreateHabitData
	}{
		{"missing name", entity.CreateHabitData{IconName: "run_icon"}},
		{"blank name", entity.CreateHabitData{DisplayName: "  ", IconName: "run_icon"}},
		{"missing icon", entity.CreateHabitData{DisplayName: "Run"}},
		{"weekly without days", entity.CreateHabitData{DisplayName: "Run", IconName: "run_icon", FrequencyType: entity.FrequencyWeekly}},
		{"unknown category", entity.CreateHabitData{DisplayName: "Run", IconName: "run_icon", Category: "Sports"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.habits.Create(ctx, tt.data)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
	assert.Equal(t, 0, f.gw.Writes())
}

func TestHabitRepository_UpdateRewritesPhysicalRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.createHabit(t, "A")
	second := f.createHabit(t, "B")
	require.NoError(t, f.habits.Delete(ctx, first.ID))

	name := "B2"
	updated, err := f.habits.Update(ctx, second.ID, entity.HabitPatch{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "B2", updated.DisplayName)
	assert.Equal(t, second.CreatedAt, updated.CreatedAt)
	assert.Equal(t, second.IconName, updated.IconName)

	grid := f.gw.Grid(testSheetID, DefaultHabitsSheet)
	require.Len(t, grid, 3)
	assert.Equal(t, "", grid[1][0], "deleted row stays blank")
	assert.Equal(t, "B2", grid[2][1])
}

func TestHabitRepository_Archive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h := f.createHabit(t, "A")

	archived, err := f.habits.Update(ctx, h.ID, entity.Archive())
	require.NoError(t, err)
	assert.False(t, archived.IsActive)

	stored, err := f.habits.Get(ctx, h.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestHabitRepository_UpdateValidatesMergedHabit(t *testing.T) {
	f := newFixture(t)
	h := f.createHabit(t, "A")

	weekly := entity.FrequencyWeekly
	_, err := f.habits.Update(context.Background(), h.ID, entity.HabitPatch{FrequencyType: &weekly})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestHabitRepository_MissingHabit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	name := "x"

	_, err := f.habits.Update(ctx, 42, entity.HabitPatch{DisplayName: &name})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, f.habits.Delete(ctx, 42), apperror.ErrNotFound)

	exists, err := f.habits.Exists(ctx, 42)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHabitRepository_DeleteKeepsOtherIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.createHabit(t, "A")
	b := f.createHabit(t, "B")
	c := f.createHabit(t, "C")

	require.NoError(t, f.habits.Delete(ctx, b.ID))

	habits, err := f.habits.List(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.Equal(t, a.ID, habits[0].ID)
	assert.Equal(t, c.ID, habits[1].ID)
}

func TestHabitRepository_MissingSheetListsEmpty(t *testing.T) {
	f := newFixtureWith(t, memory.NewGateway(), Options{})

	habits, err := f.habits.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, habits)
	assert.Empty(t, habits)
}

func TestHabitRepository_Unconfigured(t *testing.T) {
	ctx := context.Background()

	f := newFixtureWith(t, NewUnconfiguredGateway(), Options{PlaceholdersWhenUnconfigured: true})
	habits, err := f.habits.List(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.Equal(t, "Morning Run", habits[0].DisplayName)
	assert.Equal(t, "Meditation", habits[1].DisplayName)

	_, err = f.habits.Create(ctx, entity.CreateHabitData{DisplayName: "A", IconName: "run_icon"})
	assert.ErrorIs(t, err, apperror.ErrBackendNotConfigured)
	assert.Equal(t, "Failed to create habit", apperror.Message(err))

	f = newFixtureWith(t, NewUnconfiguredGateway(), Options{})
	habits, err = f.habits.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestHabitRepository_RetriesUnavailableReads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createHabit(t, "A")

	f.gw.FailReads(2, apperror.ErrBackendUnavailable)
	habits, err := f.habits.List(ctx)
	require.NoError(t, err)
	assert.Len(t, habits, 1)
	assert.Equal(t, 3, f.gw.Reads())
}

func TestHabitRepository_DegradesAfterRetries(t *testing.T) {
	f := newFixture(t)
	f.createHabit(t, "A")

	f.gw.FailReads(5, apperror.ErrBackendUnavailable)
	habits, err := f.habits.List(context.Background())
	assert.ErrorIs(t, err, apperror.ErrBackendUnavailable)
	assert.NotNil(t, habits)
	assert.Empty(t, habits)
	assert.Equal(t, 3, f.gw.Reads())
}

func TestHabitRepository_WritesAreNotRetried(t *testing.T) {
	f := newFixture(t)
	f.gw.FailWrites(apperror.ErrBackendWriteFailed)

	_, err := f.habits.Create(context.Background(), entity.CreateHabitData{DisplayName: "A", IconName: "run_icon"})
	assert.ErrorIs(t, err, apperror.ErrBackendWriteFailed)
	assert.Equal(t, 1, f.gw.Writes())
}

func TestHabitRepository_ReadsLegacyHeaders(t *testing.T) {
	gw := memory.NewGateway()
	gw.CreateSheet(testSheetID, DefaultHabitsSheet, []string{"ID", "Display Name", "Icon Name", "Is Active"})
	require.NoError(t, gw.AppendRows(context.Background(), testSheetID, "Habits!A:D", [][]string{
		{"", "Stretch", "yoga_icon", "1"},
		{"", "", "", ""},
		{"", "Journal", "book_icon", "0"},
	}))
	f := newFixtureWith(t, gw, Options{})

	habits, err := f.habits.List(context.Background())
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.Equal(t, int64(1), habits[0].ID)
	assert.True(t, habits[0].IsActive)
	assert.Equal(t, int64(2), habits[1].ID)
	assert.Equal(t, "Journal", habits[1].DisplayName)
	assert.False(t, habits[1].IsActive)
}

func TestLogRepository_CreateRequiresExistingHabit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.logs.Create(ctx, entity.CreateHabitLogData{HabitID: 99, Date: "2024-02-01"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.logs.Create(ctx, entity.CreateHabitLogData{HabitID: 99, Date: "01/02/2024"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.logs.Create(ctx, entity.CreateHabitLogData{Date: "2024-02-01"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestLogRepository_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.createHabit(t, "A")
	b := f.createHabit(t, "B")

	value := 30
	created, err := f.logs.Create(ctx, entity.CreateHabitLogData{HabitID: a.ID, Date: "2024-02-01", CompletedValue: &value})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01T09:30:00Z", created.CompletedAt)

	_, err = f.logs.Create(ctx, entity.CreateHabitLogData{HabitID: b.ID, Date: "2024-02-01"})
	require.NoError(t, err)

	logs, err := f.logs.ListForHabit(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, *created, logs[0])

	all, err := f.logs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLogRepository_CreateDoesNotCheckDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h := f.createHabit(t, "A")

	for i := 0; i < 2; i++ {
		_, err := f.logs.Create(ctx, entity.CreateHabitLogData{HabitID: h.ID, Date: "2024-02-01"})
		require.NoError(t, err)
	}
	logs, err := f.logs.ListForHabit(ctx, h.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestLogRepository_DeleteForDateRemovesEveryMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h := f.createHabit(t, "A")

	for _, date := range []string{"2024-02-01", "2024-02-02", "2024-02-01"} {
		_, err := f.logs.Create(ctx, entity.CreateHabitLogData{HabitID: h.ID, Date: date})
		require.NoError(t, err)
	}

	require.NoError(t, f.logs.DeleteForDate(ctx, h.ID, "2024-02-01"))

	logs, err := f.logs.ListForHabit(ctx, h.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "2024-02-02", logs[0].Date)

	err = f.logs.DeleteForDate(ctx, h.ID, "2024-02-01")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "Log not found", apperror.Message(err))
}

func TestLogRepository_Toggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h := f.createHabit(t, "A")

	completed, err := f.logs.Toggle(ctx, h.ID, "2024-02-01", nil)
	require.NoError(t, err)
	assert.True(t, completed)

	completed, err = f.logs.Toggle(ctx, h.ID, "2024-02-01", nil)
	require.NoError(t, err)
	assert.False(t, completed)

	logs, err := f.logs.ListForHabit(ctx, h.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestLogRepository_ToggleDoesNotWriteWhenReadFails(t *testing.T) {
	f := newFixture(t)
	h := f.createHabit(t, "A")
	writes := f.gw.Writes()

	f.gw.FailReads(5, apperror.ErrBackendUnavailable)
	_, err := f.logs.Toggle(context.Background(), h.ID, "2024-02-01", nil)
	assert.ErrorIs(t, err, apperror.ErrBackendUnavailable)
	assert.Equal(t, writes, f.gw.Writes())
}

func TestLogRepository_MatchesLooselyTypedHabitIDs(t *testing.T) {
	gw := memory.NewGateway()
	gw.CreateSheet(testSheetID, DefaultLogsSheet, []string{"id", "habit_id", "date"})
	require.NoError(t, gw.AppendRows(context.Background(), testSheetID, "HabitLogs!A:C", [][]string{
		{"1", "7", "2024-02-01"},
		{"2", " 7 ", "2024-02-02"},
		{"3", "8", "2024-02-02"},
	}))
	f := newFixtureWith(t, gw, Options{})

	logs, err := f.logs.ListForHabit(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestLogRepository_MissingSheet(t *testing.T) {
	gw := memory.NewGateway()
	gw.CreateSheet(testSheetID, DefaultHabitsSheet, HabitHeader())
	f := newFixtureWith(t, gw, Options{})
	ctx := context.Background()

	logs, err := f.logs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)

	assert.ErrorIs(t, f.logs.DeleteForDate(ctx, 1, "2024-02-01"), apperror.ErrNotFound)
}
