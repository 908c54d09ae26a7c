package spreadsheet

import (
	"testing"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColumn_KeyOrder(t *testing.T) {
	assert.Equal(t, []string{"habitId", "habitid", "habit_id"}, newColumn("habitId").keys)
	assert.Equal(t, []string{"id"}, newColumn("id").keys)
}

func TestNormalizeHabit_AliasVariants(t *testing.T) {
	variants := []map[string]any{
		{"id": "7", "displayName": "Read", "iconName": "book_icon", "isActive": "true"},
		{"id": "7", "displayname": "Read", "iconname": "book_icon", "isactive": "TRUE"},
		{"id": float64(7), "display_name": "Read", "icon_name": "book_icon", "is_active": true},
	}

	for _, values := range variants {
		h := NormalizeHabit(values, 1)
		assert.Equal(t, int64(7), h.ID)
		assert.Equal(t, "Read", h.DisplayName)
		assert.Equal(t, "book_icon", h.IconName)
		assert.True(t, h.IsActive)
	}
}

func TestNormalizeHabit_CamelCaseWinsOverOtherVariants(t *testing.T) {
	h := NormalizeHabit(map[string]any{"displayName": "first", "display_name": "second"}, 1)
	assert.Equal(t, "first", h.DisplayName)

	h = NormalizeHabit(map[string]any{"displayName": "", "display_name": "second"}, 1)
	assert.Equal(t, "second", h.DisplayName)
}

func TestNormalizeHabit_Defaults(t *testing.T) {
	h := NormalizeHabit(map[string]any{"displayname": "Walk"}, 3)

	assert.Equal(t, int64(3), h.ID, "position is used when id is absent")
	assert.Equal(t, "", h.IconName)
	assert.Equal(t, entity.DefaultCategory, h.Category)
	assert.Equal(t, entity.DefaultTimeOfDay, h.TimeOfDay)
	assert.Equal(t, entity.DefaultFrequencyType, h.FrequencyType)
	assert.Equal(t, entity.DefaultReminderTime, h.ReminderTime)
	assert.Equal(t, entity.DefaultGoalUnit, h.GoalUnit)
	assert.Equal(t, 0, h.GoalValue)
	assert.False(t, h.IsActive)
	assert.False(t, h.IsReminderOn)
	assert.NotNil(t, h.FrequencyDays)
}

func TestNormalizeHabit_MalformedFieldsDegrade(t *testing.T) {
	h := NormalizeHabit(map[string]any{
		"id":            "abc",
		"category":      "Sports",
		"timeofday":     "evening",
		"frequencytype": "weekly",
		"frequencydays": "1, 3,9,x",
		"remindertime":  "25:99",
		"goalvalue":     "12 laps",
		"isreminderon":  "1",
		"isactive":      "yes",
	}, 2)

	assert.Equal(t, int64(2), h.ID)
	assert.Equal(t, entity.DefaultCategory, h.Category)
	assert.Equal(t, entity.TimeOfDayEvening, h.TimeOfDay)
	assert.Equal(t, entity.FrequencyWeekly, h.FrequencyType)
	assert.Equal(t, entity.Weekdays{1, 3}, h.FrequencyDays)
	assert.Equal(t, entity.DefaultReminderTime, h.ReminderTime)
	assert.Equal(t, 12, h.GoalValue)
	assert.True(t, h.IsReminderOn)
	assert.False(t, h.IsActive)
}

func TestNormalizeHabit_NumericCellsAreTruncated(t *testing.T) {
	h := NormalizeHabit(map[string]any{"id": float64(1712345678901), "goalvalue": float64(4.9)}, 1)
	assert.Equal(t, int64(1712345678901), h.ID)
	assert.Equal(t, 4, h.GoalValue)
}

func TestNormalizeHabitLog(t *testing.T) {
	l := NormalizeHabitLog(map[string]any{
		"id":             "11",
		"habitid":        "7",
		"date":           "2024-02-01",
		"completedvalue": "30",
		"completedat":    "2024-02-01T08:00:00Z",
	}, 1)

	assert.Equal(t, int64(11), l.ID)
	assert.Equal(t, int64(7), l.HabitID)
	assert.Equal(t, "2024-02-01", l.Date)
	require.NotNil(t, l.CompletedValue)
	assert.Equal(t, 30, *l.CompletedValue)

	l = NormalizeHabitLog(map[string]any{"habit_id": float64(7), "date": float64(45323)}, 4)
	assert.Equal(t, int64(4), l.ID)
	assert.Equal(t, int64(7), l.HabitID)
	assert.Equal(t, "2024-02-01", l.Date, "date serials are converted")
	assert.Nil(t, l.CompletedValue)

	l = NormalizeHabitLog(map[string]any{"habitId": "x", "date": "2024-02-01T10:00:00Z"}, 1)
	assert.Equal(t, int64(0), l.HabitID)
	assert.Equal(t, "2024-02-01", l.Date)
}

func TestNormalizeHabits_PositionsCountNonBlankRows(t *testing.T) {
	rows := []repository.Row{
		{Number: 2, Values: map[string]any{"displayname": "A"}},
		{Number: 5, Values: map[string]any{"displayname": "B"}},
	}
	habits := NormalizeHabits(rows)
	require.Len(t, habits, 2)
	assert.Equal(t, int64(1), habits[0].ID)
	assert.Equal(t, int64(2), habits[1].ID)
}

func TestHabitRow_ColumnOrder(t *testing.T) {
	h := entity.Habit{
		ID: 5, DisplayName: "Read", IconName: "book_icon",
		Category: entity.CategoryMind, TimeOfDay: entity.TimeOfDayEvening,
		FrequencyType: entity.FrequencyCustom, FrequencyDays: entity.Weekdays{1, 3},
		ReminderTime: "21:00", IsReminderOn: true, GoalValue: 20, GoalUnit: "pages",
		IsActive: false, CreatedAt: "2024-01-01T00:00:00Z",
	}
	assert.Equal(t, []string{
		"5", "Read", "book_icon", "Mind", "Evening", "custom", "1,3", "21:00",
		"true", "20", "pages", "false", "2024-01-01T00:00:00Z",
	}, habitRow(h))
	assert.Len(t, HabitHeader(), HabitWidth)
	assert.Equal(t, 13, HabitWidth)
	assert.Equal(t, 5, LogWidth)
}
