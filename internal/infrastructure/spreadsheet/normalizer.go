package spreadsheet

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/repository"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/sheet"
)

// column is one positional sheet column and the keys it may appear under
type column struct {
	header string
	keys   []string
}

// newColumn derives the lookup keys in priority order: camelCase, lower-flattened, snake_case
func newColumn(camel string) column {
	keys := []string{camel}
	for _, k := range []string{strings.ToLower(camel), snakeCase(camel)} {
		if !containsKey(keys, k) {
			keys = append(keys, k)
		}
	}
	return column{header: camel, keys: keys}
}

func snakeCase(camel string) string {
	var b strings.Builder
	for i, r := range camel {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func containsKey(keys []string, k string) bool {
	for _, existing := range keys {
		if existing == k {
			return true
		}
	}
	return false
}

// Habits sheet layout, A:M
var (
	colHabitID       = newColumn("id")
	colDisplayName   = newColumn("displayName")
	colIconName      = newColumn("iconName")
	colCategory      = newColumn("category")
	colTimeOfDay     = newColumn("timeOfDay")
	colFrequencyType = newColumn("frequencyType")
	colFrequencyDays = newColumn("frequencyDays")
	colReminderTime  = newColumn("reminderTime")
	colIsReminderOn  = newColumn("isReminderOn")
	colGoalValue     = newColumn("goalValue")
	colGoalUnit      = newColumn("goalUnit")
	colIsActive      = newColumn("isActive")
	colCreatedAt     = newColumn("createdAt")

	habitColumns = []column{
		colHabitID, colDisplayName, colIconName, colCategory, colTimeOfDay, colFrequencyType,
		colFrequencyDays, colReminderTime, colIsReminderOn, colGoalValue, colGoalUnit, colIsActive, colCreatedAt,
	}
)

// HabitLogs sheet layout, A:E
var (
	colLogID          = newColumn("id")
	colLogHabitID     = newColumn("habitId")
	colLogDate        = newColumn("date")
	colCompletedValue = newColumn("completedValue")
	colCompletedAt    = newColumn("completedAt")

	logColumns = []column{colLogID, colLogHabitID, colLogDate, colCompletedValue, colCompletedAt}
)

// HabitWidth and LogWidth are the fixed row widths
var (
	HabitWidth = len(habitColumns)
	LogWidth   = len(logColumns)
)

// HabitHeader returns the header row of the Habits sheet
func HabitHeader() []string {
	return headers(habitColumns)
}

// LogHeader returns the header row of the HabitLogs sheet
func LogHeader() []string {
	return headers(logColumns)
}

func headers(cols []column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.header
	}
	return out
}

// lookup returns the first non-blank value among the column's keys
func lookup(values map[string]any, c column) (any, bool) {
	for _, k := range c.keys {
		v, ok := values[k]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func stringField(values map[string]any, c column, fallback string) string {
	v, ok := lookup(values, c)
	if !ok {
		return fallback
	}
	return sheet.CellString(v)
}

// boolField accepts "true", "1" and native true
func boolField(values map[string]any, c column) bool {
	v, ok := lookup(values, c)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b == 1
	case string:
		s := strings.ToLower(strings.TrimSpace(b))
		return s == "true" || s == "1"
	}
	return false
}

func intField(values map[string]any, c column) (int64, bool) {
	v, ok := lookup(values, c)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		return parseLeadingInt(n)
	}
	return 0, false
}

// parseLeadingInt reads a base-10 integer prefix, so "5 km" yields 5
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// sheetsEpoch is day zero of spreadsheet date serial numbers
var sheetsEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// dateField returns YYYY-MM-DD, accepting date serials and strings with a trailing time part
func dateField(values map[string]any, c column) string {
	v, ok := lookup(values, c)
	if !ok {
		return ""
	}
	if serial, isNumber := v.(float64); isNumber {
		return entity.FormatDate(sheetsEpoch.AddDate(0, 0, int(serial)))
	}
	s := sheet.CellString(v)
	if len(s) > len(entity.DateLayout) && entity.IsValidDate(s[:len(entity.DateLayout)]) {
		return s[:len(entity.DateLayout)]
	}
	return s
}

// NormalizeHabit turns a raw row into a Habit. position is the 1-based index among non-blank rows
// and becomes the id when the row has none; such ids shift when rows are reordered.
func NormalizeHabit(values map[string]any, position int) entity.Habit {
	h := entity.Habit{
		DisplayName:   stringField(values, colDisplayName, ""),
		IconName:      stringField(values, colIconName, ""),
		Category:      entity.DefaultCategory,
		TimeOfDay:     entity.DefaultTimeOfDay,
		FrequencyType: entity.DefaultFrequencyType,
		FrequencyDays: entity.ParseWeekdays(stringField(values, colFrequencyDays, "")),
		ReminderTime:  stringField(values, colReminderTime, entity.DefaultReminderTime),
		IsReminderOn:  boolField(values, colIsReminderOn),
		GoalUnit:      stringField(values, colGoalUnit, entity.DefaultGoalUnit),
		IsActive:      boolField(values, colIsActive),
		CreatedAt:     stringField(values, colCreatedAt, ""),
	}

	if id, ok := intField(values, colHabitID); ok && id > 0 {
		h.ID = id
	} else {
		h.ID = int64(position)
	}
	if c, ok := entity.ParseCategory(stringField(values, colCategory, "")); ok {
		h.Category = c
	}
	if t, ok := entity.ParseTimeOfDay(stringField(values, colTimeOfDay, "")); ok {
		h.TimeOfDay = t
	}
	if f, ok := entity.ParseFrequencyType(stringField(values, colFrequencyType, "")); ok {
		h.FrequencyType = f
	}
	if !entity.IsValidClock(h.ReminderTime) {
		h.ReminderTime = entity.DefaultReminderTime
	}
	if goal, ok := intField(values, colGoalValue); ok && goal > 0 {
		h.GoalValue = int(goal)
	}

	return h
}

// NormalizeHabitLog turns a raw row into a HabitLog
func NormalizeHabitLog(values map[string]any, position int) entity.HabitLog {
	l := entity.HabitLog{
		Date:        dateField(values, colLogDate),
		CompletedAt: stringField(values, colCompletedAt, ""),
	}

	if id, ok := intField(values, colLogID); ok && id > 0 {
		l.ID = id
	} else {
		l.ID = int64(position)
	}
	if habitID, ok := intField(values, colLogHabitID); ok {
		l.HabitID = habitID
	}
	if v, ok := intField(values, colCompletedValue); ok {
		value := int(v)
		l.CompletedValue = &value
	}

	return l
}

// NormalizeHabits normalizes non-blank rows, numbering positions from 1
func NormalizeHabits(rows []repository.Row) []entity.Habit {
	out := make([]entity.Habit, 0, len(rows))
	for i, row := range rows {
		out = append(out, NormalizeHabit(row.Values, i+1))
	}
	return out
}

// NormalizeHabitLogs normalizes non-blank rows, numbering positions from 1
func NormalizeHabitLogs(rows []repository.Row) []entity.HabitLog {
	out := make([]entity.HabitLog, 0, len(rows))
	for i, row := range rows {
		out = append(out, NormalizeHabitLog(row.Values, i+1))
	}
	return out
}

// habitRow serializes a habit in column order
func habitRow(h entity.Habit) []string {
	return []string{
		strconv.FormatInt(h.ID, 10),
		h.DisplayName,
		h.IconName,
		string(h.Category),
		string(h.TimeOfDay),
		string(h.FrequencyType),
		h.FrequencyDays.String(),
		h.ReminderTime,
		strconv.FormatBool(h.IsReminderOn),
		strconv.Itoa(h.GoalValue),
		h.GoalUnit,
		strconv.FormatBool(h.IsActive),
		h.CreatedAt,
	}
}

// logRow serializes a log in column order
func logRow(l entity.HabitLog) []string {
	value := ""
	if l.CompletedValue != nil {
		value = strconv.Itoa(*l.CompletedValue)
	}
	return []string{
		strconv.FormatInt(l.ID, 10),
		strconv.FormatInt(l.HabitID, 10),
		l.Date,
		value,
		l.CompletedAt,
	}
}

func blankRow(width int) []string {
	return make([]string, width)
}
