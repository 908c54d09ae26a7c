package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Category groups habits on the dashboard
type Category string

const (
	CategorySpiritual  Category = "Spiritual"
	CategoryHealth     Category = "Health"
	CategoryMind       Category = "Mind"
	CategoryToDontList Category = "To Dont List" // habits to avoid
)

// Categories lists every known category in display order
var Categories = []Category{CategorySpiritual, CategoryHealth, CategoryMind, CategoryToDontList}

// TimeOfDay is the part of the day a habit belongs to
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "Morning"
	TimeOfDayAfternoon TimeOfDay = "Afternoon"
	TimeOfDayEvening   TimeOfDay = "Evening"
	TimeOfDayAllDay    TimeOfDay = "All Day"
)

// TimesOfDay lists every known time of day
var TimesOfDay = []TimeOfDay{TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening, TimeOfDayAllDay}

// FrequencyType represents how often a habit is scheduled
type FrequencyType string

const (
	FrequencyDaily  FrequencyType = "daily"
	FrequencyWeekly FrequencyType = "weekly" // specific days of week
	FrequencyCustom FrequencyType = "custom"
)

// FrequencyTypes lists every known frequency type
var FrequencyTypes = []FrequencyType{FrequencyDaily, FrequencyWeekly, FrequencyCustom}

// Defaults applied when a field is absent
const (
	DefaultCategory      = CategoryHealth
	DefaultTimeOfDay     = TimeOfDayAllDay
	DefaultFrequencyType = FrequencyDaily
	DefaultReminderTime  = "07:00"
	DefaultGoalUnit      = "minutes"
)

// ParseCategory matches a stored value against the known categories, ignoring case
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, true
		}
	}
	return "", false
}

// ParseTimeOfDay matches a stored value against the known times of day, ignoring case
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	for _, t := range TimesOfDay {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// ParseFrequencyType matches a stored value against the known frequency types, ignoring case
func ParseFrequencyType(s string) (FrequencyType, bool) {
	for _, f := range FrequencyTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, true
		}
	}
	return "", false
}

// Weekdays is an ordered set of ISO weekday numbers (1=Monday ... 7=Sunday)
type Weekdays []int

// ParseWeekdays parses the stored "1,3,5" form. Values outside 1..7 are dropped.
func ParseWeekdays(s string) Weekdays {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	days := make([]int, 0, len(fields))
	for _, f := range fields {
		if d, err := strconv.Atoi(f); err == nil {
			days = append(days, d)
		}
	}
	return NewWeekdays(days...)
}

// NewWeekdays builds a sorted, de-duplicated set
func NewWeekdays(days ...int) Weekdays {
	seen := make(map[int]bool, len(days))
	out := make(Weekdays, 0, len(days))
	for _, d := range days {
		if d < 1 || d > 7 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// String returns the stored form
func (w Weekdays) String() string {
	parts := make([]string, len(w))
	for i, d := range w {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// Contains reports whether the ISO weekday is in the set
func (w Weekdays) Contains(day int) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// MarshalJSON always encodes an array, never null
func (w Weekdays) MarshalJSON() ([]byte, error) {
	if w == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(w))
}

// UnmarshalJSON accepts an array of numbers or the "1,3,5" string form
func (w *Weekdays) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*w = Weekdays{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = ParseWeekdays(s)
		return nil
	}
	var days []int
	if err := json.Unmarshal(data, &days); err != nil {
		return fmt.Errorf("frequencyDays must be a list of weekdays: %w", err)
	}
	*w = NewWeekdays(days...)
	return nil
}

// Habit represents a tracked habit
type Habit struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName" validate:"required"`
	IconName    string `json:"iconName" validate:"required"`

	Category  Category  `json:"category" validate:"category"`
	TimeOfDay TimeOfDay `json:"timeOfDay" validate:"timeofday"`

	// Schedule configuration
	FrequencyType FrequencyType `json:"frequencyType" validate:"frequency"`
	FrequencyDays Weekdays      `json:"frequencyDays"` // required unless daily

	// Reminder
	ReminderTime string `json:"reminderTime" validate:"omitempty,clock"`
	IsReminderOn bool   `json:"isReminderOn"`

	// Goal
	GoalValue int    `json:"goalValue" validate:"gte=0"`
	GoalUnit  string `json:"goalUnit"`

	// Metadata
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

// IsDaily returns true if the habit is scheduled every day
func (h *Habit) IsDaily() bool {
	return h.FrequencyType == FrequencyDaily
}

// IsScheduledOn reports whether the habit is due on the calendar day of t
func (h *Habit) IsScheduledOn(t time.Time) bool {
	if h.IsDaily() {
		return true
	}
	return h.FrequencyDays.Contains(ISOWeekday(t))
}

// Validate checks field constraints and the schedule rule
func (h *Habit) Validate() error {
	if err := h.ValidateFields(); err != nil {
		return err
	}
	return h.ValidateSchedule()
}

// ValidateFields checks the per-field constraints only
func (h *Habit) ValidateFields() error {
	return validateStruct(h)
}

// ValidateSchedule checks that non-daily habits name at least one weekday
func (h *Habit) ValidateSchedule() error {
	if !h.IsDaily() && len(h.FrequencyDays) == 0 {
		return validationf("frequencyDays is required when frequencyType is %s", h.FrequencyType)
	}
	return nil
}

// TouchesSchedule reports whether the patch changes the schedule
func (p HabitPatch) TouchesSchedule() bool {
	return p.FrequencyType != nil || p.FrequencyDays != nil
}

// CreateHabitData is the payload for creating a habit
type CreateHabitData struct {
	DisplayName   string        `json:"displayName"`
	IconName      string        `json:"iconName"`
	Category      Category      `json:"category"`
	TimeOfDay     TimeOfDay     `json:"timeOfDay"`
	FrequencyType FrequencyType `json:"frequencyType"`
	FrequencyDays Weekdays      `json:"frequencyDays"`
	ReminderTime  string        `json:"reminderTime"`
	IsReminderOn  bool          `json:"isReminderOn"`
	GoalValue     int           `json:"goalValue"`
	GoalUnit      string        `json:"goalUnit"`
}

// NewHabit builds an active habit from creation data, filling defaults
func NewHabit(id int64, data CreateHabitData, createdAt time.Time) *Habit {
	h := &Habit{
		ID:            id,
		DisplayName:   strings.TrimSpace(data.DisplayName),
		IconName:      strings.TrimSpace(data.IconName),
		Category:      data.Category,
		TimeOfDay:     data.TimeOfDay,
		FrequencyType: data.FrequencyType,
		FrequencyDays: data.FrequencyDays,
		ReminderTime:  data.ReminderTime,
		IsReminderOn:  data.IsReminderOn,
		GoalValue:     data.GoalValue,
		GoalUnit:      data.GoalUnit,
		IsActive:      true,
		CreatedAt:     createdAt.UTC().Format(time.RFC3339),
	}
	h.fillDefaults()
	h.clearDailyDays()
	return h
}

func (h *Habit) fillDefaults() {
	if h.Category == "" {
		h.Category = DefaultCategory
	}
	if h.TimeOfDay == "" {
		h.TimeOfDay = DefaultTimeOfDay
	}
	if h.FrequencyType == "" {
		h.FrequencyType = DefaultFrequencyType
	}
	if h.ReminderTime == "" {
		h.ReminderTime = DefaultReminderTime
	}
	if h.GoalUnit == "" {
		h.GoalUnit = DefaultGoalUnit
	}
	if c, ok := ParseCategory(string(h.Category)); ok {
		h.Category = c
	}
	if t, ok := ParseTimeOfDay(string(h.TimeOfDay)); ok {
		h.TimeOfDay = t
	}
	if f, ok := ParseFrequencyType(string(h.FrequencyType)); ok {
		h.FrequencyType = f
	}
	if h.FrequencyDays == nil {
		h.FrequencyDays = Weekdays{}
	}
}

// clearDailyDays drops the weekday set of a daily habit
func (h *Habit) clearDailyDays() {
	if h.IsDaily() {
		h.FrequencyDays = Weekdays{}
	}
}

// HabitPatch is a partial update. Nil fields keep their current value; id and createdAt cannot be patched.
type HabitPatch struct {
	DisplayName   *string        `json:"displayName,omitempty"`
	IconName      *string        `json:"iconName,omitempty"`
	Category      *Category      `json:"category,omitempty"`
	TimeOfDay     *TimeOfDay     `json:"timeOfDay,omitempty"`
	FrequencyType *FrequencyType `json:"frequencyType,omitempty"`
	FrequencyDays *Weekdays      `json:"frequencyDays,omitempty"`
	ReminderTime  *string        `json:"reminderTime,omitempty"`
	IsReminderOn  *bool          `json:"isReminderOn,omitempty"`
	GoalValue     *int           `json:"goalValue,omitempty"`
	GoalUnit      *string        `json:"goalUnit,omitempty"`
	IsActive      *bool          `json:"isActive,omitempty"`
}

// Archive returns the patch that deactivates a habit
func Archive() HabitPatch {
	inactive := false
	return HabitPatch{IsActive: &inactive}
}

// Apply returns a copy of h with the patch merged over it
func (h Habit) Apply(p HabitPatch) Habit {
	if p.DisplayName != nil {
		h.DisplayName = strings.TrimSpace(*p.DisplayName)
	}
	if p.IconName != nil {
		h.IconName = strings.TrimSpace(*p.IconName)
	}
	if p.Category != nil {
		h.Category = *p.Category
	}
	if p.TimeOfDay != nil {
		h.TimeOfDay = *p.TimeOfDay
	}
	if p.FrequencyType != nil {
		h.FrequencyType = *p.FrequencyType
	}
	if p.FrequencyDays != nil {
		h.FrequencyDays = append(Weekdays{}, (*p.FrequencyDays)...)
	}
	if p.ReminderTime != nil {
		h.ReminderTime = *p.ReminderTime
	}
	if p.IsReminderOn != nil {
		h.IsReminderOn = *p.IsReminderOn
	}
	if p.GoalValue != nil {
		h.GoalValue = *p.GoalValue
	}
	if p.GoalUnit != nil {
		h.GoalUnit = *p.GoalUnit
	}
	if p.IsActive != nil {
		h.IsActive = *p.IsActive
	}
	h.fillDefaults()
	if p.FrequencyType != nil || p.FrequencyDays != nil {
		h.clearDailyDays()
	}
	return h
}

// IsEmpty reports whether the patch changes nothing
func (p HabitPatch) IsEmpty() bool {
	return p == HabitPatch{}
}
