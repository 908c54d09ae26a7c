package service

import (
	"context"
	"time"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/stats"
)

// HabitStats is the statistics view of one habit for one month
type HabitStats struct {
	HabitID    int64              `json:"habitId"`
	Summary    stats.MonthSummary `json:"summary"`
	RecentRate int                `json:"recentRate"` // last seven days
	Week       []stats.WeekDay    `json:"week"`
}

// HabitService defines the interface for habit business logic.
// List-style reads may return data together with ErrBackendUnavailable; callers serve the data with a warning.
type HabitService interface {
	// ListHabits returns all habits, or only active ones
	ListHabits(ctx context.Context, activeOnly bool) ([]entity.Habit, error)

	// GetHabit retrieves a habit by ID
	GetHabit(ctx context.Context, id int64) (*entity.Habit, error)

	// CreateHabit validates and stores a new habit
	CreateHabit(ctx context.Context, data entity.CreateHabitData) (*entity.Habit, error)

	// UpdateHabit applies a partial update
	UpdateHabit(ctx context.Context, id int64, patch entity.HabitPatch) (*entity.Habit, error)

	// ArchiveHabit marks a habit inactive
	ArchiveHabit(ctx context.Context, id int64) (*entity.Habit, error)

	// DeleteHabit permanently removes a habit
	DeleteHabit(ctx context.Context, id int64) error

	// ListLogs returns one habit's logs, or every log when habitID is 0
	ListLogs(ctx context.Context, habitID int64) ([]entity.HabitLog, error)

	// LogCompletion records a completion
	LogCompletion(ctx context.Context, data entity.CreateHabitLogData) (*entity.HabitLog, error)

	// DeleteLog removes the habit's logs for a date
	DeleteLog(ctx context.Context, habitID int64, date string) error

	// ToggleCompletion flips completion for a date; an empty date means today
	ToggleCompletion(ctx context.Context, habitID int64, date string, completedValue *int) (bool, error)

	// GetHabitStats computes the month summary of a habit
	GetHabitStats(ctx context.Context, habitID int64, year int, month time.Month) (*HabitStats, error)

	// GetCalendar lays out a habit's month
	GetCalendar(ctx context.Context, habitID int64, year int, month time.Month) ([]stats.CalendarCell, error)

	// GetWeek returns a habit's ISO week containing ref
	GetWeek(ctx context.Context, habitID int64, ref time.Time) ([]stats.WeekDay, error)

	// GetWeeklyProgress aggregates every active habit over the ISO week containing ref
	GetWeeklyProgress(ctx context.Context, ref time.Time) (*stats.WeekProgress, error)

	// DueReminders returns the active habits whose reminder fires at now and that are not yet done today
	DueReminders(ctx context.Context, now time.Time) ([]entity.Habit, error)

	// Now returns the current time in the configured zone
	Now() time.Time

	// Location returns the configured zone
	Location() *time.Location
}

// EventPublisher delivers change events
type EventPublisher interface {
	Publish(ctx context.Context, event entity.ChangeEvent) error
}

// ReminderNotifier delivers a reminder for a habit not yet completed today
type ReminderNotifier interface {
	SendReminder(ctx context.Context, to string, habit entity.Habit, date string) error
}
