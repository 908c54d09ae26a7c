package repository

import (
	"context"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
)

// HabitRepository defines the interface for habit persistence
type HabitRepository interface {
	// List returns every habit, archived ones included
	List(ctx context.Context) ([]entity.Habit, error)

	// Get retrieves a habit by ID
	Get(ctx context.Context, id int64) (*entity.Habit, error)

	// Exists reports whether a habit with the ID is stored
	Exists(ctx context.Context, id int64) (bool, error)

	// Create validates and appends a new habit
	Create(ctx context.Context, data entity.CreateHabitData) (*entity.Habit, error)

	// Update merges a partial update over the stored habit
	Update(ctx context.Context, id int64, patch entity.HabitPatch) (*entity.Habit, error)

	// Delete permanently removes a habit by blanking its row
	Delete(ctx context.Context, id int64) error
}

// HabitLogRepository defines the interface for completion log persistence
type HabitLogRepository interface {
	// List returns the entire log collection
	List(ctx context.Context) ([]entity.HabitLog, error)

	// ListForHabit returns the logs of one habit
	ListForHabit(ctx context.Context, habitID int64) ([]entity.HabitLog, error)

	// Create appends a log without checking for an existing one on the same date
	Create(ctx context.Context, data entity.CreateHabitLogData) (*entity.HabitLog, error)

	// DeleteForDate removes the habit's logs for the date
	DeleteForDate(ctx context.Context, habitID int64, date string) error

	// Toggle flips completion for the date and returns the new state
	Toggle(ctx context.Context, habitID int64, date string, completedValue *int) (bool, error)
}

// HabitFinder checks that a log refers to an existing habit
type HabitFinder interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
