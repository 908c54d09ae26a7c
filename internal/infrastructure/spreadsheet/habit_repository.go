package spreadsheet

import (
	"context"
	"errors"
	"time"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/repository"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/sheet"

	"go.uber.org/zap"
)

const placeholderCreatedAt = "2024-01-01T00:00:00Z"

// Placeholders are served when no backend is configured and the option is set
func Placeholders() []entity.Habit {
	return []entity.Habit{
		{
			ID: 1, DisplayName: "Morning Run", IconName: "run_icon",
			Category: entity.CategoryHealth, TimeOfDay: entity.TimeOfDayMorning,
			FrequencyType: entity.FrequencyDaily, FrequencyDays: entity.Weekdays{},
			ReminderTime: "07:00", IsReminderOn: true, GoalValue: 5, GoalUnit: "km",
			IsActive: true, CreatedAt: placeholderCreatedAt,
		},
		{
			ID: 2, DisplayName: "Meditation", IconName: "meditation_icon",
			Category: entity.CategoryMind, TimeOfDay: entity.TimeOfDayMorning,
			FrequencyType: entity.FrequencyDaily, FrequencyDays: entity.Weekdays{},
			ReminderTime: "08:00", IsReminderOn: true, GoalValue: 10, GoalUnit: "minutes",
			IsActive: true, CreatedAt: placeholderCreatedAt,
		},
	}
}

type habitRecord struct {
	habit entity.Habit
	row   int
}

type habitRepository struct {
	gw   repository.SheetGateway
	opts Options
}

// NewHabitRepository creates a habit repository over the Habits sheet
func NewHabitRepository(gw repository.SheetGateway, opts Options) repository.HabitRepository {
	return &habitRepository{gw: gw, opts: opts.withDefaults()}
}

func (r *habitRepository) load(ctx context.Context) ([]habitRecord, error) {
	rows, err := readTable(ctx, r.gw, r.opts, r.opts.HabitsSheet)
	if err != nil {
		return nil, err
	}
	habits := NormalizeHabits(rows)
	records := make([]habitRecord, len(rows))
	for i := range rows {
		records[i] = habitRecord{habit: habits[i], row: rows[i].Number}
	}
	return records, nil
}

func (r *habitRepository) find(ctx context.Context, id int64) (*habitRecord, error) {
	records, err := r.load(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrSheetNotFound) {
			return nil, apperror.NotFound("Habit not found")
		}
		return nil, err
	}
	for i := range records {
		if records[i].habit.ID == id {
			return &records[i], nil
		}
	}
	return nil, apperror.NotFound("Habit not found")
}

func (r *habitRepository) List(ctx context.Context) ([]entity.Habit, error) {
	records, err := r.load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrSheetNotFound):
		return []entity.Habit{}, nil
	case errors.Is(err, apperror.ErrBackendNotConfigured):
		if r.opts.PlaceholdersWhenUnconfigured {
			return Placeholders(), nil
		}
		return []entity.Habit{}, nil
	default:
		r.opts.Logger.Error("serving empty habit list", zap.Error(err))
		return []entity.Habit{}, err
	}

	habits := make([]entity.Habit, len(records))
	for i, rec := range records {
		habits[i] = rec.habit
	}
	return habits, nil
}

func (r *habitRepository) Get(ctx context.Context, id int64) (*entity.Habit, error) {
	rec, err := r.find(ctx, id)
	if err == nil {
		return &rec.habit, nil
	}
	if errors.Is(err, apperror.ErrBackendNotConfigured) && r.opts.PlaceholdersWhenUnconfigured {
		for _, h := range Placeholders() {
			if h.ID == id {
				return &h, nil
			}
		}
		return nil, apperror.NotFound("Habit not found")
	}
	return nil, err
}

func (r *habitRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := r.Get(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperror.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (r *habitRepository) Create(ctx context.Context, data entity.CreateHabitData) (*entity.Habit, error) {
	habit := entity.NewHabit(r.opts.IDs.Next(), data, r.opts.Now())
	if err := habit.Validate(); err != nil {
		return nil, err
	}

	rangeRef := sheet.ColumnsRange(r.opts.HabitsSheet, HabitWidth)
	if err := r.gw.AppendRows(ctx, r.opts.SpreadsheetID, rangeRef, [][]string{habitRow(*habit)}); err != nil {
		return nil, apperror.Wrap(apperror.ErrBackendWriteFailed, "Failed to create habit", err)
	}
	return habit, nil
}

func (r *habitRepository) Update(ctx context.Context, id int64, patch entity.HabitPatch) (*entity.Habit, error) {
	rec, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := rec.habit.Apply(patch)
	if updated.CreatedAt == "" {
		updated.CreatedAt = r.opts.Now().UTC().Format(time.RFC3339)
	}
	if err := updated.ValidateFields(); err != nil {
		return nil, err
	}
	// legacy rows may carry a schedule the current rules reject
	if patch.TouchesSchedule() {
		if err := updated.ValidateSchedule(); err != nil {
			return nil, err
		}
	}

	rangeRef := sheet.RowRange(r.opts.HabitsSheet, rec.row, HabitWidth)
	if err := r.gw.OverwriteRange(ctx, r.opts.SpreadsheetID, rangeRef, [][]string{habitRow(updated)}); err != nil {
		return nil, apperror.Wrap(apperror.ErrBackendWriteFailed, "Failed to update habit", err)
	}
	return &updated, nil
}

func (r *habitRepository) Delete(ctx context.Context, id int64) error {
	rec, err := r.find(ctx, id)
	if err != nil {
		return err
	}

	rangeRef := sheet.RowRange(r.opts.HabitsSheet, rec.row, HabitWidth)
	if err := r.gw.OverwriteRange(ctx, r.opts.SpreadsheetID, rangeRef, [][]string{blankRow(HabitWidth)}); err != nil {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "Failed to delete habit", err)
	}
	return nil
}
