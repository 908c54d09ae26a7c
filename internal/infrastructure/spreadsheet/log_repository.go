package spreadsheet

import (
	"context"
	"errors"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/repository"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/sheet"

	"go.uber.org/zap"
)

type logRecord struct {
	log entity.HabitLog
	row int
}

type logRepository struct {
	gw     repository.SheetGateway
	habits repository.HabitFinder
	opts   Options
}

// NewHabitLogRepository creates a log repository over the HabitLogs sheet
func NewHabitLogRepository(gw repository.SheetGateway, habits repository.HabitFinder, opts Options) repository.HabitLogRepository {
	return &logRepository{gw: gw, habits: habits, opts: opts.withDefaults()}
}

// load returns every stored log. A missing sheet reads as empty.
func (r *logRepository) load(ctx context.Context) ([]logRecord, error) {
	rows, err := readTable(ctx, r.gw, r.opts, r.opts.LogsSheet)
	if err != nil {
		if errors.Is(err, apperror.ErrSheetNotFound) {
			return nil, nil
		}
		return nil, err
	}
	logs := NormalizeHabitLogs(rows)
	records := make([]logRecord, len(rows))
	for i := range rows {
		records[i] = logRecord{log: logs[i], row: rows[i].Number}
	}
	return records, nil
}

// degrade turns read failures into an empty collection. Only unavailability is reported.
func (r *logRepository) degrade(err error) ([]entity.HabitLog, error) {
	if errors.Is(err, apperror.ErrBackendNotConfigured) {
		return []entity.HabitLog{}, nil
	}
	r.opts.Logger.Error("serving empty log list", zap.Error(err))
	return []entity.HabitLog{}, err
}

func (r *logRepository) List(ctx context.Context) ([]entity.HabitLog, error) {
	records, err := r.load(ctx)
	if err != nil {
		return r.degrade(err)
	}
	logs := make([]entity.HabitLog, len(records))
	for i, rec := range records {
		logs[i] = rec.log
	}
	return logs, nil
}

func (r *logRepository) ListForHabit(ctx context.Context, habitID int64) ([]entity.HabitLog, error) {
	records, err := r.load(ctx)
	if err != nil {
		return r.degrade(err)
	}
	logs := make([]entity.HabitLog, 0)
	for _, rec := range records {
		if rec.log.HabitID == habitID {
			logs = append(logs, rec.log)
		}
	}
	return logs, nil
}

func (r *logRepository) Create(ctx context.Context, data entity.CreateHabitLogData) (*entity.HabitLog, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	exists, err := r.habits.Exists(ctx, data.HabitID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("Habit not found")
	}

	log := entity.NewHabitLog(r.opts.IDs.Next(), data, r.opts.Now())
	rangeRef := sheet.ColumnsRange(r.opts.LogsSheet, LogWidth)
	if err := r.gw.AppendRows(ctx, r.opts.SpreadsheetID, rangeRef, [][]string{logRow(*log)}); err != nil {
		return nil, apperror.Wrap(apperror.ErrBackendWriteFailed, "Failed to create habit log", err)
	}
	return log, nil
}

func (r *logRepository) DeleteForDate(ctx context.Context, habitID int64, date string) error {
	if habitID <= 0 || date == "" {
		return apperror.Validation("habitId and date are required")
	}

	records, err := r.load(ctx)
	if err != nil {
		return err
	}

	deleted := 0
	for _, rec := range records {
		if rec.log.HabitID != habitID || rec.log.Date != date {
			continue
		}
		rangeRef := sheet.RowRange(r.opts.LogsSheet, rec.row, LogWidth)
		if err := r.gw.OverwriteRange(ctx, r.opts.SpreadsheetID, rangeRef, [][]string{blankRow(LogWidth)}); err != nil {
			return apperror.Wrap(apperror.ErrBackendWriteFailed, "Failed to delete habit log", err)
		}
		deleted++
	}
	if deleted == 0 {
		return apperror.NotFound("Log not found")
	}
	return nil
}

func (r *logRepository) Toggle(ctx context.Context, habitID int64, date string, completedValue *int) (bool, error) {
	records, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	for _, rec := range records {
		if rec.log.HabitID == habitID && rec.log.Date == date {
			if err := r.DeleteForDate(ctx, habitID, date); err != nil {
				return false, err
			}
			return false, nil
		}
	}

	data := entity.CreateHabitLogData{HabitID: habitID, Date: date, CompletedValue: completedValue}
	if _, err := r.Create(ctx, data); err != nil {
		return false, err
	}
	return true, nil
}
