package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/repository"
	"github.com/abuabdirohman4/better-habit/internal/domain/service"
	"github.com/abuabdirohman4/better-habit/internal/domain/stats"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type habitService struct {
	habitRepo repository.HabitRepository
	logRepo   repository.HabitLogRepository
	publisher service.EventPublisher
	loc       *time.Location
	now       func() time.Time
	log       *zap.Logger
}

// NewHabitService creates a new habit service. publisher may be nil.
func NewHabitService(
	habitRepo repository.HabitRepository,
	logRepo repository.HabitLogRepository,
	publisher service.EventPublisher,
	loc *time.Location,
	log *zap.Logger,
) service.HabitService {
	if loc == nil {
		loc = time.Local
	}
	return &habitService{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		publisher: publisher,
		loc:       loc,
		now:       time.Now,
		log:       log,
	}
}

// IsDegraded reports whether err only marks a read served empty because the backend is unreachable
func IsDegraded(err error) bool {
	return err != nil && errors.Is(err, apperror.ErrBackendUnavailable)
}

func (s *habitService) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *habitService) Location() *time.Location {
	return s.loc
}

func (s *habitService) publish(ctx context.Context, eventType entity.EventType, habitID int64, date string, habit *entity.Habit, log *entity.HabitLog) {
	if s.publisher == nil {
		return
	}
	event := entity.ChangeEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		HabitID:    habitID,
		Date:       date,
		OccurredAt: s.now().UTC(),
		Habit:      habit,
		Log:        log,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish change event",
			zap.String("type", string(eventType)),
			zap.Int64("habit_id", habitID),
			zap.Error(err),
		)
	}
}

func (s *habitService) ListHabits(ctx context.Context, activeOnly bool) ([]entity.Habit, error) {
	habits, err := s.habitRepo.List(ctx)
	if !activeOnly {
		return habits, err
	}

	active := make([]entity.Habit, 0, len(habits))
	for _, h := range habits {
		if h.IsActive {
			active = append(active, h)
		}
	}
	return active, err
}

func (s *habitService) GetHabit(ctx context.Context, id int64) (*entity.Habit, error) {
	return s.habitRepo.Get(ctx, id)
}

func (s *habitService) CreateHabit(ctx context.Context, data entity.CreateHabitData) (*entity.Habit, error) {
	habit, err := s.habitRepo.Create(ctx, data)
	if err != nil {
		return nil, err
	}

	s.log.Info("habit created", zap.Int64("habit_id", habit.ID), zap.String("name", habit.DisplayName))
	s.publish(ctx, entity.EventHabitCreated, habit.ID, "", habit, nil)
	return habit, nil
}

func (s *habitService) UpdateHabit(ctx context.Context, id int64, patch entity.HabitPatch) (*entity.Habit, error) {
	habit, err := s.habitRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, entity.EventHabitUpdated, habit.ID, "", habit, nil)
	return habit, nil
}

func (s *habitService) ArchiveHabit(ctx context.Context, id int64) (*entity.Habit, error) {
	return s.UpdateHabit(ctx, id, entity.Archive())
}

func (s *habitService) DeleteHabit(ctx context.Context, id int64) error {
	if err := s.habitRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("habit deleted", zap.Int64("habit_id", id))
	s.publish(ctx, entity.EventHabitDeleted, id, "", nil, nil)
	return nil
}

func (s *habitService) ListLogs(ctx context.Context, habitID int64) ([]entity.HabitLog, error) {
	if habitID == 0 {
		return s.logRepo.List(ctx)
	}
	return s.logRepo.ListForHabit(ctx, habitID)
}

func (s *habitService) LogCompletion(ctx context.Context, data entity.CreateHabitLogData) (*entity.HabitLog, error) {
	log, err := s.logRepo.Create(ctx, data)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, entity.EventLogCreated, log.HabitID, log.Date, nil, log)
	return log, nil
}

func (s *habitService) DeleteLog(ctx context.Context, habitID int64, date string) error {
	if err := s.logRepo.DeleteForDate(ctx, habitID, date); err != nil {
		return err
	}

	s.publish(ctx, entity.EventLogDeleted, habitID, date, nil, nil)
	return nil
}

func (s *habitService) ToggleCompletion(ctx context.Context, habitID int64, date string, completedValue *int) (bool, error) {
	if date == "" {
		date = entity.FormatDate(s.Now())
	}
	if !entity.IsValidDate(date) {
		return false, apperror.Validation("date must be formatted as YYYY-MM-DD")
	}

	completed, err := s.logRepo.Toggle(ctx, habitID, date, completedValue)
	if err != nil {
		return false, err
	}

	if completed {
		s.publish(ctx, entity.EventLogCreated, habitID, date, nil, nil)
	} else {
		s.publish(ctx, entity.EventLogDeleted, habitID, date, nil, nil)
	}
	return completed, nil
}

// habitLogs loads an existing habit's logs. A degraded read is returned with its error.
func (s *habitService) habitLogs(ctx context.Context, habitID int64) ([]entity.HabitLog, error) {
	if _, err := s.habitRepo.Get(ctx, habitID); err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListForHabit(ctx, habitID)
	if err != nil && !IsDegraded(err) {
		return nil, fmt.Errorf("failed to load logs of habit %d: %w", habitID, err)
	}
	return logs, err
}

func (s *habitService) GetHabitStats(ctx context.Context, habitID int64, year int, month time.Month) (*service.HabitStats, error) {
	logs, err := s.habitLogs(ctx, habitID)
	if err != nil && !IsDegraded(err) {
		return nil, err
	}

	today := s.Now()
	return &service.HabitStats{
		HabitID:    habitID,
		Summary:    stats.Summarize(logs, year, month, today),
		RecentRate: stats.RecentCompletionRate(logs, today),
		Week:       stats.WeeklyDayStatuses(logs, today),
	}, err
}

func (s *habitService) GetCalendar(ctx context.Context, habitID int64, year int, month time.Month) ([]stats.CalendarCell, error) {
	logs, err := s.habitLogs(ctx, habitID)
	if err != nil && !IsDegraded(err) {
		return nil, err
	}
	return stats.MonthCalendar(year, month, logs, s.Now()), err
}

func (s *habitService) GetWeek(ctx context.Context, habitID int64, ref time.Time) ([]stats.WeekDay, error) {
	logs, err := s.habitLogs(ctx, habitID)
	if err != nil && !IsDegraded(err) {
		return nil, err
	}
	return stats.WeeklyDayStatuses(logs, ref.In(s.loc)), err
}

func (s *habitService) GetWeeklyProgress(ctx context.Context, ref time.Time) (*stats.WeekProgress, error) {
	habits, habitsErr := s.habitRepo.List(ctx)
	if habitsErr != nil && !IsDegraded(habitsErr) {
		return nil, habitsErr
	}
	logs, logsErr := s.logRepo.List(ctx)
	if logsErr != nil && !IsDegraded(logsErr) {
		return nil, logsErr
	}

	progress := stats.WeeklyProgress(habits, logs, ref.In(s.loc))
	return &progress, errors.Join(habitsErr, logsErr)
}

func (s *habitService) DueReminders(ctx context.Context, now time.Time) ([]entity.Habit, error) {
	local := now.In(s.loc)
	clock := local.Format("15:04")
	today := entity.FormatDate(local)

	habits, err := s.ListHabits(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	candidates := make([]entity.Habit, 0)
	for _, h := range habits {
		if h.IsReminderOn && h.ReminderTime == clock && h.IsScheduledOn(local) {
			candidates = append(candidates, h)
		}
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	logs, err := s.logRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	done := make(map[int64]bool)
	for _, l := range logs {
		if l.Date == today {
			done[l.HabitID] = true
		}
	}

	due := make([]entity.Habit, 0, len(candidates))
	for _, h := range candidates {
		if !done[h.ID] {
			due = append(due, h)
		}
	}
	return due, nil
}
