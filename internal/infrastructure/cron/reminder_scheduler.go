package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderScheduler periodically e-mails reminders for habits due now and not yet completed today
type ReminderScheduler struct {
	habitService service.HabitService
	notifier     service.ReminderNotifier
	recipient    string
	cron         *cron.Cron
	interval     time.Duration
	log          *zap.Logger

	mu   sync.Mutex
	day  string
	sent map[int64]bool
}

// NewReminderScheduler creates a new reminder scheduler
func NewReminderScheduler(
	habitService service.HabitService,
	notifier service.ReminderNotifier,
	recipient string,
	checkInterval time.Duration,
	log *zap.Logger,
) *ReminderScheduler {
	return &ReminderScheduler{
		habitService: habitService,
		notifier:     notifier,
		recipient:    recipient,
		cron:         cron.New(cron.WithLocation(habitService.Location())),
		interval:     checkInterval,
		log:          log,
		sent:         make(map[int64]bool),
	}
}

// Start starts the reminder scheduler
func (s *ReminderScheduler) Start() error {
	cronExpr := fmt.Sprintf("@every %s", s.interval.String())

	s.log.Info("starting reminder scheduler", zap.Duration("interval", s.interval))

	_, err := s.cron.AddFunc(cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.Check(ctx, s.habitService.Now())
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the reminder scheduler and waits for a running check
func (s *ReminderScheduler) Stop() {
	s.log.Info("stopping reminder scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Check sends the reminders due at now and returns how many were sent
func (s *ReminderScheduler) Check(ctx context.Context, now time.Time) int {
	habits, err := s.habitService.DueReminders(ctx, now)
	if err != nil {
		s.log.Error("failed to load due reminders", zap.Error(err))
		return 0
	}

	date := entity.FormatDate(now.In(s.habitService.Location()))
	sent := 0
	for _, h := range habits {
		if !s.claim(date, h.ID) {
			continue
		}
		if err := s.notifier.SendReminder(ctx, s.recipient, h, date); err != nil {
			s.release(h.ID)
			s.log.Error("failed to send reminder",
				zap.Int64("habit_id", h.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	if sent > 0 {
		s.log.Info("reminders sent", zap.Int("count", sent), zap.String("date", date))
	}
	return sent
}

// claim marks the habit as reminded for date. The set resets when the day changes.
func (s *ReminderScheduler) claim(date string, habitID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.day != date {
		s.day = date
		s.sent = make(map[int64]bool)
	}
	if s.sent[habitID] {
		return false
	}
	s.sent[habitID] = true
	return true
}

func (s *ReminderScheduler) release(habitID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sent, habitID)
}
