package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeService struct {
	service.HabitService
	due []entity.Habit
	err error
}

func (f *fakeService) DueReminders(context.Context, time.Time) ([]entity.Habit, error) {
	return f.due, f.err
}

func (f *fakeService) Now() time.Time { return time.Now().UTC() }

func (f *fakeService) Location() *time.Location { return time.UTC }

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []string
	fails int
}

func (f *fakeNotifier) SendReminder(_ context.Context, to string, habit entity.Habit, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fails > 0 {
		f.fails--
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, to+"/"+habit.DisplayName+"/"+date)
	return nil
}

func TestReminderScheduler_SendsOncePerHabitPerDay(t *testing.T) {
	svc := &fakeService{due: []entity.Habit{{ID: 1, DisplayName: "Run"}, {ID: 2, DisplayName: "Read"}}}
	notifier := &fakeNotifier{}
	s := NewReminderScheduler(svc, notifier, "me@example.com", time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	morning := time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, s.Check(ctx, morning))
	assert.Equal(t, 0, s.Check(ctx, morning.Add(30*time.Second)))
	assert.Equal(t, []string{"me@example.com/Run/2024-01-15", "me@example.com/Read/2024-01-15"}, notifier.sent)

	assert.Equal(t, 2, s.Check(ctx, morning.Add(24*time.Hour)), "a new day resets the sent set")
}

func TestReminderScheduler_RetriesFailedSends(t *testing.T) {
	svc := &fakeService{due: []entity.Habit{{ID: 1, DisplayName: "Run"}}}
	notifier := &fakeNotifier{fails: 1}
	s := NewReminderScheduler(svc, notifier, "me@example.com", time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, s.Check(ctx, now))
	assert.Equal(t, 1, s.Check(ctx, now))
}

func TestReminderScheduler_ServiceError(t *testing.T) {
	svc := &fakeService{err: errors.New("backend unavailable")}
	notifier := &fakeNotifier{}
	s := NewReminderScheduler(svc, notifier, "me@example.com", time.Minute, zaptest.NewLogger(t))

	assert.Equal(t, 0, s.Check(context.Background(), time.Now()))
	assert.Empty(t, notifier.sent)
}

func TestReminderScheduler_StartStop(t *testing.T) {
	s := NewReminderScheduler(&fakeService{}, &fakeNotifier{}, "me@example.com", time.Hour, zaptest.NewLogger(t))
	require.NoError(t, s.Start())
	s.Stop()
}
