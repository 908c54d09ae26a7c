package habitsync

import (
	"context"

	"go.uber.org/zap"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/service"
)

// Habits returns every habit, from the cache when it is fresh
func (c *Client) Habits(ctx context.Context) ([]entity.Habit, error) {
	return fetchList(ctx, c, habitsKey, false, c.api.listHabits)
}

// CachedHabits returns the cached habits without a request
func (c *Client) CachedHabits() ([]entity.Habit, bool) {
	return cachedList[entity.Habit](c, habitsKey)
}

// Logs returns the logs of one habit, from the cache when it is fresh
func (c *Client) Logs(ctx context.Context, habitID int64) ([]entity.HabitLog, error) {
	return fetchList(ctx, c, logsKey(habitID), false, func(ctx context.Context) ([]entity.HabitLog, string, error) {
		return c.api.listLogs(ctx, habitID)
	})
}

// CachedLogs returns the cached logs of one habit without a request
func (c *Client) CachedLogs(habitID int64) ([]entity.HabitLog, bool) {
	return cachedList[entity.HabitLog](c, logsKey(habitID))
}

// Stats fetches the month summary of a habit. month is YYYY-MM or empty for the current month.
func (c *Client) Stats(ctx context.Context, habitID int64, month string) (*service.HabitStats, error) {
	if c.isClosed() {
		return nil, ErrClosed
	}
	stats, warning, err := c.api.stats(ctx, habitID, month)
	if err != nil {
		return nil, err
	}
	if warning != "" {
		c.log.Warn("server served degraded stats", zap.Int64("habit_id", habitID), zap.String("warning", warning))
	}
	return stats, nil
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func replaceHabit(habits []entity.Habit, id int64, h entity.Habit) []entity.Habit {
	for i := range habits {
		if habits[i].ID == id {
			habits[i] = h
			return habits
		}
	}
	return append(habits, h)
}

func removeHabit(habits []entity.Habit, id int64) []entity.Habit {
	out := habits[:0]
	for _, h := range habits {
		if h.ID != id {
			out = append(out, h)
		}
	}
	return out
}

// CreateHabit adds the habit under a temporary negative id until the server assigns the real one
func (c *Client) CreateHabit(ctx context.Context, data entity.CreateHabitData) (*entity.Habit, error) {
	temp := entity.NewHabit(c.nextTempID(), data, c.now())

	var created *entity.Habit
	err := mutate(ctx, c, habitsKey,
		func(habits []entity.Habit) []entity.Habit {
			return append(habits, *temp)
		},
		func(ctx context.Context) (func([]entity.Habit) []entity.Habit, error) {
			h, err := c.api.createHabit(ctx, data)
			if err != nil {
				return nil, err
			}
			created = h
			return func(habits []entity.Habit) []entity.Habit {
				return replaceHabit(habits, temp.ID, *h)
			}, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateHabit applies the patch locally, then on the server
func (c *Client) UpdateHabit(ctx context.Context, id int64, patch entity.HabitPatch) (*entity.Habit, error) {
	return c.updateWith(ctx, id, patch, func(ctx context.Context) (*entity.Habit, error) {
		return c.api.updateHabit(ctx, id, patch)
	})
}

// ArchiveHabit marks the habit inactive
func (c *Client) ArchiveHabit(ctx context.Context, id int64) (*entity.Habit, error) {
	return c.updateWith(ctx, id, entity.Archive(), func(ctx context.Context) (*entity.Habit, error) {
		return c.api.archiveHabit(ctx, id)
	})
}

func (c *Client) updateWith(ctx context.Context, id int64, patch entity.HabitPatch, call func(context.Context) (*entity.Habit, error)) (*entity.Habit, error) {
	var updated *entity.Habit
	err := mutate(ctx, c, habitsKey,
		func(habits []entity.Habit) []entity.Habit {
			for i := range habits {
				if habits[i].ID == id {
					habits[i] = habits[i].Apply(patch)
				}
			}
			return habits
		},
		func(ctx context.Context) (func([]entity.Habit) []entity.Habit, error) {
			h, err := call(ctx)
			if err != nil {
				return nil, err
			}
			updated = h
			return func(habits []entity.Habit) []entity.Habit {
				return replaceHabit(habits, id, *h)
			}, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteHabit removes the habit locally, then on the server. Its cached logs are dropped on success.
func (c *Client) DeleteHabit(ctx context.Context, id int64) error {
	err := mutate(ctx, c, habitsKey,
		func(habits []entity.Habit) []entity.Habit {
			return removeHabit(habits, id)
		},
		func(ctx context.Context) (func([]entity.Habit) []entity.Habit, error) {
			return nil, c.api.deleteHabit(ctx, id)
		},
	)
	if err != nil {
		return err
	}
	c.drop(logsKey(id))
	return nil
}
