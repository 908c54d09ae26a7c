package habitsync

import (
	"context"

	"go.uber.org/zap"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
)

func withoutDate(logs []entity.HabitLog, date string) []entity.HabitLog {
	out := logs[:0]
	for _, l := range logs {
		if l.Date != date {
			out = append(out, l)
		}
	}
	return out
}

func hasDate(logs []entity.HabitLog, date string) bool {
	for _, l := range logs {
		if l.Date == date {
			return true
		}
	}
	return false
}

// LogCompletion adds the log under a temporary id until the server answers
func (c *Client) LogCompletion(ctx context.Context, data entity.CreateHabitLogData) (*entity.HabitLog, error) {
	temp := entity.NewHabitLog(c.nextTempID(), data, c.now())

	var created *entity.HabitLog
	err := mutate(ctx, c, logsKey(data.HabitID),
		func(logs []entity.HabitLog) []entity.HabitLog {
			return append(logs, *temp)
		},
		func(ctx context.Context) (func([]entity.HabitLog) []entity.HabitLog, error) {
			l, err := c.api.createLog(ctx, data)
			if err != nil {
				return nil, err
			}
			created = l
			return func(logs []entity.HabitLog) []entity.HabitLog {
				for i := range logs {
					if logs[i].ID == temp.ID {
						logs[i] = *l
						return logs
					}
				}
				return append(logs, *l)
			}, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteLog removes every log of the habit on date
func (c *Client) DeleteLog(ctx context.Context, habitID int64, date string) error {
	return mutate(ctx, c, logsKey(habitID),
		func(logs []entity.HabitLog) []entity.HabitLog {
			return withoutDate(logs, date)
		},
		func(ctx context.Context) (func([]entity.HabitLog) []entity.HabitLog, error) {
			return nil, c.api.deleteLogs(ctx, habitID, date)
		},
	)
}

// ToggleCompletion flips completion for date, or today when date is empty.
// The cache follows the server's answer and is then refetched to pick up real ids.
func (c *Client) ToggleCompletion(ctx context.Context, habitID int64, date string, value *int) (bool, error) {
	local := date
	if local == "" {
		local = entity.FormatDate(c.now().In(c.opts.Location))
	}
	temp := entity.NewHabitLog(c.nextTempID(), entity.CreateHabitLogData{HabitID: habitID, Date: local, CompletedValue: value}, c.now())

	var completed bool
	err := mutate(ctx, c, logsKey(habitID),
		func(logs []entity.HabitLog) []entity.HabitLog {
			if hasDate(logs, local) {
				return withoutDate(logs, local)
			}
			return append(logs, *temp)
		},
		func(ctx context.Context) (func([]entity.HabitLog) []entity.HabitLog, error) {
			done, err := c.api.toggle(ctx, habitID, date, value)
			if err != nil {
				return nil, err
			}
			completed = done
			return func(logs []entity.HabitLog) []entity.HabitLog {
				switch {
				case done && !hasDate(logs, local):
					return append(logs, *temp)
				case !done:
					return withoutDate(logs, local)
				}
				return logs
			}, nil
		},
	)
	if err != nil {
		return false, err
	}

	if _, cached := c.CachedLogs(habitID); cached {
		if _, err := fetchList(ctx, c, logsKey(habitID), true, func(ctx context.Context) ([]entity.HabitLog, string, error) {
			return c.api.listLogs(ctx, habitID)
		}); err != nil {
			c.log.Warn("failed to refresh logs after toggle", zap.Int64("habit_id", habitID), zap.Error(err))
		}
	}
	return completed, nil
}
