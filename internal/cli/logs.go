package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
)

type ToggleCmd struct {
	ID    string `arg:"" help:"Habit ID."`
	Date  string `help:"Date (YYYY-MM-DD). Defaults to today."`
	Value int    `help:"Completed value, recorded when positive."`
}

func (c *ToggleCmd) Validate() error {
	if c.Date != "" && !entity.IsValidDate(c.Date) {
		return fmt.Errorf("date must be formatted as YYYY-MM-DD")
	}
	return nil
}

func (c *ToggleCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}

	var value *int
	if c.Value > 0 {
		value = &c.Value
	}
	completed, err := ctx.Client.ToggleCompletion(ctx.Ctx, id, c.Date, value)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = "today"
	}
	if completed {
		ctx.printf("Habit #%d completed for %s\n", id, day)
	} else {
		ctx.printf("Habit #%d no longer completed for %s\n", id, day)
	}
	return nil
}

type LogsCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *LogsCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	logs, err := ctx.Client.Logs(ctx.Ctx, id)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		ctx.printf("No logs found\n")
		return nil
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].Date < logs[j].Date })
	ctx.printf("Logs of habit #%d:\n", id)
	for _, l := range logs {
		if l.CompletedValue != nil {
			ctx.printf("  %s  %d\n", l.Date, *l.CompletedValue)
		} else {
			ctx.printf("  %s\n", l.Date)
		}
	}
	return nil
}

type StatsCmd struct {
	ID    string `arg:"" help:"Habit ID."`
	Month string `short:"m" help:"Month (YYYY-MM). Defaults to the current month."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	stats, err := ctx.Client.Stats(ctx.Ctx, id, c.Month)
	if err != nil {
		return err
	}

	s := stats.Summary
	ctx.printf("Habit #%d, %s\n", id, s.Month)
	ctx.printf("  Current streak:  %d\n", s.Streak)
	ctx.printf("  Longest streak:  %d\n", s.LongestStreak)
	ctx.printf("  Success rate:    %d%% (%d/%d days)\n", s.SuccessRate, s.CompletedDays, s.TotalDays)
	ctx.printf("  Last 7 days:     %d%%\n", stats.RecentRate)

	marks := make([]string, len(stats.Week))
	for i, d := range stats.Week {
		marks[i] = "·"
		if d.Completed {
			marks[i] = "✓"
		}
	}
	ctx.printf("  This week:       %s\n", strings.Join(marks, " "))
	return nil
}
