package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/icon"
	"github.com/abuabdirohman4/better-habit/internal/habitsync"
)

// Context is bound to every command's Run method
type Context struct {
	Ctx    context.Context
	Client *habitsync.Client
	Out    io.Writer
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// parseWeekdays reads "1,3,5" or "mon,wed,fri" into ISO weekdays
func parseWeekdays(s string) (entity.Weekdays, error) {
	names := map[string]int{
		"mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6, "sun": 7,
	}

	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if len(part) >= 3 {
			if d, ok := names[part[:3]]; ok {
				days = append(days, d)
				continue
			}
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > 7 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, n)
	}
	return entity.NewWeekdays(days...), nil
}

func describeSchedule(h entity.Habit) string {
	if h.IsDaily() || len(h.FrequencyDays) == 0 {
		return string(h.FrequencyType)
	}
	return fmt.Sprintf("%s %s", h.FrequencyType, h.FrequencyDays)
}

func emoji(h entity.Habit) string {
	if ic, ok := icon.Lookup(h.IconName); ok {
		return ic.Emoji
	}
	return "•"
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid habit id: %s", s)
	}
	return id, nil
}
