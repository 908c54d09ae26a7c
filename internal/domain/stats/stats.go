// Package stats derives completion facts from a habit's log collection.
// All functions are pure. Days are calendar days in the location of the time values passed in,
// the same zone log dates are written in.
package stats

import (
	"math"
	"time"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
)

// CalendarStatus classifies one calendar day
type CalendarStatus string

const (
	StatusFuture    CalendarStatus = "future"
	StatusToday     CalendarStatus = "today"
	StatusCompleted CalendarStatus = "completed"
	StatusMissed    CalendarStatus = "missed"
	StatusEmpty     CalendarStatus = "empty" // grid padding before the first of the month
)

// dateSet indexes the distinct dates that carry a log
func dateSet(logs []entity.HabitLog) map[string]bool {
	set := make(map[string]bool, len(logs))
	for _, l := range logs {
		set[l.Date] = true
	}
	return set
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// IsCompletedOnDate reports whether any log falls on date
func IsCompletedOnDate(logs []entity.HabitLog, date string) bool {
	for _, l := range logs {
		if l.Date == date {
			return true
		}
	}
	return false
}

// CurrentStreak counts consecutive logged days ending today. An unlogged today yields 0.
func CurrentStreak(logs []entity.HabitLog, today time.Time) int {
	logged := dateSet(logs)
	streak := 0
	for day := entity.StartOfDay(today); logged[entity.FormatDate(day)]; day = entity.AddDays(day, -1) {
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive logged days
func LongestStreak(logs []entity.HabitLog) int {
	logged := dateSet(logs)
	longest := 0
	for date := range logged {
		day, err := entity.ParseDate(date, time.UTC)
		if err != nil {
			continue
		}
		// only count from the first day of a run
		if logged[entity.FormatDate(entity.AddDays(day, -1))] {
			continue
		}
		run := 0
		for d := day; logged[entity.FormatDate(d)]; d = entity.AddDays(d, 1) {
			run++
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// CompletedDaysInMonth counts the distinct logged days of the month
func CompletedDaysInMonth(logs []entity.HabitLog, year int, month time.Month) int {
	count := 0
	for date := range dateSet(logs) {
		d, err := time.Parse(entity.DateLayout, date)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			count++
		}
	}
	return count
}

// MonthlyCompletionRate returns round(100 * distinct logged days / days in month)
func MonthlyCompletionRate(logs []entity.HabitLog, year int, month time.Month) int {
	return percent(CompletedDaysInMonth(logs, year, month), entity.DaysInMonth(year, month))
}

// MonthSummary is the statistics card of one habit for one month
type MonthSummary struct {
	Month         string `json:"month"` // YYYY-MM
	Streak        int    `json:"streak"`
	LongestStreak int    `json:"longestStreak"`
	SuccessRate   int    `json:"successRate"`
	CompletedDays int    `json:"completedDays"`
	TotalDays     int    `json:"totalDaysInMonth"`
}

// Summarize builds the month summary. The streak is always relative to today.
func Summarize(logs []entity.HabitLog, year int, month time.Month, today time.Time) MonthSummary {
	return MonthSummary{
		Month:         time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		Streak:        CurrentStreak(logs, today),
		LongestStreak: LongestStreak(logs),
		SuccessRate:   MonthlyCompletionRate(logs, year, month),
		CompletedDays: CompletedDaysInMonth(logs, year, month),
		TotalDays:     entity.DaysInMonth(year, month),
	}
}

// WeekDay is one day of an ISO week
type WeekDay struct {
	Date        string `json:"date"`
	Weekday     int    `json:"weekday"` // 1=Monday
	Completed   bool   `json:"completed"`
	IsReference bool   `json:"isReference"`
}

// WeekStart returns the Monday of the ISO week containing ref
func WeekStart(ref time.Time) time.Time {
	day := entity.StartOfDay(ref)
	return entity.AddDays(day, 1-entity.ISOWeekday(day))
}

// WeeklyDayStatuses returns Monday through Sunday of the week containing ref
func WeeklyDayStatuses(logs []entity.HabitLog, ref time.Time) []WeekDay {
	logged := dateSet(logs)
	refDate := entity.FormatDate(ref)
	monday := WeekStart(ref)

	days := make([]WeekDay, 7)
	for i := range days {
		date := entity.FormatDate(entity.AddDays(monday, i))
		days[i] = WeekDay{
			Date:        date,
			Weekday:     i + 1,
			Completed:   logged[date],
			IsReference: date == refDate,
		}
	}
	return days
}

// CalendarDayStatus classifies date relative to today. Today is reported as today whether or not it is logged.
func CalendarDayStatus(date time.Time, logs []entity.HabitLog, today time.Time) CalendarStatus {
	d := entity.FormatDate(date)
	t := entity.FormatDate(today)
	switch {
	case d > t:
		return StatusFuture
	case d == t:
		return StatusToday
	case IsCompletedOnDate(logs, d):
		return StatusCompleted
	default:
		return StatusMissed
	}
}

// CalendarCell is one cell of a month grid. Padding cells have Day 0 and no date.
type CalendarCell struct {
	Day       int            `json:"day"`
	Date      string         `json:"date,omitempty"`
	Status    CalendarStatus `json:"status"`
	Completed bool           `json:"completed"`
}

// MonthCalendar lays the month out Monday first, padding the first week with empty cells
func MonthCalendar(year int, month time.Month, logs []entity.HabitLog, today time.Time) []CalendarCell {
	logged := dateSet(logs)
	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	lead := entity.ISOWeekday(first) - 1
	total := entity.DaysInMonth(year, month)

	cells := make([]CalendarCell, 0, lead+total)
	for i := 0; i < lead; i++ {
		cells = append(cells, CalendarCell{Status: StatusEmpty})
	}
	for day := 1; day <= total; day++ {
		date := entity.AddDays(first, day-1)
		formatted := entity.FormatDate(date)
		cells = append(cells, CalendarCell{
			Day:       day,
			Date:      formatted,
			Status:    CalendarDayStatus(date, logs, today),
			Completed: logged[formatted],
		})
	}
	return cells
}

// RecentCompletionRate returns the share of the last 7 days, today included, with at least one log
func RecentCompletionRate(logs []entity.HabitLog, today time.Time) int {
	end := entity.FormatDate(today)
	start := entity.FormatDate(entity.AddDays(entity.StartOfDay(today), -6))

	days := make(map[string]bool, 7)
	for _, l := range logs {
		if l.Date >= start && l.Date <= end {
			days[l.Date] = true
		}
	}
	return percent(len(days), 7)
}

// DayProgress is the share of active habits completed on one day
type DayProgress struct {
	Date      string `json:"date"`
	Weekday   int    `json:"weekday"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
}

// WeekProgress aggregates all active habits over one ISO week
type WeekProgress struct {
	Days    []DayProgress `json:"days"`
	Average int           `json:"average"`
}

// WeeklyProgress computes per-day completion across active habits for the week containing ref
func WeeklyProgress(habits []entity.Habit, logs []entity.HabitLog, ref time.Time) WeekProgress {
	active := make(map[int64]bool, len(habits))
	for _, h := range habits {
		if h.IsActive {
			active[h.ID] = true
		}
	}

	done := make(map[string]map[int64]bool)
	for _, l := range logs {
		if !active[l.HabitID] {
			continue
		}
		if done[l.Date] == nil {
			done[l.Date] = make(map[int64]bool)
		}
		done[l.Date][l.HabitID] = true
	}

	monday := WeekStart(ref)
	progress := WeekProgress{Days: make([]DayProgress, 7)}
	sum := 0
	for i := range progress.Days {
		date := entity.FormatDate(entity.AddDays(monday, i))
		completed := len(done[date])
		p := percent(completed, len(active))
		progress.Days[i] = DayProgress{
			Date:      date,
			Weekday:   i + 1,
			Completed: completed,
			Total:     len(active),
			Percent:   p,
		}
		sum += p
	}
	progress.Average = int(math.Round(float64(sum) / 7))
	return progress
}
