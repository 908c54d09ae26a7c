package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/abuabdirohman4/better-habit/internal/domain/service"
)

// StatsHandler serves derived statistics
type StatsHandler struct {
	habitService service.HabitService
	log          *zap.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(habitService service.HabitService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{
		habitService: habitService,
		log:          log,
	}
}

// GetHabitStats returns streaks and success rate for a month
// @Summary Habit statistics
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Habit ID"
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} object{data=service.HabitStats,warning=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /habits/{id}/stats [get]
func (h *StatsHandler) GetHabitStats(w http.ResponseWriter, r *http.Request) {
	id, err := habitIDParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	year, month, err := monthParam(r, h.habitService.Now())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	stats, err := h.habitService.GetHabitStats(r.Context(), id, year, month)
	writeRead(w, r, h.log, stats, err)
}

// GetCalendar returns the month grid of a habit
// @Summary Habit calendar
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Habit ID"
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} object{data=[]stats.CalendarCell,warning=string}
// @Failure 404 {object} object{error=string}
// @Router /habits/{id}/calendar [get]
func (h *StatsHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	id, err := habitIDParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	year, month, err := monthParam(r, h.habitService.Now())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	cells, err := h.habitService.GetCalendar(r.Context(), id, year, month)
	writeRead(w, r, h.log, cells, err)
}

// GetWeek returns Monday to Sunday completion of a habit
// @Summary Habit week
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Habit ID"
// @Param date query string false "Any date in the week (YYYY-MM-DD), defaults to today"
// @Success 200 {object} object{data=[]stats.WeekDay,warning=string}
// @Failure 404 {object} object{error=string}
// @Router /habits/{id}/week [get]
func (h *StatsHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	id, err := habitIDParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	ref, err := dateParam(r, h.habitService.Now(), h.habitService.Location())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	days, err := h.habitService.GetWeek(r.Context(), id, ref)
	writeRead(w, r, h.log, days, err)
}

// GetWeeklyProgress aggregates all active habits over a week
// @Summary Weekly progress
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param date query string false "Any date in the week (YYYY-MM-DD), defaults to today"
// @Success 200 {object} object{data=stats.WeekProgress,warning=string}
// @Router /progress/weekly [get]
func (h *StatsHandler) GetWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	ref, err := dateParam(r, h.habitService.Now(), h.habitService.Location())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	progress, err := h.habitService.GetWeeklyProgress(r.Context(), ref)
	writeRead(w, r, h.log, progress, err)
}
