package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/service"
)

// LogHandler handles completion log requests
type LogHandler struct {
	habitService service.HabitService
	log          *zap.Logger
}

// NewLogHandler creates a new log handler
func NewLogHandler(habitService service.HabitService, log *zap.Logger) *LogHandler {
	return &LogHandler{
		habitService: habitService,
		log:          log,
	}
}

type toggleRequest struct {
	Date           string `json:"date"`
	CompletedValue *int   `json:"completedValue"`
}

// ListLogs returns every log, optionally filtered by ?habitId=
// @Summary List logs
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param habitId query int false "Habit ID"
// @Success 200 {object} object{data=[]entity.HabitLog,warning=string}
// @Router /habit-logs [get]
func (h *LogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	var habitID int64
	if raw := r.URL.Query().Get("habitId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, h.log, apperror.Validation("Invalid habit id"))
			return
		}
		habitID = id
	}
	h.list(w, r, habitID)
}

// ListHabitLogs returns the logs of one habit
// @Summary List logs of a habit
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Habit ID"
// @Success 200 {object} object{data=[]entity.HabitLog,warning=string}
// @Router /habits/{id}/logs [get]
func (h *LogHandler) ListHabitLogs(w http.ResponseWriter, r *http.Request) {
	id, err := habitIDParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.list(w, r, id)
}

func (h *LogHandler) list(w http.ResponseWriter, r *http.Request, habitID int64) {
	logs, err := h.habitService.ListLogs(r.Context(), habitID)
	if logs == nil {
		logs = []entity.HabitLog{}
	}
	writeRead(w, r, h.log, logs, err)
}

// CreateLog records a completion
// @Summary Create log
// @Tags logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body entity.CreateHabitLogData true "Log"
// @Success 201 {object} object{data=entity.HabitLog}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /habit-logs [post]
func (h *LogHandler) CreateLog(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateHabitLogData
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.create(w, r, req)
}

// CreateHabitLog records a completion for the habit in the path
// @Summary Create log for a habit
// @Description The path id is used when the body omits habitId.
// @Tags logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Habit ID"
// @Param request body entity.CreateHabitLogData true "Log"
// @Success 201 {object} object{data=entity.HabitLog}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /habits/{id}/logs [post]
func (h *LogHandler) CreateHabitLog(w http.ResponseWriter, r *http.Request) {
	id, err := habitIDParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req entity.CreateHabitLogData
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if req.HabitID == 0 {
		req.HabitID = id
	}
	h.create(w, r, req)
}

func (h *LogHandler) create(w http.ResponseWriter, r *http.Request, req entity.CreateHabitLogData) {
	log, err := h.habitService.LogCompletion(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, log)
}

// DeleteLogs removes a habit's logs for a date
// @Summary Delete logs
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param habitId query int true "Habit ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /habit-logs [delete]
func (h *LogHandler) DeleteLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	habitID, _ := strconv.ParseInt(query.Get("habitId"), 10, 64)

	if err := h.habitService.DeleteLog(r.Context(), habitID, query.Get("date")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ToggleLog flips completion of a habit for a date
// @Summary Toggle completion
// @Description An omitted date means today in the configured zone.
// @Tags logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Habit ID"
// @Param request body object{date=string,completedValue=int} false "Toggle request"
// @Success 200 {object} object{data=object{completed=bool}}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /habits/{id}/logs/toggle [post]
func (h *LogHandler) ToggleLog(w http.ResponseWriter, r *http.Request) {
	id, err := habitIDParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req toggleRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, h.log, err)
			return
		}
	}

	completed, err := h.habitService.ToggleCompletion(r.Context(), id, req.Date, req.CompletedValue)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"completed": completed})
}
