package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/icon"
	"github.com/abuabdirohman4/better-habit/internal/domain/service"
)

// HabitHandler handles habit-related HTTP requests
type HabitHandler struct {
	habitService service.HabitService
	log          *zap.Logger
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(habitService service.HabitService, log *zap.Logger) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
		log:          log,
	}
}

// ListHabits returns every habit
// @Summary List habits
// @Description List all habits. Degraded reads answer 200 with an empty list and a warning.
// @Tags habits
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active habits"
// @Success 200 {object} object{data=[]entity.Habit,warning=string}
// @Failure 500 {object} object{error=string}
// @Router /habits [get]
func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))

	habits, err := h.habitService.ListHabits(r.Context(), activeOnly)
	if habits == nil {
		habits = []entity.Habit{}
	}
	writeRead(w, r, h.log, habits, err)
}

// GetHabit retrieves a single habit by ID
// @Summary Get habit
// @Tags habits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Habit ID"
// @Success 200 {object} object{data=entity.Habit}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /habits/{id} [get]
func (h *HabitHandler) GetHabit(w http.ResponseWriter, r *http.Request) {
	id, err := habitIDParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	habit, err := h.habitService.GetHabit(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, habit)
}

// CreateHabit handles habit creation
// @Summary Create a new habit
// @Description Create a habit. Omitted fields take their defaults.
// @Tags habits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body entity.CreateHabitData true "Create habit request"
// @Success 201 {object} object{data=entity.Habit}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /habits [post]
func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateHabitData
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	habit, err := h.habitService.CreateHabit(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, habit)
}

// UpdateHabit applies a partial update
// @Summary Update habit
// @Tags habits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Habit ID"
// @Param request body entity.HabitPatch true "Fields to change"
// @Success 200 {object} object{data=entity.Habit}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /habits/{id} [put]
func (h *HabitHandler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	id, err := habitIDParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var patch entity.HabitPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	habit, err := h.habitService.UpdateHabit(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, habit)
}

// ArchiveHabit marks a habit inactive
// @Summary Archive habit
// @Tags habits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Habit ID"
// @Success 200 {object} object{data=entity.Habit}
// @Failure 404 {object} object{error=string}
// @Router /habits/{id}/archive [post]
func (h *HabitHandler) ArchiveHabit(w http.ResponseWriter, r *http.Request) {
	id, err := habitIDParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	habit, err := h.habitService.ArchiveHabit(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, habit)
}

// DeleteHabit permanently removes a habit
// @Summary Delete habit
// @Tags habits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Habit ID"
// @Success 200 {object} object{success=bool}
// @Failure 404 {object} object{error=string}
// @Router /habits/{id} [delete]
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	id, err := habitIDParam(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.habitService.DeleteHabit(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListIcons returns the icon catalog
// @Summary List icons
// @Tags habits
// @Produce json
// @Success 200 {object} object{data=[]icon.Icon}
// @Router /icons [get]
func (h *HabitHandler) ListIcons(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, icon.All())
}
