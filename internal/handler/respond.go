package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/middleware"
	habitservice "github.com/abuabdirohman4/better-habit/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeData answers {"data": ...}
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"data": data})
}

// writeRead answers a list-style read. A degraded read still answers 200 with a warning.
func writeRead(w http.ResponseWriter, r *http.Request, log *zap.Logger, data any, err error) {
	if err != nil && !habitservice.IsDegraded(err) {
		writeError(w, r, log, err)
		return
	}
	body := map[string]any{"data": data}
	if err != nil {
		log.Warn("serving degraded read",
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		body["warning"] = apperror.Message(err)
	}
	writeJSON(w, http.StatusOK, body)
}

// writeError answers {"error": ...} with the status of the error kind
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status := apperror.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeJSON(w, status, map[string]string{"error": apperror.Message(err)})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.Wrap(apperror.ErrValidation, "Invalid request body", err)
	}
	return nil
}

func habitIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("Invalid habit id")
	}
	return id, nil
}

// monthParam reads ?month=YYYY-MM, defaulting to the month of now
func monthParam(r *http.Request, now time.Time) (int, time.Month, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return 0, 0, apperror.Validation("month must be formatted as YYYY-MM")
	}
	return t.Year(), t.Month(), nil
}

// dateParam reads ?date=YYYY-MM-DD in loc, defaulting to now
func dateParam(r *http.Request, now time.Time, loc *time.Location) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return now, nil
	}
	t, err := entity.ParseDate(raw, loc)
	if err != nil {
		return time.Time{}, apperror.Validation("date must be formatted as YYYY-MM-DD")
	}
	return t, nil
}
