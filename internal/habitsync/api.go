package habitsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/service"
)

// APIError is a non-2xx answer from the server. It unwraps to the matching apperror kind.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server answered %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusBadRequest:
		return apperror.ErrValidation
	case e.StatusCode == http.StatusNotFound:
		return apperror.ErrNotFound
	case e.StatusCode >= http.StatusInternalServerError:
		return apperror.ErrBackendUnavailable
	}
	return nil
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Warning string          `json:"warning"`
}

type apiClient struct {
	baseURL    string
	token      string
	http       *http.Client
	retries    int
	retryDelay time.Duration
}

// do performs one request and decodes the envelope's data into out
func (a *apiClient) do(ctx context.Context, method, path string, body, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 400 {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("failed to decode data: %w", err)
		}
	}
	return env.Warning, nil
}

// get retries transport failures and 5xx answers. Writes never go through here.
func (a *apiClient) get(ctx context.Context, path string, out any) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= a.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(a.retryDelay * time.Duration(attempt)):
			}
		}

		warning, err := a.do(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return warning, nil
		}
		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return "", err
		}
		if ctx.Err() != nil {
			return "", err
		}
	}
	return "", lastErr
}

func (a *apiClient) listHabits(ctx context.Context) ([]entity.Habit, string, error) {
	var habits []entity.Habit
	warning, err := a.get(ctx, "/habits", &habits)
	return habits, warning, err
}

func (a *apiClient) listLogs(ctx context.Context, habitID int64) ([]entity.HabitLog, string, error) {
	var logs []entity.HabitLog
	warning, err := a.get(ctx, fmt.Sprintf("/habits/%d/logs", habitID), &logs)
	return logs, warning, err
}

func (a *apiClient) createHabit(ctx context.Context, data entity.CreateHabitData) (*entity.Habit, error) {
	var habit entity.Habit
	if _, err := a.do(ctx, http.MethodPost, "/habits", data, &habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

func (a *apiClient) updateHabit(ctx context.Context, id int64, patch entity.HabitPatch) (*entity.Habit, error) {
	var habit entity.Habit
	if _, err := a.do(ctx, http.MethodPut, fmt.Sprintf("/habits/%d", id), patch, &habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

func (a *apiClient) archiveHabit(ctx context.Context, id int64) (*entity.Habit, error) {
	var habit entity.Habit
	if _, err := a.do(ctx, http.MethodPost, fmt.Sprintf("/habits/%d/archive", id), nil, &habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

func (a *apiClient) deleteHabit(ctx context.Context, id int64) error {
	_, err := a.do(ctx, http.MethodDelete, fmt.Sprintf("/habits/%d", id), nil, nil)
	return err
}

func (a *apiClient) createLog(ctx context.Context, data entity.CreateHabitLogData) (*entity.HabitLog, error) {
	var log entity.HabitLog
	if _, err := a.do(ctx, http.MethodPost, "/habit-logs", data, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (a *apiClient) deleteLogs(ctx context.Context, habitID int64, date string) error {
	q := url.Values{}
	q.Set("habitId", strconv.FormatInt(habitID, 10))
	q.Set("date", date)
	_, err := a.do(ctx, http.MethodDelete, "/habit-logs?"+q.Encode(), nil, nil)
	return err
}

func (a *apiClient) toggle(ctx context.Context, habitID int64, date string, value *int) (bool, error) {
	body := struct {
		Date           string `json:"date,omitempty"`
		CompletedValue *int   `json:"completedValue,omitempty"`
	}{Date: date, CompletedValue: value}

	var out struct {
		Completed bool `json:"completed"`
	}
	if _, err := a.do(ctx, http.MethodPost, fmt.Sprintf("/habits/%d/logs/toggle", habitID), body, &out); err != nil {
		return false, err
	}
	return out.Completed, nil
}

func (a *apiClient) stats(ctx context.Context, habitID int64, month string) (*service.HabitStats, string, error) {
	path := fmt.Sprintf("/habits/%d/stats", habitID)
	if month != "" {
		path += "?month=" + url.QueryEscape(month)
	}
	var stats service.HabitStats
	warning, err := a.get(ctx, path, &stats)
	if err != nil {
		return nil, "", err
	}
	return &stats, warning, nil
}
