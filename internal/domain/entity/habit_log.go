package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// HabitLog records that a habit was completed on a calendar date
type HabitLog struct {
	ID             int64  `json:"id"`
	HabitID        int64  `json:"habitId"`
	Date           string `json:"date"` // YYYY-MM-DD in the configured zone
	CompletedValue *int   `json:"completedValue,omitempty"`
	CompletedAt    string `json:"completedAt"`
}

// CreateHabitLogData is the payload for creating a log
type CreateHabitLogData struct {
	HabitID        int64  `json:"habitId"`
	Date           string `json:"date"`
	CompletedValue *int   `json:"completedValue,omitempty"`
}

// UnmarshalJSON accepts habitId and completedValue as numbers or numeric strings
func (d *CreateHabitLogData) UnmarshalJSON(data []byte) error {
	var raw struct {
		HabitID        json.RawMessage `json:"habitId"`
		Date           string          `json:"date"`
		CompletedValue json.RawMessage `json:"completedValue"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	habitID, _, err := flexInt(raw.HabitID)
	if err != nil {
		return fmt.Errorf("habitId: %w", err)
	}
	value, ok, err := flexInt(raw.CompletedValue)
	if err != nil {
		return fmt.Errorf("completedValue: %w", err)
	}

	d.HabitID = habitID
	d.Date = strings.TrimSpace(raw.Date)
	d.CompletedValue = nil
	if ok {
		v := int(value)
		d.CompletedValue = &v
	}
	return nil
}

// Validate checks that the log names a habit and a well-formed date
func (d *CreateHabitLogData) Validate() error {
	switch {
	case d.HabitID <= 0:
		return validationf("habitId is required")
	case d.Date == "":
		return validationf("date is required")
	case !IsValidDate(d.Date):
		return validationf("date must be formatted as YYYY-MM-DD")
	case d.CompletedValue != nil && *d.CompletedValue < 0:
		return validationf("completedValue must not be negative")
	}
	return nil
}

// NewHabitLog builds a log from creation data
func NewHabitLog(id int64, data CreateHabitLogData, completedAt time.Time) *HabitLog {
	return &HabitLog{
		ID:             id,
		HabitID:        data.HabitID,
		Date:           data.Date,
		CompletedValue: data.CompletedValue,
		CompletedAt:    completedAt.UTC().Format(time.RFC3339),
	}
}

// flexInt decodes a JSON number or numeric string. ok is false for absent, null or empty values.
func flexInt(raw json.RawMessage) (value int64, ok bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("not an integer: %q", s)
		}
		return n, true, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false, err
	}
	return int64(f), true, nil
}
