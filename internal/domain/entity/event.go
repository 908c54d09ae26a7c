package entity

import "time"

// EventType names a change to the stored habits or logs
type EventType string

const (
	EventHabitCreated EventType = "habit.created"
	EventHabitUpdated EventType = "habit.updated"
	EventHabitDeleted EventType = "habit.deleted"
	EventLogCreated   EventType = "log.created"
	EventLogDeleted   EventType = "log.deleted"
)

// ChangeEvent is published after a write succeeds
type ChangeEvent struct {
	EventID    string    `json:"eventId"`
	Type       EventType `json:"type"`
	HabitID    int64     `json:"habitId"`
	Date       string    `json:"date,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	Habit      *Habit    `json:"habit,omitempty"`
	Log        *HabitLog `json:"log,omitempty"`
}
