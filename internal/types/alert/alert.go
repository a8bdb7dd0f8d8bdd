package alert

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeReminder Type = "REMINDER"
	TypeWarning  Type = "WARNING"
	TypeCritical Type = "CRITICAL"
)

type Source string

const (
	SourceAthlete Source = "athlete"
	SourceMLModel Source = "ml_model"
	SourceManual  Source = "manual"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusResolved Status = "resolved"
)

type Alert struct {
	ID              uuid.UUID `json:"id"`
	AthleteID       uuid.UUID `json:"athlete_id"`
	Type            Type      `json:"type"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	HydrationLevel  float64   `json:"hydration_level"`
	HydrationStatus string    `json:"hydration_status"`
	StatusChange    bool      `json:"status_change"`
	CoachMessage    *string   `json:"coach_message"`
	Source          Source    `json:"source"`
	Status          Status    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
}

// CoachAlert is an alert annotated with the athlete's display name for the
// coach-facing lists. The name is joined in at presentation time only.
type CoachAlert struct {
	Alert
	AthleteName string `json:"athlete_name"`
}

type ManualAlertRequest struct {
	HydrationLevel float64 `json:"hydration_level"`
}

type ManualAlertResponse struct {
	Status string `json:"status"`
	Alert  *Alert `json:"alert"`
}
