package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
)

// User is the single identity record. The internal UUID is the only key used
// for cross-references; the Clerk ID exists only at the auth seam.
type User struct {
	ID          uuid.UUID `json:"id"`
	ClerkID     string    `json:"clerk_id"`
	Role        Role      `json:"role"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Sport       string    `json:"sport"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type JoinCoachRequest struct {
	CoachName string `json:"coach_name"`
}

// RosterAthlete is a coach-facing view of an assigned athlete with the most
// recent classified reading folded in.
type RosterAthlete struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Sport          string    `json:"sport"`
	HydrationLevel float64   `json:"hydration_level"`
	Status         string    `json:"status"`
}

type DashboardStats struct {
	TotalAthletes     int     `json:"totalAthletes"`
	AvgHydration      float64 `json:"avgHydration"`
	CriticalHydration int     `json:"criticalHydration"`
}
