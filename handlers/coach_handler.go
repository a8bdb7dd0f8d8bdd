package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"smartHydrationAPI/internal/types/user"
	"smartHydrationAPI/services"
)

type CoachHandler struct {
	userService   *services.UserService
	alertService  *services.AlertService
	rosterService *services.RosterService
}

func NewCoachHandler(userService *services.UserService, alertService *services.AlertService, rosterService *services.RosterService) *CoachHandler {
	return &CoachHandler{
		userService:   userService,
		alertService:  alertService,
		rosterService: rosterService,
	}
}

// GET /api/v1/coach/alerts - Status-change alerts for the coach's roster
func (h *CoachHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	coach, ok := requireUser(ctx, w, h.userService, user.RoleCoach)
	if !ok {
		return
	}

	alerts, err := h.alertService.ListForCoach(ctx, coach.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, alerts)
}

// GET /api/v1/coach/alerts/{athleteId} - All alerts for one roster athlete
func (h *CoachHandler) GetAthleteAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	coach, ok := requireUser(ctx, w, h.userService, user.RoleCoach)
	if !ok {
		return
	}

	athleteID, err := uuid.Parse(mux.Vars(r)["athleteId"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid athlete ID")
		return
	}

	alerts, err := h.alertService.ListForAthleteByCoach(ctx, coach.ID, athleteID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, alerts)
}

// POST /api/v1/coach/alerts/resolve/{alertId} - Resolve an alert
func (h *CoachHandler) ResolveAlert(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := requireUser(ctx, w, h.userService, user.RoleCoach)
	if !ok {
		return
	}

	alertID, err := uuid.Parse(mux.Vars(r)["alertId"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid alert ID")
		return
	}

	if err := h.alertService.Resolve(ctx, alertID); err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			respondWithError(w, http.StatusNotFound, "Alert not found")
			return
		}
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Alert resolved"})
}

// GET /api/v1/coach/athletes - Roster with latest readings
func (h *CoachHandler) GetAthletes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	coach, ok := requireUser(ctx, w, h.userService, user.RoleCoach)
	if !ok {
		return
	}

	athletes, err := h.rosterService.ListAthletes(ctx, coach.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, athletes)
}

// GET /api/v1/coach/dashboard - Aggregates over the roster's latest readings
func (h *CoachHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	coach, ok := requireUser(ctx, w, h.userService, user.RoleCoach)
	if !ok {
		return
	}

	stats, err := h.rosterService.Dashboard(ctx, coach.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
