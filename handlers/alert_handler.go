package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"smartHydrationAPI/internal/types/alert"
	"smartHydrationAPI/internal/types/user"
	"smartHydrationAPI/services"
)

type AlertHandler struct {
	userService  *services.UserService
	alertService *services.AlertService
}

func NewAlertHandler(userService *services.UserService, alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{
		userService:  userService,
		alertService: alertService,
	}
}

// GET /api/v1/notifications/alerts - Athlete's own alerts, newest first
func (h *AlertHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	athlete, ok := requireUser(ctx, w, h.userService, user.RoleAthlete)
	if !ok {
		return
	}

	alerts, err := h.alertService.ListForAthlete(ctx, athlete.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, alerts)
}

// POST /api/v1/notifications/alerts/hydration - Manual hydration report
func (h *AlertHandler) CreateHydrationAlert(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	athlete, ok := requireUser(ctx, w, h.userService, user.RoleAthlete)
	if !ok {
		return
	}

	var req alert.ManualAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	a, err := h.alertService.CreateManualAlert(ctx, athlete.ID, req.HydrationLevel)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, alert.ManualAlertResponse{Status: "inserted", Alert: a})
}
