package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"smartHydrationAPI/internal/types/user"
	"smartHydrationAPI/middleware"
	"smartHydrationAPI/services"
)

type UserHandler struct {
	userService   *services.UserService
	rosterService *services.RosterService
}

func NewUserHandler(userService *services.UserService, rosterService *services.RosterService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		rosterService: rosterService,
	}
}

// GET /api/v1/user - Get own profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	u, err := h.userService.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	respondWithJSON(w, http.StatusOK, u)
}

// POST /api/v1/user/coach/join - Link the athlete to a coach by display name
func (h *UserHandler) JoinCoach(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	athlete, ok := requireUser(ctx, w, h.userService, user.RoleAthlete)
	if !ok {
		return
	}

	var req user.JoinCoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CoachName == "" {
		respondWithError(w, http.StatusBadRequest, "coach_name is required")
		return
	}

	if err := h.rosterService.JoinCoach(ctx, athlete.ID, req.CoachName); err != nil {
		if errors.Is(err, services.ErrCoachNotFound) {
			respondWithError(w, http.StatusBadRequest, "Coach not found")
			return
		}
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Coach linked successfully"})
}

// requireUser resolves the authenticated identity and enforces the tenant
// role for the route. Writes the error response itself when it fails.
func requireUser(ctx context.Context, w http.ResponseWriter, userService *services.UserService, role user.Role) (*user.User, bool) {
	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return nil, false
	}

	u, err := userService.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return nil, false
		}
		respondWithServiceError(w, err)
		return nil, false
	}

	if u.Role != role {
		respondWithError(w, http.StatusForbidden, "Insufficient permissions for this route")
		return nil, false
	}

	return u, true
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError converts an unexpected storage failure into a
// generic 500. The underlying error is logged, never sent to the caller.
func respondWithServiceError(w http.ResponseWriter, err error) {
	log.Printf("storage error: %v", err)
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}
