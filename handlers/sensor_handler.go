package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"smartHydrationAPI/internal/hydration"
	"smartHydrationAPI/internal/types/reading"
	"smartHydrationAPI/internal/types/user"
	"smartHydrationAPI/services"
)

type SensorHandler struct {
	userService    *services.UserService
	readingService *services.ReadingService
	alertService   *services.AlertService
}

func NewSensorHandler(userService *services.UserService, readingService *services.ReadingService, alertService *services.AlertService) *SensorHandler {
	return &SensorHandler{
		userService:    userService,
		readingService: readingService,
		alertService:   alertService,
	}
}

// sensorFields is the validation order for incoming samples. Checked before
// any alert logic runs.
var sensorFields = []struct {
	name  string
	value func(reading.SensorSample) float64
}{
	{"heart_rate", func(s reading.SensorSample) float64 { return s.HeartRate }},
	{"body_temperature", func(s reading.SensorSample) float64 { return s.BodyTemperature }},
	{"skin_conductance", func(s reading.SensorSample) float64 { return s.SkinConductance }},
	{"ecg_sigmoid", func(s reading.SensorSample) float64 { return s.ECGSigmoid }},
}

// POST /api/v1/data/receive - Ingest one sensor sample
func (h *SensorHandler) ReceiveData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	athlete, ok := requireUser(ctx, w, h.userService, user.RoleAthlete)
	if !ok {
		return
	}

	var sample reading.SensorSample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	for _, field := range sensorFields {
		if field.value(sample) <= 0 {
			if err := h.readingService.RecordSensorWarning(ctx, athlete.ID, field.name, sample); err != nil {
				respondWithServiceError(w, err)
				return
			}
			respondWithJSON(w, http.StatusBadRequest, map[string]any{
				"status":   "error",
				"message":  "Invalid or missing value for: " + field.name,
				"received": sample,
			})
			return
		}
	}

	combined := hydration.CombinedMetric(sample.HeartRate, sample.BodyTemperature, sample.SkinConductance, sample.ECGSigmoid)
	label := hydration.Classify(combined)

	if _, err := h.readingService.SaveReading(ctx, athlete.ID, sample, combined, label); err != nil {
		respondWithServiceError(w, err)
		return
	}

	if _, err := h.alertService.CreateAutoAlert(ctx, athlete.ID, label, combined); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reading.IngestResponse{
		Status:         "success",
		HydrationState: string(label),
		CombinedMetric: combined,
		RawSensorData:  sample,
	})
}

// GET /api/v1/data/hydration/status - Latest reading with vitals
func (h *SensorHandler) GetHydrationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	athlete, ok := requireUser(ctx, w, h.userService, user.RoleAthlete)
	if !ok {
		return
	}

	status, err := h.readingService.LatestStatus(ctx, athlete.ID)
	if err != nil {
		if errors.Is(err, services.ErrNoReadings) {
			respondWithError(w, http.StatusNotFound, "No hydration data found")
			return
		}
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, status)
}

// GET /api/v1/data/warnings/sensor - Sensor diagnostics, optionally ?sensor=
func (h *SensorHandler) GetSensorWarnings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	athlete, ok := requireUser(ctx, w, h.userService, user.RoleAthlete)
	if !ok {
		return
	}

	warnings, err := h.readingService.ListSensorWarnings(ctx, athlete.ID, r.URL.Query().Get("sensor"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, warnings)
}

// GET /api/v1/data/time - Server time for device clock sync
func (h *SensorHandler) GetServerTime(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]int64{"timestamp": time.Now().UTC().Unix()})
}

// GET /api/v1/data/ping
func (h *SensorHandler) Ping(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
