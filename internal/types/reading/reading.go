package reading

import (
	"time"

	"github.com/google/uuid"
)

// HydrationReading is one classified sensor sample. Rows are immutable and
// ordered by Timestamp per athlete.
type HydrationReading struct {
	ID        uuid.UUID `json:"id"`
	AthleteID uuid.UUID `json:"athlete_id"`
	Score     float64   `json:"score"`
	Label     string    `json:"label"`
	Timestamp time.Time `json:"timestamp"`
}

// SensorSample is the raw ingestion payload from the wearable.
type SensorSample struct {
	HeartRate       float64 `json:"heart_rate"`
	BodyTemperature float64 `json:"body_temperature"`
	SkinConductance float64 `json:"skin_conductance"`
	ECGSigmoid      float64 `json:"ecg_sigmoid"`
}

// SensorWarning is the diagnostic record written when a sample is rejected
// before classification.
type SensorWarning struct {
	ID           uuid.UUID    `json:"id"`
	AthleteID    uuid.UUID    `json:"athlete_id"`
	MissingField string       `json:"missing_field"`
	ReceivedData SensorSample `json:"received_data"`
	Timestamp    time.Time    `json:"timestamp"`
}

type StatusResponse struct {
	HydrationStatus string    `json:"hydration_status"`
	HydrationLevel  float64   `json:"hydration_level"`
	HeartRate       float64   `json:"heart_rate"`
	BodyTemperature float64   `json:"body_temperature"`
	SkinConductance float64   `json:"skin_conductance"`
	ECGSigmoid      float64   `json:"ecg_sigmoid"`
	Timestamp       time.Time `json:"timestamp"`
}

type IngestResponse struct {
	Status         string       `json:"status"`
	HydrationState string       `json:"hydration_state_prediction"`
	CombinedMetric float64      `json:"processed_combined_metrics"`
	RawSensorData  SensorSample `json:"raw_sensor_data"`
}
