package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartHydrationAPI/internal/hydration"
	"smartHydrationAPI/internal/types/reading"
)

var ErrNoReadings = errors.New("no hydration data found")

type ReadingService struct {
	db *pgxpool.Pool
}

func NewReadingService(db *pgxpool.Pool) *ReadingService {
	return &ReadingService{db: db}
}

// SaveReading appends one classified sensor sample. Readings are immutable.
func (s *ReadingService) SaveReading(ctx context.Context, athleteID uuid.UUID, sample reading.SensorSample, score float64, label hydration.Label) (*reading.HydrationReading, error) {
	r := &reading.HydrationReading{
		ID:        uuid.New(),
		AthleteID: athleteID,
		Score:     score,
		Label:     string(label),
		Timestamp: time.Now().UTC(),
	}

	query := `
	INSERT INTO hydration_readings (
		id, athlete_id, score, label,
		heart_rate, body_temperature, skin_conductance, ecg_sigmoid, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.Exec(
		ctx,
		query,
		r.ID,
		r.AthleteID,
		r.Score,
		r.Label,
		sample.HeartRate,
		sample.BodyTemperature,
		sample.SkinConductance,
		sample.ECGSigmoid,
		r.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save reading: %w", err)
	}

	return r, nil
}

// PreviousLabel returns the label of the athlete's second-most-recent reading.
// The most recent row is the reading just written for the current
// classification, so it is skipped. A nil result means there is no previous
// reading, which is a normal condition rather than an error.
func (s *ReadingService) PreviousLabel(ctx context.Context, athleteID uuid.UUID) (*hydration.Label, error) {
	query := `
	SELECT label
	FROM hydration_readings
	WHERE athlete_id = $1
	ORDER BY created_at DESC
	LIMIT 1 OFFSET 1
	`

	var label hydration.Label
	err := s.db.QueryRow(ctx, query, athleteID).Scan(&label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch previous reading: %w", err)
	}

	return &label, nil
}

// LatestLabel returns the label of the athlete's most recent reading, nil when
// none exist. Used by the manual alert path, where no new reading is written
// and the latest row really is the previous state.
func (s *ReadingService) LatestLabel(ctx context.Context, athleteID uuid.UUID) (*hydration.Label, error) {
	query := `
	SELECT label
	FROM hydration_readings
	WHERE athlete_id = $1
	ORDER BY created_at DESC
	LIMIT 1
	`

	var label hydration.Label
	err := s.db.QueryRow(ctx, query, athleteID).Scan(&label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch latest reading: %w", err)
	}

	return &label, nil
}

// LatestStatus returns the most recent reading together with its raw vitals.
func (s *ReadingService) LatestStatus(ctx context.Context, athleteID uuid.UUID) (*reading.StatusResponse, error) {
	query := `
	SELECT label, score, heart_rate, body_temperature, skin_conductance, ecg_sigmoid, created_at
	FROM hydration_readings
	WHERE athlete_id = $1
	ORDER BY created_at DESC
	LIMIT 1
	`

	resp := &reading.StatusResponse{}
	err := s.db.QueryRow(ctx, query, athleteID).Scan(
		&resp.HydrationStatus,
		&resp.HydrationLevel,
		&resp.HeartRate,
		&resp.BodyTemperature,
		&resp.SkinConductance,
		&resp.ECGSigmoid,
		&resp.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoReadings
		}
		return nil, fmt.Errorf("failed to fetch latest status: %w", err)
	}

	resp.Timestamp = resp.Timestamp.UTC()
	return resp, nil
}

// RecordSensorWarning writes the diagnostic row for a rejected sample.
func (s *ReadingService) RecordSensorWarning(ctx context.Context, athleteID uuid.UUID, missingField string, sample reading.SensorSample) error {
	query := `
	INSERT INTO sensor_warnings (
		id, athlete_id, missing_field,
		heart_rate, body_temperature, skin_conductance, ecg_sigmoid, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.Exec(
		ctx,
		query,
		uuid.New(),
		athleteID,
		missingField,
		sample.HeartRate,
		sample.BodyTemperature,
		sample.SkinConductance,
		sample.ECGSigmoid,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record sensor warning: %w", err)
	}

	return nil
}

// ListSensorWarnings returns the athlete's diagnostics, newest first,
// optionally filtered to one sensor field.
func (s *ReadingService) ListSensorWarnings(ctx context.Context, athleteID uuid.UUID, sensor string) ([]*reading.SensorWarning, error) {
	query := `
	SELECT id, athlete_id, missing_field,
	       heart_rate, body_temperature, skin_conductance, ecg_sigmoid, created_at
	FROM sensor_warnings
	WHERE athlete_id = $1 AND ($2 = '' OR missing_field = $2)
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, athleteID, sensor)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sensor warnings: %w", err)
	}
	defer rows.Close()

	warnings := []*reading.SensorWarning{}
	for rows.Next() {
		w := &reading.SensorWarning{}
		err := rows.Scan(
			&w.ID,
			&w.AthleteID,
			&w.MissingField,
			&w.ReceivedData.HeartRate,
			&w.ReceivedData.BodyTemperature,
			&w.ReceivedData.SkinConductance,
			&w.ReceivedData.ECGSigmoid,
			&w.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sensor warning: %w", err)
		}
		w.Timestamp = w.Timestamp.UTC()
		warnings = append(warnings, w)
	}

	return warnings, rows.Err()
}
