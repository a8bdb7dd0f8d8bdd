package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartHydrationAPI/internal/hydration"
	"smartHydrationAPI/internal/types/alert"
)

var ErrAlertNotFound = errors.New("alert not found")

type AlertService struct {
	db       *pgxpool.Pool
	readings *ReadingService
}

func NewAlertService(db *pgxpool.Pool, readings *ReadingService) *AlertService {
	return &AlertService{db: db, readings: readings}
}

const alertColumns = `
	id, athlete_id, alert_type, title, description, hydration_level,
	hydration_status, status_change, coach_message, source, status, created_at
`

// Insert appends one fully composed alert. The unique guard on
// (athlete_id, source, created_at) makes concurrent duplicate ingestions for
// the same sample write at most one row.
func (s *AlertService) Insert(ctx context.Context, a *alert.Alert) error {
	query := `
	INSERT INTO alerts (` + alertColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (athlete_id, source, created_at) DO NOTHING
	`

	_, err := s.db.Exec(
		ctx,
		query,
		a.ID,
		a.AthleteID,
		a.Type,
		a.Title,
		a.Description,
		a.HydrationLevel,
		a.HydrationStatus,
		a.StatusChange,
		a.CoachMessage,
		a.Source,
		a.Status,
		a.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}

	return nil
}

// CreateAutoAlert runs the machine-generated alert path after a reading has
// been saved: well-hydrated states never produce machine alerts, otherwise the
// change flag is computed against the second-most-recent reading and the whole
// document is composed in memory before the single insert. Returns nil when
// suppressed.
func (s *AlertService) CreateAutoAlert(ctx context.Context, athleteID uuid.UUID, label hydration.Label, score float64) (*alert.Alert, error) {
	if hydration.Suppressed(label, alert.SourceMLModel) {
		alertsSuppressed.Inc()
		return nil, nil
	}

	previous, err := s.readings.PreviousLabel(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	a := hydration.ComposeAlert(athleteID, label, score, hydration.StatusChanged(label, previous), alert.SourceMLModel)
	if err := s.Insert(ctx, a); err != nil {
		return nil, err
	}

	alertsGenerated.WithLabelValues(string(a.Type), string(a.Source)).Inc()
	return a, nil
}

// CreateManualAlert handles an athlete's self-reported hydration level.
// Manual alerts are never suppressed and always insert.
func (s *AlertService) CreateManualAlert(ctx context.Context, athleteID uuid.UUID, level float64) (*alert.Alert, error) {
	label := hydration.Classify(level)

	previous, err := s.readings.LatestLabel(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	a := hydration.ComposeAlert(athleteID, label, level, hydration.StatusChanged(label, previous), alert.SourceAthlete)
	if err := s.Insert(ctx, a); err != nil {
		return nil, err
	}

	alertsGenerated.WithLabelValues(string(a.Type), string(a.Source)).Inc()
	return a, nil
}

// ListForAthlete returns the athlete's own alerts, newest first.
func (s *AlertService) ListForAthlete(ctx context.Context, athleteID uuid.UUID) ([]*alert.Alert, error) {
	query := `
	SELECT ` + alertColumns + `
	FROM alerts
	WHERE athlete_id = $1
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch alerts: %w", err)
	}
	defer rows.Close()

	alerts := []*alert.Alert{}
	for rows.Next() {
		a := &alert.Alert{}
		if err := scanAlert(rows, a); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

// ListForCoach returns status-change alerts for the coach's current roster,
// newest first, each annotated with the athlete's display name. Scoping goes
// through coach_assignments, so a reassigned athlete drops out immediately.
func (s *AlertService) ListForCoach(ctx context.Context, coachID uuid.UUID) ([]*alert.CoachAlert, error) {
	query := `
	SELECT a.id, a.athlete_id, a.alert_type, a.title, a.description, a.hydration_level,
	       a.hydration_status, a.status_change, a.coach_message, a.source, a.status, a.created_at,
	       u.display_name
	FROM alerts a
	JOIN coach_assignments ca ON ca.athlete_id = a.athlete_id
	JOIN users u ON u.id = a.athlete_id
	WHERE ca.coach_id = $1 AND a.status_change
	ORDER BY a.created_at DESC
	`

	return s.queryCoachAlerts(ctx, query, coachID)
}

// ListForAthleteByCoach returns every alert for one athlete, still restricted
// to the coach's roster and without the status-change filter.
func (s *AlertService) ListForAthleteByCoach(ctx context.Context, coachID, athleteID uuid.UUID) ([]*alert.CoachAlert, error) {
	query := `
	SELECT a.id, a.athlete_id, a.alert_type, a.title, a.description, a.hydration_level,
	       a.hydration_status, a.status_change, a.coach_message, a.source, a.status, a.created_at,
	       u.display_name
	FROM alerts a
	JOIN coach_assignments ca ON ca.athlete_id = a.athlete_id
	JOIN users u ON u.id = a.athlete_id
	WHERE ca.coach_id = $1 AND a.athlete_id = $2
	ORDER BY a.created_at DESC
	`

	return s.queryCoachAlerts(ctx, query, coachID, athleteID)
}

// Resolve transitions an alert to resolved. The transition is terminal and
// idempotent: resolving an already-resolved alert succeeds without change,
// only an unknown id is an error.
func (s *AlertService) Resolve(ctx context.Context, alertID uuid.UUID) error {
	result, err := s.db.Exec(ctx, "UPDATE alerts SET status = $1 WHERE id = $2", alert.StatusResolved, alertID)
	if err != nil {
		return fmt.Errorf("failed to resolve alert: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func (s *AlertService) queryCoachAlerts(ctx context.Context, query string, args ...any) ([]*alert.CoachAlert, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coach alerts: %w", err)
	}
	defer rows.Close()

	alerts := []*alert.CoachAlert{}
	for rows.Next() {
		ca := &alert.CoachAlert{}
		err := rows.Scan(
			&ca.ID,
			&ca.AthleteID,
			&ca.Type,
			&ca.Title,
			&ca.Description,
			&ca.HydrationLevel,
			&ca.HydrationStatus,
			&ca.StatusChange,
			&ca.CoachMessage,
			&ca.Source,
			&ca.Status,
			&ca.Timestamp,
			&ca.AthleteName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coach alert: %w", err)
		}
		ca.Timestamp = ca.Timestamp.UTC()
		alerts = append(alerts, ca)
	}

	return alerts, rows.Err()
}

type alertRow interface {
	Scan(dest ...any) error
}

func scanAlert(row alertRow, a *alert.Alert) error {
	err := row.Scan(
		&a.ID,
		&a.AthleteID,
		&a.Type,
		&a.Title,
		&a.Description,
		&a.HydrationLevel,
		&a.HydrationStatus,
		&a.StatusChange,
		&a.CoachMessage,
		&a.Source,
		&a.Status,
		&a.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to scan alert: %w", err)
	}
	a.Timestamp = a.Timestamp.UTC()
	return nil
}
