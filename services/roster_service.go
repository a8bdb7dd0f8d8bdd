package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartHydrationAPI/internal/hydration"
	"smartHydrationAPI/internal/types/user"
)

var ErrCoachNotFound = errors.New("coach not found")

// RosterService owns the coach/athlete assignment index. coach_assignments is
// keyed by athlete UUID with the athlete as primary key, so an athlete has at
// most one coach and reassignment overwrites instead of leaving stale rows.
type RosterService struct {
	db *pgxpool.Pool
}

func NewRosterService(db *pgxpool.Pool) *RosterService {
	return &RosterService{db: db}
}

// JoinCoach links the athlete to the coach with the given display name.
func (s *RosterService) JoinCoach(ctx context.Context, athleteID uuid.UUID, coachName string) error {
	var coachID uuid.UUID
	err := s.db.QueryRow(
		ctx,
		"SELECT id FROM users WHERE display_name = $1 AND role = $2",
		strings.TrimSpace(coachName),
		user.RoleCoach,
	).Scan(&coachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCoachNotFound
		}
		return fmt.Errorf("failed to resolve coach: %w", err)
	}

	query := `
	INSERT INTO coach_assignments (athlete_id, coach_id, assigned_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (athlete_id)
	DO UPDATE SET coach_id = EXCLUDED.coach_id, assigned_at = EXCLUDED.assigned_at
	`

	_, err = s.db.Exec(ctx, query, athleteID, coachID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to assign coach: %w", err)
	}

	return nil
}

// Roster returns the athlete IDs currently assigned to the coach. An empty
// roster is an empty slice, not an error.
func (s *RosterService) Roster(ctx context.Context, coachID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx, "SELECT athlete_id FROM coach_assignments WHERE coach_id = $1", coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	defer rows.Close()

	roster := []uuid.UUID{}
	for rows.Next() {
		var athleteID uuid.UUID
		if err := rows.Scan(&athleteID); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		roster = append(roster, athleteID)
	}

	return roster, rows.Err()
}

// ListAthletes returns the coach's roster with display names and each
// athlete's most recent classified reading.
func (s *RosterService) ListAthletes(ctx context.Context, coachID uuid.UUID) ([]*user.RosterAthlete, error) {
	query := `
	SELECT u.id, u.display_name, u.sport,
	       COALESCE(r.score, 0), COALESCE(r.label, '')
	FROM coach_assignments ca
	JOIN users u ON u.id = ca.athlete_id
	LEFT JOIN LATERAL (
		SELECT score, label
		FROM hydration_readings
		WHERE athlete_id = ca.athlete_id
		ORDER BY created_at DESC
		LIMIT 1
	) r ON true
	WHERE ca.coach_id = $1
	ORDER BY u.display_name
	`

	rows, err := s.db.Query(ctx, query, coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch athletes: %w", err)
	}
	defer rows.Close()

	athletes := []*user.RosterAthlete{}
	for rows.Next() {
		a := &user.RosterAthlete{}
		err := rows.Scan(&a.ID, &a.Name, &a.Sport, &a.HydrationLevel, &a.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan athlete: %w", err)
		}
		athletes = append(athletes, a)
	}

	return athletes, rows.Err()
}

// Dashboard aggregates the roster's latest readings.
func (s *RosterService) Dashboard(ctx context.Context, coachID uuid.UUID) (*user.DashboardStats, error) {
	query := `
	SELECT COUNT(*), COALESCE(AVG(r.score), 0),
	       COUNT(*) FILTER (WHERE r.label = $2)
	FROM coach_assignments ca
	LEFT JOIN LATERAL (
		SELECT score, label
		FROM hydration_readings
		WHERE athlete_id = ca.athlete_id
		ORDER BY created_at DESC
		LIMIT 1
	) r ON true
	WHERE ca.coach_id = $1
	`

	stats := &user.DashboardStats{}
	err := s.db.QueryRow(ctx, query, coachID, string(hydration.LabelDehydrated)).Scan(
		&stats.TotalAthletes,
		&stats.AvgHydration,
		&stats.CriticalHydration,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dashboard: %w", err)
	}

	return stats, nil
}
