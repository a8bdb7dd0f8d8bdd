package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"smartHydrationAPI/internal/hydration"
	"smartHydrationAPI/internal/types/reading"
	"smartHydrationAPI/internal/types/user"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL (falling
// back to DATABASE_URL) and skips the test when neither is set, so the pure
// test suite stays runnable without infrastructure.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	_ = godotenv.Load("../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	t.Cleanup(func() {
		_, err := pool.Exec(ctx, "DELETE FROM users WHERE clerk_id LIKE 'test_%'")
		if err != nil {
			t.Logf("Warning: failed to cleanup test data: %v", err)
		}
		pool.Close()
	})

	return pool
}

func createTestUser(t *testing.T, db *pgxpool.Pool, role user.Role, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(
		context.Background(),
		`INSERT INTO users (id, clerk_id, role, display_name, email, sport)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, "test_"+id.String(), role, name, "test_"+id.String()+"@example.com", "running",
	)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// insertReading writes a reading directly with an explicit timestamp so tests
// can control per-athlete ordering.
func insertReading(t *testing.T, db *pgxpool.Pool, athleteID uuid.UUID, label hydration.Label, score float64, at time.Time) {
	t.Helper()

	_, err := db.Exec(
		context.Background(),
		`INSERT INTO hydration_readings (
			id, athlete_id, score, label,
			heart_rate, body_temperature, skin_conductance, ecg_sigmoid, created_at
		) VALUES ($1, $2, $3, $4, 80, 36.5, 40, 64, $5)`,
		uuid.New(), athleteID, score, string(label), at,
	)
	if err != nil {
		t.Fatalf("Failed to insert reading: %v", err)
	}
}

var testSample = reading.SensorSample{
	HeartRate:       80,
	BodyTemperature: 36.5,
	SkinConductance: 40,
	ECGSigmoid:      64,
}
