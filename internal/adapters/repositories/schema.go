package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQL flavor of the reference point store.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// Initialize the reference point schema. The DDL is valid for both dialects.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPointsQuery := `
	CREATE TABLE IF NOT EXISTS reference_points (
		point_key INTEGER PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	statements := []string{
		createPointsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the reference_points table from a JSON file, replacing rows with
// the same key.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) error {
	points, err := ReadPointsJSON(jsonPath)
	if err != nil {
		return fmt.Errorf("seed reference points: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed reference points: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO reference_points (
		point_key,
		lat,
		lon
	)
	VALUES (?, ?, ?);
	`
	if dialect == Postgres {
		query = `
		INSERT INTO reference_points (point_key, lat, lon)
		VALUES ($1, $2, $3)
		ON CONFLICT (point_key) DO UPDATE
		SET lat = EXCLUDED.lat,
			lon = EXCLUDED.lon;
		`
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed reference points: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, p.Key, p.Lat, p.Lon); err != nil {
			return fmt.Errorf("seed reference points: insert point_key=%d: %w", p.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed reference points: commit tx: %w", err)
	}

	return nil
}
