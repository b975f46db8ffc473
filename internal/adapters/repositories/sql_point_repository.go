package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"vehicle-proximity-service/internal/domain"
	"vehicle-proximity-service/internal/platform/obs"
)

// SQL-backed implementation of the ReferencePointRepository port.
// The query is portable across SQLite and Postgres.
type SQLPointRepository struct {
	DB *sql.DB
}

func NewSQLPointRepository(db *sql.DB) *SQLPointRepository {
	return &SQLPointRepository{DB: db}
}

// Return all reference points stored in the database, ordered by key.
func (s *SQLPointRepository) ListReferencePoints(ctx context.Context) (_ []domain.ReferencePoint, err error) {
	defer obs.Time(ctx, "points.ListReferencePoints")(&err)

	if s.DB == nil {
		return nil, errors.New("sql point repository: DB is nil")
	}

	query := `
	SELECT
		point_key,
		lat,
		lon
	FROM reference_points
	ORDER BY point_key;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reference points: query reference_points table: %w", err)
	}
	defer rows.Close()

	points := make([]domain.ReferencePoint, 0, 16)
	for rows.Next() {
		var p domain.ReferencePoint
		if err := rows.Scan(&p.Key, &p.Lat, &p.Lon); err != nil {
			return nil, fmt.Errorf("list reference points: scan row: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reference points: row iteration: %w", err)
	}

	return points, nil
}
