package repositories

import (
	"context"
	"fmt"
	"os"
	"slices"
	"vehicle-proximity-service/internal/domain"

	gojson "github.com/goccy/go-json"
)

type PointSeed struct {
	Key       int     `json:"key"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReadPointsJSON parses and validates a reference point file.
// Points are returned ordered by key.
func ReadPointsJSON(jsonPath string) ([]domain.ReferencePoint, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read points: read %q: %w", jsonPath, err)
	}

	var data []PointSeed
	if err := gojson.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("read points: parse json %q: %w", jsonPath, err)
	}

	points := make([]domain.ReferencePoint, 0, len(data))
	for _, item := range data {
		points = append(points, domain.ReferencePoint{Key: item.Key, Lat: item.Latitude, Lon: item.Longitude})
	}

	if err := domain.ValidateReferencePoints(points); err != nil {
		return nil, fmt.Errorf("read points %q: %w", jsonPath, err)
	}

	slices.SortFunc(points, func(a, b domain.ReferencePoint) int { return a.Key - b.Key })
	return points, nil
}

// JSONPointRepository serves reference points from a JSON file.
// The file is read on every call.
type JSONPointRepository struct {
	Path string
}

func NewJSONPointRepository(path string) *JSONPointRepository {
	return &JSONPointRepository{Path: path}
}

func (r *JSONPointRepository) ListReferencePoints(ctx context.Context) ([]domain.ReferencePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadPointsJSON(r.Path)
}
