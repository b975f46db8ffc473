package repositories

import (
	"context"
	"slices"
	"vehicle-proximity-service/internal/domain"
)

// DefaultReferencePoints is the built-in reference set used when no other
// source is configured.
func DefaultReferencePoints() []domain.ReferencePoint {
	return []domain.ReferencePoint{
		{Key: 1, Lat: 34.544909, Lon: -102.100843},
		{Key: 2, Lat: 32.345544, Lon: -99.123124},
		{Key: 3, Lat: 33.234235, Lon: -100.214124},
		{Key: 4, Lat: 35.195739, Lon: -95.348899},
		{Key: 5, Lat: 31.895839, Lon: -97.789573},
		{Key: 6, Lat: 32.895839, Lon: -101.789573},
		{Key: 7, Lat: 34.115839, Lon: -100.225732},
		{Key: 8, Lat: 32.335839, Lon: -99.992232},
		{Key: 9, Lat: 33.535339, Lon: -94.792232},
		{Key: 10, Lat: 32.234235, Lon: -97.789573},
	}
}

// StaticPointRepository serves a fixed, in-memory list of reference points.
type StaticPointRepository struct {
	points []domain.ReferencePoint
}

func NewStaticPointRepository(points []domain.ReferencePoint) *StaticPointRepository {
	return &StaticPointRepository{points: slices.Clone(points)}
}

func (r *StaticPointRepository) ListReferencePoints(ctx context.Context) ([]domain.ReferencePoint, error) {
	return slices.Clone(r.points), nil
}
