package ports

import (
	"context"
	"vehicle-proximity-service/internal/domain"
)

// Port: a boundary for retrieving the reference points of a run.
type ReferencePointRepository interface {
	// Return all reference points ordered by key.
	ListReferencePoints(ctx context.Context) ([]domain.ReferencePoint, error)
}
