package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"vehicle-proximity-service/internal/domain"
	"vehicle-proximity-service/internal/platform/obs"
	"vehicle-proximity-service/internal/ports"
)

type LocateRequest struct {
	// Path or URI of the binary position stream.
	Location string
	Load     LoadOptions
	Search   SearchOptions
}

// LocateReport is the outcome of one locate run.
type LocateReport struct {
	Records        int
	Results        []domain.NearestResult
	LoadDuration   time.Duration
	SearchDuration time.Duration
}

// Locate runs the whole pipeline once: read the reference points, load the
// vehicle stream, then search. Reference points are fixed before loading
// begins and the index is sealed before any search worker starts.
func Locate(
	ctx context.Context,
	req LocateRequest,
	source ports.VehicleSource,
	points ports.ReferencePointRepository,
) (*LocateReport, error) {
	if source == nil || points == nil {
		return nil, errors.New("locate: source and points must be non-nil")
	}

	refs, err := points.ListReferencePoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("locate: list reference points: %w", err)
	}
	if err := domain.ValidateReferencePoints(refs); err != nil {
		return nil, fmt.Errorf("locate: %w", err)
	}

	rc, err := source.Open(ctx, req.Location)
	if err != nil {
		return nil, fmt.Errorf("locate: %w", err)
	}
	defer rc.Close()

	loadStart := time.Now()
	idx, err := LoadVehicles(ctx, rc, req.Load)
	if err != nil {
		return nil, fmt.Errorf("locate: %w", err)
	}
	loadDur := time.Since(loadStart)
	log.Printf("req_id=%s file read & loaded %d records: %d ms", obs.RequestID(ctx), idx.Len(), loadDur.Milliseconds())

	searchStart := time.Now()
	results, err := FindNearest(ctx, idx, refs, req.Search)
	searchDur := time.Since(searchStart)
	report := &LocateReport{
		Records:        idx.Len(),
		Results:        results,
		LoadDuration:   loadDur,
		SearchDuration: searchDur,
	}
	if err != nil {
		return report, fmt.Errorf("locate: %w", err)
	}
	log.Printf("req_id=%s nearest neighbours found: %d ms", obs.RequestID(ctx), searchDur.Milliseconds())

	return report, nil
}
