package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"vehicle-proximity-service/internal/domain"
	"vehicle-proximity-service/internal/geo"
	"vehicle-proximity-service/internal/platform/obs"

	"golang.org/x/sync/errgroup"
)

// Shards smaller than this are not worth a goroutine.
const minShardLen = 4096

type SearchOptions struct {
	// Parallel workers over reference points. Defaults to runtime.NumCPU().
	Workers int
	// Parallel shards of the record scan within one point. Defaults to 1.
	ScanShards int
}

// FindNearest selects, for every reference point, the vehicle minimizing the
// squared planar distance, and reports its Haversine distance.
//
// The search is a deliberate brute-force scan: O(points × records). Points
// are split into contiguous ranges, one worker per range, all reading the
// same sealed index without locks. Ties go to the record seen first in scan
// order, so repeated runs pick the same winner.
//
// Results are returned in input order. A point with no candidate gets a
// result carrying *domain.NoCandidateError instead of failing the batch.
// ctx is checked before each point's scan; on cancellation the results
// completed so far are returned together with the error.
func FindNearest(
	ctx context.Context,
	idx *domain.VehicleIndex,
	points []domain.ReferencePoint,
	opts SearchOptions,
) (_ []domain.NearestResult, err error) {
	defer obs.Time(ctx, "nearest.Find")(&err)

	if idx == nil {
		return nil, errors.New("find nearest: index must be non-nil")
	}
	if len(points) == 0 {
		return []domain.NearestResult{}, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(points))
	shards := max(opts.ScanShards, 1)

	records := idx.Records()
	results := make([]domain.NearestResult, len(points))
	done := make([]bool, len(points))

	// Ceiling division: distribute points as evenly as possible across workers.
	chunkSize := (len(points) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(points); start += chunkSize {
		end := min(start+chunkSize, len(points))

		// Each worker writes only its own slots.
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = nearestResult(records, points[i], shards)
				done[i] = true
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		completed := make([]domain.NearestResult, 0, len(points))
		for i, ok := range done {
			if ok {
				completed = append(completed, results[i])
			}
		}
		return completed, fmt.Errorf("find nearest: %w", err)
	}

	return results, nil
}

func nearestResult(records []domain.VehicleRecord, p domain.ReferencePoint, shards int) domain.NearestResult {
	target := p.Coordinates()

	best := nearestIndex(records, target, shards)
	if best < 0 {
		return domain.NearestResult{PointKey: p.Key, Err: &domain.NoCandidateError{PointKey: p.Key}}
	}

	v := records[best]
	return domain.NearestResult{
		PointKey:     p.Key,
		VehicleID:    v.ID,
		Registration: v.Registration,
		DistanceKm:   geo.Round2(geo.HaversineKm(target, v.Coordinates())),
		RecordedAt:   v.RecordedAt(),
	}
}

// nearestIndex returns the scan position of the winning record, or -1.
func nearestIndex(records []domain.VehicleRecord, target domain.Coordinates, shards int) int {
	if shards <= 1 || len(records) < shards*minShardLen {
		best, _ := scanRange(records, target, 0, len(records))
		return best
	}

	type candidate struct {
		idx int
		d2  float64
	}
	cands := make([]candidate, shards)
	size := (len(records) + shards - 1) / shards

	var wg sync.WaitGroup
	for s := range shards {
		lo := s * size
		if lo >= len(records) {
			cands[s] = candidate{idx: -1}
			continue
		}
		hi := min(lo+size, len(records))

		wg.Add(1)
		go func() {
			defer wg.Done()
			i, d2 := scanRange(records, target, lo, hi)
			cands[s] = candidate{idx: i, d2: d2}
		}()
	}
	wg.Wait()

	// Shards are visited in scan order, so strict < keeps the earliest record on ties.
	best, bestD2 := -1, math.Inf(1)
	for _, c := range cands {
		if c.idx >= 0 && c.d2 < bestD2 {
			best, bestD2 = c.idx, c.d2
		}
	}
	return best
}

// scanRange is the hot loop. Records whose proxy distance is NaN or +Inf never win.
func scanRange(records []domain.VehicleRecord, target domain.Coordinates, lo, hi int) (int, float64) {
	best, bestD2 := -1, math.Inf(1)
	for i := lo; i < hi; i++ {
		d2 := geo.PlanarDistanceSquared(records[i].Coordinates(), target)
		if d2 < bestD2 {
			best, bestD2 = i, d2
		}
	}
	return best, bestD2
}
