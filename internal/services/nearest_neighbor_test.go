package services

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"vehicle-proximity-service/internal/domain"
	"vehicle-proximity-service/internal/geo"
)

func TestFindNearestScenario(t *testing.T) {
	idx := buildIndex(t, []domain.VehicleRecord{
		{ID: 1, Registration: "ONE", Lat: 34.5, Lon: -102.1, RecordedSec: 1_600_000_000},
		{ID: 2, Registration: "TWO", Lat: 32.3, Lon: -99.1, RecordedSec: 1_600_000_100},
	})
	points := []domain.ReferencePoint{{Key: 1, Lat: 34.544909, Lon: -102.100843}}

	results, err := FindNearest(context.Background(), idx, points, SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	if r.Err != nil {
		t.Fatalf("unexpected result error: %v", r.Err)
	}
	if r.VehicleID != 1 || r.Registration != "ONE" {
		t.Fatalf("winner = %d %q, want 1 ONE", r.VehicleID, r.Registration)
	}
	// ~0.045 degrees of latitude separate the point from record 1
	if math.Abs(r.DistanceKm-4.99) > 0.011 {
		t.Fatalf("distance = %v, want ~4.99", r.DistanceKm)
	}
	if !r.RecordedAt.Equal(domain.VehicleRecord{RecordedSec: 1_600_000_000}.RecordedAt()) {
		t.Fatalf("recordedAt = %v", r.RecordedAt)
	}
}

func TestFindNearestCoincidentPoint(t *testing.T) {
	idx := buildIndex(t, []domain.VehicleRecord{
		{ID: 1, Registration: "ONE", Lat: 34.5, Lon: -102.25},
		{ID: 2, Registration: "TWO", Lat: 32.25, Lon: -99.125},
	})
	points := []domain.ReferencePoint{{Key: 1, Lat: 32.25, Lon: -99.125}}

	results, err := FindNearest(context.Background(), idx, points, SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].VehicleID != 2 {
		t.Fatalf("winner = %d, want 2", results[0].VehicleID)
	}
	if results[0].DistanceKm != 0 {
		t.Fatalf("distance = %v, want 0", results[0].DistanceKm)
	}
}

func TestFindNearestEmptyIndex(t *testing.T) {
	idx := buildIndex(t, nil)
	points := []domain.ReferencePoint{{Key: 1, Lat: 1, Lon: 1}, {Key: 2, Lat: 2, Lon: 2}}

	results, err := FindNearest(context.Background(), idx, points, SearchOptions{Workers: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, r := range results {
		var nce *domain.NoCandidateError
		if !errors.As(r.Err, &nce) {
			t.Fatalf("results[%d].Err = %v, want *NoCandidateError", i, r.Err)
		}
		if nce.PointKey != points[i].Key {
			t.Fatalf("results[%d] point key = %d, want %d", i, nce.PointKey, points[i].Key)
		}
	}
}

func TestFindNearestTieFirstEncounteredWins(t *testing.T) {
	// ids 9 and 3 sit at the same spot; 5 and 4 are equidistant on either side
	idx := buildIndex(t, []domain.VehicleRecord{
		{ID: 7, Lat: 10, Lon: 10},
		{ID: 9, Lat: 1, Lon: 1},
		{ID: 3, Lat: 1, Lon: 1},
		{ID: 5, Lat: 20, Lon: 21},
		{ID: 4, Lat: 20, Lon: 19},
	})
	points := []domain.ReferencePoint{
		{Key: 1, Lat: 1, Lon: 1},
		{Key: 2, Lat: 20, Lon: 20},
	}

	for run := 0; run < 5; run++ {
		results, err := FindNearest(context.Background(), idx, points, SearchOptions{Workers: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results[0].VehicleID != 9 {
			t.Fatalf("run %d: point 1 winner = %d, want 9", run, results[0].VehicleID)
		}
		if results[1].VehicleID != 5 {
			t.Fatalf("run %d: point 2 winner = %d, want 5", run, results[1].VehicleID)
		}
	}
}

func randomRecords(n int, seed uint64) []domain.VehicleRecord {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	recs := make([]domain.VehicleRecord, n)
	for i := range recs {
		recs[i] = domain.VehicleRecord{
			ID:  int32(i),
			Lat: float32(31 + rng.Float64()*5),
			Lon: float32(-104 + rng.Float64()*10),
		}
	}
	return recs
}

func TestFindNearestMinimality(t *testing.T) {
	recs := randomRecords(5000, 42)
	idx := buildIndex(t, recs)

	points := []domain.ReferencePoint{
		{Key: 1, Lat: 34.544909, Lon: -102.100843},
		{Key: 2, Lat: 32.345544, Lon: -99.123124},
		{Key: 3, Lat: 33.234235, Lon: -100.214124},
		{Key: 4, Lat: 40, Lon: -80},
	}

	results, err := FindNearest(context.Background(), idx, points, SearchOptions{Workers: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, r := range results {
		p := points[i].Coordinates()
		winner, ok := idx.Get(r.VehicleID)
		if !ok {
			t.Fatalf("winner %d not in index", r.VehicleID)
		}
		best := geo.PlanarDistanceSquared(winner.Coordinates(), p)
		for _, v := range recs {
			if d2 := geo.PlanarDistanceSquared(v.Coordinates(), p); d2 < best {
				t.Fatalf("point %d: record %d (d2=%v) beats winner %d (d2=%v)", points[i].Key, v.ID, d2, r.VehicleID, best)
			}
		}
	}
}

func TestFindNearestPreservesInputOrder(t *testing.T) {
	idx := buildIndex(t, randomRecords(500, 7))

	points := make([]domain.ReferencePoint, 25)
	for i := range points {
		points[i] = domain.ReferencePoint{Key: 100 - i, Lat: 31 + float64(i)/5, Lon: -104 + float64(i)/3}
	}

	for _, workers := range []int{1, 2, 3, 8, 64} {
		results, err := FindNearest(context.Background(), idx, points, SearchOptions{Workers: workers})
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if len(results) != len(points) {
			t.Fatalf("workers=%d: expected %d results, got %d", workers, len(points), len(results))
		}
		for i := range points {
			if results[i].PointKey != points[i].Key {
				t.Fatalf("workers=%d: results[%d].PointKey = %d, want %d", workers, i, results[i].PointKey, points[i].Key)
			}
		}
	}
}

func TestFindNearestShardedMatchesSequential(t *testing.T) {
	recs := randomRecords(50_000, 99)
	// duplicate coordinates across shard boundaries to exercise tie handling
	recs[49_000].Lat, recs[49_000].Lon = recs[100].Lat, recs[100].Lon
	idx := buildIndex(t, recs)

	points := []domain.ReferencePoint{
		{Key: 1, Lat: float64(recs[100].Lat), Lon: float64(recs[100].Lon)},
		{Key: 2, Lat: 33, Lon: -99},
		{Key: 3, Lat: 35.9, Lon: -94.1},
	}

	seq, err := FindNearest(context.Background(), idx, points, SearchOptions{Workers: 1, ScanShards: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sharded, err := FindNearest(context.Background(), idx, points, SearchOptions{Workers: 2, ScanShards: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range seq {
		if seq[i] != sharded[i] {
			t.Fatalf("results[%d]: sequential %+v != sharded %+v", i, seq[i], sharded[i])
		}
	}
	if seq[0].VehicleID != 100 {
		t.Fatalf("tie across shards: winner = %d, want 100", seq[0].VehicleID)
	}
}

func TestFindNearestCanceled(t *testing.T) {
	idx := buildIndex(t, randomRecords(100, 1))
	points := []domain.ReferencePoint{{Key: 1, Lat: 33, Lon: -100}, {Key: 2, Lat: 34, Lon: -101}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := FindNearest(ctx, idx, points, SearchOptions{Workers: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no completed results, got %d", len(results))
	}
}

func TestFindNearestNoPoints(t *testing.T) {
	results, err := FindNearest(context.Background(), buildIndex(t, nil), nil, SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func BenchmarkFindNearest(b *testing.B) {
	idx := buildIndex(b, randomRecords(1_000_000, 3))
	points := make([]domain.ReferencePoint, 10)
	for i := range points {
		points[i] = domain.ReferencePoint{Key: i + 1, Lat: 32 + float64(i)/4, Lon: -102 + float64(i)/2}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := FindNearest(context.Background(), idx, points, SearchOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}
