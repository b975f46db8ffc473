package services

import (
	"bytes"
	"testing"
	"vehicle-proximity-service/internal/adapters/positions"
	"vehicle-proximity-service/internal/domain"
)

func encodeRecords(t testing.TB, recs []domain.VehicleRecord) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := positions.NewEncoder(&buf)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode record %d: %v", r.ID, err)
		}
	}
	return buf.Bytes()
}

func sequentialRecords(n int) []domain.VehicleRecord {
	recs := make([]domain.VehicleRecord, n)
	for i := range recs {
		recs[i] = domain.VehicleRecord{
			ID:           int32(i + 1),
			Registration: "REG" + string(rune('A'+i%26)),
			Lat:          30 + float32(i%500)/100,
			Lon:          -100 + float32(i%700)/100,
			RecordedSec:  uint64(1_600_000_000 + i),
		}
	}
	return recs
}

func buildIndex(t testing.TB, recs []domain.VehicleRecord) *domain.VehicleIndex {
	t.Helper()
	idx := domain.NewVehicleIndex(len(recs))
	if err := idx.InsertBatch(recs); err != nil {
		t.Fatalf("build index: %v", err)
	}
	idx.Seal()
	return idx
}
