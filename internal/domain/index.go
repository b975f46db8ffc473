package domain

import "fmt"

// VehicleIndex maps vehicle ids to records and remembers insertion order,
// which is the scan order used by the nearest-neighbor engine.
//
// The loader is the only writer. Once Seal is called the index is read-only
// and may be shared by any number of goroutines without locking.
type VehicleIndex struct {
	records []VehicleRecord
	byID    map[int32]int
	sealed  bool
}

// NewVehicleIndex returns an empty index with room for sizeHint records.
func NewVehicleIndex(sizeHint int) *VehicleIndex {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &VehicleIndex{
		records: make([]VehicleRecord, 0, sizeHint),
		byID:    make(map[int32]int, sizeHint),
	}
}

// InsertBatch appends a batch of records in order.
// A record whose id is already present fails the whole load; the index must
// be discarded after any error.
func (x *VehicleIndex) InsertBatch(batch []VehicleRecord) error {
	if x.sealed {
		return fmt.Errorf("insert batch: %w", ErrIndexSealed)
	}

	for _, rec := range batch {
		if first, ok := x.byID[rec.ID]; ok {
			return &DuplicateIDError{ID: rec.ID, First: first, Second: len(x.records)}
		}
		x.byID[rec.ID] = len(x.records)
		x.records = append(x.records, rec)
	}
	return nil
}

// Seal marks the end of loading.
func (x *VehicleIndex) Seal() { x.sealed = true }

func (x *VehicleIndex) Sealed() bool { return x.sealed }

func (x *VehicleIndex) Len() int { return len(x.records) }

// Get looks up a record by vehicle id.
func (x *VehicleIndex) Get(id int32) (VehicleRecord, bool) {
	i, ok := x.byID[id]
	if !ok {
		return VehicleRecord{}, false
	}
	return x.records[i], true
}

// Records returns the records in scan order.
// The slice shares storage with the index and must not be modified.
func (x *VehicleIndex) Records() []VehicleRecord { return x.records }
