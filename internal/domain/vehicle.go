package domain

import "time"

// A single decoded vehicle position.
// Records are stored and returned by value, so a record cannot be changed
// after the loader has built it.
type VehicleRecord struct {
	ID           int32
	Registration string
	Lat          float32
	Lon          float32
	// Seconds since 1970-01-01T00:00:00Z, exactly as it appears on the wire.
	RecordedSec uint64
}

// RecordedAt returns the position timestamp in UTC.
func (v VehicleRecord) RecordedAt() time.Time {
	return time.Unix(int64(v.RecordedSec), 0).UTC()
}

func (v VehicleRecord) Coordinates() Coordinates {
	return Coordinates{Lon: float64(v.Lon), Lat: float64(v.Lat)}
}
