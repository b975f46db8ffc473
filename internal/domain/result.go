package domain

import (
	"fmt"
	"time"
)

const RecordedAtLayout = "2006-01-02 15:04:05"

// Outcome of a nearest-neighbor search for one reference point.
// Err is non-nil (a *NoCandidateError) when no vehicle could be selected;
// the remaining fields are then zero.
type NearestResult struct {
	PointKey     int
	VehicleID    int32
	Registration string
	DistanceKm   float64
	RecordedAt   time.Time
	Err          error
}

// String renders the result as a single output line:
// "{key} {registration} - {distance} km away on {recordedAt}".
func (r NearestResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%d - %v", r.PointKey, r.Err)
	}
	return fmt.Sprintf(
		"%d %s - %.2f km away on %s",
		r.PointKey, r.Registration, r.DistanceKm, r.RecordedAt.UTC().Format(RecordedAtLayout),
	)
}
