package domain

import "fmt"

// Target coordinate for which the nearest vehicle is sought.
// Keys are 1..N and define the output order of a run.
type ReferencePoint struct {
	Key int
	Lat float64
	Lon float64
}

func (p ReferencePoint) Coordinates() Coordinates {
	return Coordinates{Lon: p.Lon, Lat: p.Lat}
}

// ValidateReferencePoints checks keys are positive and unique and that
// coordinates are within latitude/longitude range.
func ValidateReferencePoints(points []ReferencePoint) error {
	seen := make(map[int]struct{}, len(points))
	for i, p := range points {
		if p.Key <= 0 {
			return fmt.Errorf("invalid reference point key at index %d: %d", i, p.Key)
		}
		if _, ok := seen[p.Key]; ok {
			return fmt.Errorf("duplicate reference point key %d at index %d", p.Key, i)
		}
		seen[p.Key] = struct{}{}

		if !(p.Lat >= -90 && p.Lat <= 90) || !(p.Lon >= -180 && p.Lon <= 180) {
			return fmt.Errorf("reference point %d: coordinates out of range (lat=%v lon=%v)", p.Key, p.Lat, p.Lon)
		}
	}
	return nil
}
