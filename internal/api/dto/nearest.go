package dto

import "time"

type NearestResultResponse struct {
	PointKey      int        `json:"point_key"`
	PointLocation []float64  `json:"point_location"`
	VehicleID     *int32     `json:"vehicle_id,omitempty"`
	Registration  string     `json:"registration,omitempty"`
	Location      []float64  `json:"location,omitempty"`
	DistanceKm    float64    `json:"distance_km"`
	RecordedAt    *time.Time `json:"recorded_at,omitempty"`
	Error         string     `json:"error,omitempty"`
}

type NearestResponse struct {
	Records int                     `json:"records"`
	Results []NearestResultResponse `json:"results"`
}
