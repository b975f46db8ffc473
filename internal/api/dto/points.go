package dto

type ReferencePointResponse struct {
	Key int `json:"key"`
	// [lon, lat]
	Location []float64 `json:"location"`
}

type ListPointsResponse struct {
	Points []ReferencePointResponse `json:"points"`
}
