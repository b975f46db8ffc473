package handlers

import (
	"log"
	"net/http"
	"vehicle-proximity-service/internal/api/dto"
	"vehicle-proximity-service/internal/platform/obs"
	"vehicle-proximity-service/internal/ports"
)

// PointsHandler exposes the configured reference points.
type PointsHandler struct {
	Repo ports.ReferencePointRepository
}

func (h *PointsHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	points, err := h.Repo.ListReferencePoints(r.Context())
	if err != nil {
		log.Printf("req_id=%s list reference points failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPointsResponse{
		Points: make([]dto.ReferencePointResponse, 0, len(points)),
	}
	for _, p := range points {
		res.Points = append(res.Points, dto.ReferencePointResponse{
			Key:      p.Key,
			Location: p.Coordinates().CoordsToList(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
