package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
	"vehicle-proximity-service/internal/api/dto"
	"vehicle-proximity-service/internal/domain"
	"vehicle-proximity-service/internal/platform/obs"
	"vehicle-proximity-service/internal/ports"
	"vehicle-proximity-service/internal/services"
)

type NearestHandler struct {
	Index   *domain.VehicleIndex
	Points  ports.ReferencePointRepository
	Search  services.SearchOptions
	Metrics *obs.Metrics
}

// Find runs the nearest-vehicle search against the loaded index. Without
// query parameters it searches every configured reference point; with
// ?lat=&lon= it searches that single ad-hoc point (key 0).
func (h *NearestHandler) Find(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	points, status, msg := h.points(r)
	if status != 0 {
		writeError(w, r, status, msg)
		return
	}

	start := time.Now()
	results, err := services.FindNearest(r.Context(), h.Index, points, h.Search)
	h.Metrics.ObserveSearch(time.Since(start), results, err)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, r, http.StatusServiceUnavailable, "search cancelled")
			return
		}
		log.Printf("req_id=%s find nearest failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.NearestResponse{
		Records: h.Index.Len(),
		Results: make([]dto.NearestResultResponse, 0, len(results)),
	}
	for i, nr := range results {
		item := dto.NearestResultResponse{
			PointKey:      nr.PointKey,
			PointLocation: points[i].Coordinates().CoordsToList(),
		}
		if nr.Err != nil {
			item.Error = nr.Err.Error()
		} else {
			at, id := nr.RecordedAt, nr.VehicleID
			item.VehicleID = &id
			item.Registration = nr.Registration
			item.DistanceKm = nr.DistanceKm
			item.RecordedAt = &at
			if rec, ok := h.Index.Get(nr.VehicleID); ok {
				item.Location = rec.Coordinates().CoordsToList()
			}
		}
		res.Results = append(res.Results, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *NearestHandler) points(r *http.Request) ([]domain.ReferencePoint, int, string) {
	q := r.URL.Query()
	rawLat, rawLon := strings.TrimSpace(q.Get("lat")), strings.TrimSpace(q.Get("lon"))

	if rawLat == "" && rawLon == "" {
		points, err := h.Points.ListReferencePoints(r.Context())
		if err != nil {
			log.Printf("req_id=%s list reference points failed: %v", obs.RequestID(r.Context()), err)
			return nil, http.StatusInternalServerError, "internal server error"
		}
		return points, 0, ""
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil || !(lat >= -90 && lat <= 90) {
		return nil, http.StatusBadRequest, "lat must be a number between -90 and 90"
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil || !(lon >= -180 && lon <= 180) {
		return nil, http.StatusBadRequest, "lon must be a number between -180 and 180"
	}

	return []domain.ReferencePoint{{Key: 0, Lat: lat, Lon: lon}}, 0, ""
}
