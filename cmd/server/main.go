package main

import (
	"context"
	"log"
	"net/http"
	"time"
	"vehicle-proximity-service/internal/api"
	"vehicle-proximity-service/internal/bootstrap"
	"vehicle-proximity-service/internal/config"
	"vehicle-proximity-service/internal/domain"
	"vehicle-proximity-service/internal/platform/obs"
	"vehicle-proximity-service/internal/services"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It loads the vehicle index once, wires the reference point repository and
// starts the HTTP server. The index is never modified after startup.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.NewMetrics(reg)

	points, closePoints, err := bootstrap.ReferencePoints(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closePoints()

	ctx := obs.WithRequestID(context.Background(), uuid.NewString())
	idx, err := loadIndex(ctx, cfg, metrics)
	if err != nil {
		log.Fatal(err)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	router := api.NewRouter(api.Deps{
		Index:    idx,
		Points:   points,
		Search:   services.SearchOptions{Workers: cfg.Workers, ScanShards: cfg.ScanShards},
		Metrics:  metrics,
		Gatherer: reg,
		Limiter:  limiter,
	})

	// A full scan over millions of records can take a few seconds per request.
	log.Printf("Server listening addr=:%s records=%s", cfg.Port, humanize.Comma(int64(idx.Len())))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func loadIndex(ctx context.Context, cfg config.Config, metrics *obs.Metrics) (_ *domain.VehicleIndex, err error) {
	defer obs.Time(ctx, "server.LoadIndex")(&err)

	source, err := bootstrap.VehicleSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rc, err := source.Open(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	start := time.Now()
	idx, err := services.LoadVehicles(ctx, rc, services.LoadOptions{BatchSize: cfg.BatchSize, SizeHint: cfg.SizeHint})
	if err != nil {
		return nil, err
	}
	metrics.ObserveLoad(idx.Len(), time.Since(start))

	return idx, nil
}
