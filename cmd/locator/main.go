package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	"vehicle-proximity-service/internal/bootstrap"
	"vehicle-proximity-service/internal/config"
	"vehicle-proximity-service/internal/domain"
	"vehicle-proximity-service/internal/platform/obs"
	"vehicle-proximity-service/internal/services"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// main loads the position stream once and prints the nearest vehicle for every
// reference point. An optional first argument overrides VEHICLE_SOURCE.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	if len(os.Args) > 1 {
		cfg.Source = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = obs.WithRequestID(ctx, uuid.NewString())

	start := time.Now()
	err = run(ctx, cfg, os.Stdout)
	if code := exitCode(err); code != 0 {
		stop()
		if code == exitMalformed {
			log.Printf("decode failed: %v", err)
		} else {
			log.Print(err)
		}
		os.Exit(code)
	}
	log.Printf("req_id=%s total execution time: %d ms", obs.RequestID(ctx), time.Since(start).Milliseconds())
}

const (
	exitFailure   = 1
	exitMalformed = 2
)

// exitCode maps a run error to the process exit status: malformed position
// data exits 2, every other failure 1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var malformed *domain.MalformedRecordError
	if errors.As(err, &malformed) {
		return exitMalformed
	}
	return exitFailure
}

// run prints one line per reference point to w. Results completed before a
// failure (for example an interrupted search) are still printed.
func run(ctx context.Context, cfg config.Config, w io.Writer) error {
	points, closePoints, err := bootstrap.ReferencePoints(cfg)
	if err != nil {
		return err
	}
	defer closePoints()

	source, err := bootstrap.VehicleSource(ctx, cfg)
	if err != nil {
		return err
	}

	report, err := services.Locate(ctx, services.LocateRequest{
		Location: cfg.Source,
		Load:     services.LoadOptions{BatchSize: cfg.BatchSize, SizeHint: cfg.SizeHint},
		Search:   services.SearchOptions{Workers: cfg.Workers, ScanShards: cfg.ScanShards},
	}, source, points)
	if report == nil {
		return err
	}

	if err == nil && report.Records == 0 {
		log.Printf("req_id=%s warning: source %q contained no records", obs.RequestID(ctx), cfg.Source)
	}
	for _, r := range report.Results {
		fmt.Fprintln(w, r)
	}
	return err
}
