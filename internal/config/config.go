package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Runtime configuration shared by the cmd/ binaries.
type Config struct {
	// Path or URI of the binary position stream (file, s3://, minio://).
	Source string

	// Reference point sources, first non-empty wins: Postgres, SQLite, JSON.
	// With none set the built-in default points are used.
	DatabaseURL  string
	PointsDBPath string
	PointsFile   string

	BatchSize  int
	SizeHint   int
	Workers    int
	ScanShards int

	Port      string
	RateLimit float64
	RateBurst int

	S3Region string
	Minio    MinioConfig
}

// FromEnv reads Config from the environment. All parse errors are reported together.
func FromEnv() (Config, error) {
	var errs []error

	intVar := func(key string, fallback int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return fallback
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			errs = append(errs, fmt.Errorf("config: %s must be a non-negative integer, got %q", key, raw))
			return fallback
		}
		return v
	}
	floatVar := func(key string, fallback float64) float64 {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return fallback
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			errs = append(errs, fmt.Errorf("config: %s must be a non-negative number, got %q", key, raw))
			return fallback
		}
		return v
	}
	boolVar := func(key string, fallback bool) bool {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return fallback
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s must be a boolean, got %q", key, raw))
			return fallback
		}
		return v
	}

	cfg := Config{
		Source:       Get("VEHICLE_SOURCE", "data/VehiclePositions.dat"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		PointsDBPath: os.Getenv("POINTS_DB_PATH"),
		PointsFile:   os.Getenv("REFERENCE_POINTS"),
		BatchSize:    intVar("LOAD_BATCH_SIZE", 1000),
		SizeHint:     intVar("LOAD_SIZE_HINT", 0),
		Workers:      intVar("SEARCH_WORKERS", 0),
		ScanShards:   intVar("SEARCH_SCAN_SHARDS", 1),
		Port:         Get("PORT", "8080"),
		RateLimit:    floatVar("NEAREST_RATE_LIMIT", 5),
		RateBurst:    intVar("NEAREST_RATE_BURST", 10),
		S3Region:     os.Getenv("S3_REGION"),
		Minio: MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    boolVar("MINIO_USE_SSL", true),
		},
	}

	if cfg.BatchSize == 0 {
		errs = append(errs, errors.New("config: LOAD_BATCH_SIZE must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
