// Package bootstrap wires concrete adapters behind ports for the cmd/ binaries.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"vehicle-proximity-service/internal/adapters/repositories"
	"vehicle-proximity-service/internal/adapters/source"
	"vehicle-proximity-service/internal/config"
	"vehicle-proximity-service/internal/platform/db"
	"vehicle-proximity-service/internal/ports"
)

func noopClose() error { return nil }

// ReferencePoints selects the reference point repository: Postgres, then
// SQLite, then a JSON file, then the built-in defaults. The returned close
// func releases any database handle.
func ReferencePoints(cfg config.Config) (ports.ReferencePointRepository, func() error, error) {
	var (
		sqlDB *sql.DB
		err   error
	)

	switch {
	case strings.TrimSpace(cfg.DatabaseURL) != "":
		sqlDB, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("reference points: %w", err)
		}
		log.Printf("reference points source=postgres")
		return repositories.NewSQLPointRepository(sqlDB), sqlDB.Close, nil

	case strings.TrimSpace(cfg.PointsDBPath) != "":
		sqlDB, err = db.OpenSQLite(cfg.PointsDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("reference points: %w", err)
		}
		log.Printf("reference points source=sqlite path=%s", cfg.PointsDBPath)
		return repositories.NewSQLPointRepository(sqlDB), sqlDB.Close, nil

	case strings.TrimSpace(cfg.PointsFile) != "":
		log.Printf("reference points source=json path=%s", cfg.PointsFile)
		return repositories.NewJSONPointRepository(cfg.PointsFile), noopClose, nil

	default:
		log.Printf("reference points source=builtin")
		return repositories.NewStaticPointRepository(repositories.DefaultReferencePoints()), noopClose, nil
	}
}

// VehicleSource builds the source router. Remote clients are only created
// when the configuration asks for them.
func VehicleSource(ctx context.Context, cfg config.Config) (ports.VehicleSource, error) {
	router := source.NewRouter(nil, nil)

	if strings.HasPrefix(cfg.Source, "s3://") {
		s3src, err := source.NewS3Source(ctx, cfg.S3Region)
		if err != nil {
			return nil, err
		}
		router.S3 = s3src
	}

	if cfg.Minio.Endpoint != "" {
		minioSrc, err := source.NewMinioSource(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			return nil, err
		}
		router.Minio = minioSrc
	}

	return router, nil
}
