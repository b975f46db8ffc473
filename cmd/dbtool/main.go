package main

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"vehicle-proximity-service/internal/adapters/repositories"
	"vehicle-proximity-service/internal/config"
	"vehicle-proximity-service/internal/platform/db"

	"github.com/joho/godotenv"
)

// main creates the reference point schema and seeds it from a JSON file.
// DATABASE_URL selects Postgres; otherwise POINTS_DB_PATH selects SQLite.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	var (
		sqlDB   *sql.DB
		dialect repositories.Dialect
		err     error
	)

	if databaseURL := config.Get("DATABASE_URL", ""); strings.TrimSpace(databaseURL) != "" {
		sqlDB, err = db.Open(databaseURL)
		dialect = repositories.Postgres
	} else {
		sqlDB, err = db.OpenSQLite(config.Get("POINTS_DB_PATH", "data/points.db"))
		dialect = repositories.SQLite
	}
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	seedPath := config.Get("SEED_PATH", "data/reference_points.json")
	if err := initAndSeed(context.Background(), sqlDB, dialect, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, sqlDB *sql.DB, dialect repositories.Dialect, seedPath string) error {
	log.Printf("Initializing database schema dialect=%s", dialect)
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding database from %s...", seedPath)
	if err := repositories.SeedFromJSON(ctx, sqlDB, dialect, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
