package main

import (
	"database/sql"
	"log"

	"truck-route-optimizer/internal/adapters/repositories"
	"truck-route-optimizer/internal/config"
	"truck-route-optimizer/internal/platform/db"
)

func main() {
	config.Load()
	settings := config.FromEnv()

	var (
		conn *sql.DB
		err  error
		initSchema func(*sql.DB) error
	)

	switch settings.DBDriver {
	case "postgres", "pgx":
		if settings.DatabaseURL == "" {
			log.Fatal("DATABASE_URL is required")
		}
		conn, err = db.Open(settings.DatabaseURL)
		initSchema = repositories.InitPostgresSchema
	case "sqlite":
		conn, err = db.OpenSqlite(settings.DBPath)
		initSchema = repositories.InitSchema
	default:
		log.Fatalf("DB_DRIVER %q has no schema to initialize", settings.DBDriver)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Printf("Initializing database schema driver=%s...", settings.DBDriver)
	if err := initSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
