package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"truck-route-optimizer/internal/adapters/cache"
	"truck-route-optimizer/internal/adapters/repositories"
	"truck-route-optimizer/internal/api"
	"truck-route-optimizer/internal/config"
	"truck-route-optimizer/internal/metrics"
	"truck-route-optimizer/internal/platform/db"
	"truck-route-optimizer/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	config.Load()
	settings := config.FromEnv()

	metrics.RegisterDefault()

	runs, planCache, closeAll, err := openStorage(settings)
	if err != nil {
		log.Fatal(err)
	}
	defer closeAll()

	router := api.NewRouter(api.RouterDeps{
		Runs:             runs,
		Cache:            planCache,
		DefaultSeed:      settings.Seed,
		DefaultMaxSweeps: settings.MaxSweeps,
		PlanTimeout:      settings.PlanTimeout,
	})

	// Large maps take a while to climb; the write timeout leaves room for that.
	log.Printf("Server listening addr=:%s db_driver=%s", settings.Port, settings.DBDriver)
	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStorage picks the run repository and plan cache for the configured driver.
// A Redis URL overrides the SQL plan cache.
func openStorage(s config.Settings) (ports.RunRepository, ports.PlanCache, func(), error) {
	var (
		runs      ports.RunRepository
		planCache ports.PlanCache
		closers   []func() error
	)

	switch s.DBDriver {
	case "memory":
		runs = repositories.NewMemoryRunRepository()

	case "sqlite":
		conn, err := db.OpenSqlite(s.DBPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open storage: %w", err)
		}
		closers = append(closers, conn.Close)

		if err := repositories.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, nil, fmt.Errorf("open storage: %w", err)
		}
		runs = repositories.NewSqliteRunRepository(conn)
		planCache = cache.NewSqlitePlanCache(conn, s.PlanCacheTTL)

	case "postgres", "pgx":
		if s.DatabaseURL == "" {
			return nil, nil, nil, fmt.Errorf("open storage: DATABASE_URL is required for driver %q", s.DBDriver)
		}
		conn, err := db.Open(s.DatabaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open storage: %w", err)
		}
		closers = append(closers, conn.Close)

		if err := repositories.InitPostgresSchema(conn); err != nil {
			conn.Close()
			return nil, nil, nil, fmt.Errorf("open storage: %w", err)
		}
		runs = repositories.NewSQLRunRepository(conn)

	default:
		return nil, nil, nil, fmt.Errorf("open storage: unknown DB_DRIVER %q", s.DBDriver)
	}

	if s.RedisURL != "" {
		rc, err := cache.NewRedisPlanCache(s.RedisURL, s.PlanCacheTTL)
		if err != nil {
			closeEach(closers)
			return nil, nil, nil, fmt.Errorf("open storage: %w", err)
		}
		closers = append(closers, rc.Close)
		planCache = rc
	}

	return runs, planCache, func() { closeEach(closers) }, nil
}

func closeEach(closers []func() error) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			log.Printf("close failed: %v", err)
		}
	}
}

