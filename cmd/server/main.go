package main

import (
	"log"
	"time"

	"github.com/jengzang/flighttrack-backend-go/internal/airline"
	"github.com/jengzang/flighttrack-backend-go/internal/api"
	"github.com/jengzang/flighttrack-backend-go/internal/aviationstack"
	"github.com/jengzang/flighttrack-backend-go/internal/config"
	"github.com/jengzang/flighttrack-backend-go/internal/database"
	"github.com/jengzang/flighttrack-backend-go/internal/handler"
	"github.com/jengzang/flighttrack-backend-go/internal/history"
	"github.com/jengzang/flighttrack-backend-go/internal/opensky"
	"github.com/jengzang/flighttrack-backend-go/internal/repository"
	"github.com/jengzang/flighttrack-backend-go/internal/service"
)

// pruneCache drops stale cache rows hourly so the file does not grow
// unbounded across restarts.
func pruneCache(cache *repository.StatusCacheRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if removed, err := cache.Prune(24 * time.Hour); err != nil {
			log.Printf("Status cache prune failed: %v", err)
		} else if removed > 0 {
			log.Printf("Pruned %d stale status cache entries", removed)
		}
	}
}

func main() {
	cfg := config.Load()

	// Carrier registry: a load failure degrades to an empty registry, the
	// callsign converter then falls back to best-effort prefixes.
	reg := airline.Load(cfg.AirlinesPath)
	if reg.Degraded {
		log.Printf("Failed to load airline registry: %v (continuing without registry)", reg.Err)
	} else {
		log.Printf("Loaded %d airlines into registry", reg.Loaded)
	}

	// Status cache: optional. Without it every lookup goes upstream.
	var cache *repository.StatusCacheRepository
	db, err := database.Open(database.Config{Path: cfg.CacheDBPath})
	if err != nil {
		log.Printf("Failed to open status cache: %v (caching disabled)", err)
	} else {
		defer db.Close()
		cache = repository.NewStatusCacheRepository(db)
		go pruneCache(cache)
	}

	telemetry := opensky.NewClient(
		opensky.WithBaseURL(cfg.OpenSkyURL),
		opensky.WithTimeout(cfg.OpenSkyTimeout()),
	)

	statusOpts := []aviationstack.ClientOption{aviationstack.WithBaseURL(cfg.AviationURL)}
	if cache != nil {
		statusOpts = append(statusOpts, aviationstack.WithCache(cache, cfg.CacheTTL()))
	}
	status := aviationstack.NewClient(cfg.AviationAPIKey, statusOpts...)
	if cfg.AviationAPIKey == "" {
		log.Printf("AVIATIONSTACK_API_KEY not set; commercial lookups will report no_api_key")
	}

	hist := history.NewStore(cfg.HistorySize)
	resolver := service.NewResolveService(reg.Registry, telemetry, status, hist, cfg.ResolveWorkers)

	router := api.SetupRouter(handler.NewFlightsHandler(resolver))

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
