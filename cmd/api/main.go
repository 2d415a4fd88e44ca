package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/apoteket/stocktake-backend/internal/modules/catalog"
	"github.com/apoteket/stocktake-backend/internal/modules/dashboard"
	"github.com/apoteket/stocktake-backend/internal/modules/review"
	"github.com/apoteket/stocktake-backend/internal/modules/session"
	"github.com/apoteket/stocktake-backend/internal/modules/stockcheck"
	"github.com/apoteket/stocktake-backend/internal/platform/cache"
	"github.com/apoteket/stocktake-backend/internal/platform/config"
	"github.com/apoteket/stocktake-backend/internal/platform/database"
)

func main() {
	config.LoadEnv()

	if err := config.LoadLocations(config.Getenv("LOCATIONS_FILE", "locations.yaml")); err != nil {
		log.Fatal(err)
	}

	db, err := database.NewPostgresClient()
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.InitSchema(db); err != nil {
		log.Fatal(err)
	}

	// Redis is optional; without it the dashboard memo is disabled.
	memo, err := cache.NewRedisClient()
	if err != nil {
		log.Printf("Redis unavailable (%v), dashboard caching disabled.", err)
		memo = nil
	}
	defer memo.Close()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Catalog: uploads & products ─────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Session lifecycle ───────────────────────────────────
	sessionRepo := session.NewPostgresRepository(db)
	sessionService := session.NewService(sessionRepo)
	session.NewHandler(sessionService).RegisterRoutes(router)

	// ── Stock check recorder ────────────────────────────────
	checkRepo := stockcheck.NewPostgresRepository(db)
	checkService := stockcheck.NewService(checkRepo)
	stockcheck.NewHandler(checkService).RegisterRoutes(router)

	// ── Review engine ───────────────────────────────────────
	reviewRepo := review.NewPostgresRepository(db)
	reviewService := review.NewService(reviewRepo)
	review.NewHandler(reviewService).RegisterRoutes(router)

	// ── Dashboard ───────────────────────────────────────────
	dashboardRepo := dashboard.NewPostgresRepository(db)
	dashboardService := dashboard.NewService(dashboardRepo, memo)
	dashboard.NewHandler(dashboardService).RegisterRoutes(router)

	// ── Health ──────────────────────────────────────────────
	router.Get("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		connected := db.PingContext(r.Context()) == nil
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"connected": connected})
	})

	port := config.Getenv("APP_PORT", "8080")
	log.Printf("Stocktake API server starting on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
