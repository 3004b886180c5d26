package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"schemetrust/internal/platform/config"
	"schemetrust/internal/platform/httpserver"
	"schemetrust/internal/platform/logger"
	"schemetrust/internal/platform/middleware"
	platformredis "schemetrust/internal/platform/redis"
	"schemetrust/internal/verification/store"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// The verification engine itself lives in internal/verification; registry
// clients and the public API are deployment-specific and injected by the
// embedding service. This daemon exposes the operational surface: health,
// metrics, and a read-only view of cached results for debugging.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	var resultStore store.ResultStore
	if redisClient != nil {
		resultStore = store.NewRedisStore(redisClient.Client)
		log.Info("using redis result store")
	} else {
		resultStore = store.NewMemoryStore()
		log.Info("REDIS_URL not set, using in-memory result store")
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestLogger(log))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/internal/results/{schemeID}", func(w http.ResponseWriter, r *http.Request) {
		schemeID := chi.URLParam(r, "schemeID")
		result, err := resultStore.Get(r.Context(), schemeID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, "no cached result", http.StatusNotFound)
				return
			}
			log.Error("result lookup failed", "scheme_id", schemeID, "error", err)
			http.Error(w, "lookup failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting verifier daemon", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
