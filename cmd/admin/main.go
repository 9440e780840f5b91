package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/ravindra-p/stockpulse/internal/cache"
	"github.com/ravindra-p/stockpulse/internal/config"
	"github.com/ravindra-p/stockpulse/internal/service"
)

// admin is a small ops sidecar: cache invalidation and a view of the active
// engine thresholds, kept off the public API surface.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	pushListCache, err := cache.NewPushListCache(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to initialize push list cache: %v", err)
	}
	coverageCache, err := cache.NewCoverageCache(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to initialize coverage cache: %v", err)
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/cache/invalidate", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := pushListCache.InvalidateAll(ctx); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := coverageCache.InvalidateAll(ctx); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("invalidated"))
	}).Methods("POST")

	r.HandleFunc("/thresholds", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.ThresholdsFromConfig(cfg.Engine))
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", cfg.Server.AdminPort)
	log.Printf("Admin server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
