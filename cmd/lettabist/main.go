package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/frnietz/lettaearthnewsletterbist/internal/app"
	"github.com/frnietz/lettaearthnewsletterbist/internal/config"
	"github.com/frnietz/lettaearthnewsletterbist/internal/logger"
	"github.com/frnietz/lettaearthnewsletterbist/internal/metrics"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(cfg.Debug)

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", dashboardHandler(a))
	mux.HandleFunc("/digest", digestHandler(a))
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/metrics", metricsHandler)

	logger.Info("starting dashboard server", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, mux); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func dashboardHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("refresh") == "1" {
			a.Refresh()
		}

		render := a.Run(r.Context())

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := a.WriteDashboard(w, render); err != nil {
			logger.Error("dashboard render failed", "error", err)
		}
	}
}

func digestHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render := a.Run(r.Context())

		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		if _, err := w.Write([]byte(render.Digest)); err != nil {
			logger.Error("digest write failed", "error", err)
		}
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics.Global.GetStats())
}
