// Package server exposes the engine's operations as a thin JSON HTTP surface.
// Validation, auth and rendering live outside this repository.
package server

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/Tranv-IA/ContenAI/internal/config"
	"github.com/Tranv-IA/ContenAI/internal/engine"
	"github.com/Tranv-IA/ContenAI/internal/logger"
	"github.com/Tranv-IA/ContenAI/internal/model"
)

// NewHTTPServer builds the kratos HTTP server with the engine routes mounted.
func NewHTTPServer(cfg config.ServerConfig, eng *engine.Engine) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if cfg.Addr != "" {
		opts = append(opts, http.Address(cfg.Addr))
	}
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	srv.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
	})

	srv.HandleFunc("/api/v1/trends", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req struct {
			Niche    string   `json:"niche"`
			Keywords []string `json:"keywords"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, nethttp.StatusBadRequest, "invalid request body")
			return
		}

		result, err := eng.GetTrendsForNiche(r.Context(), req.Niche, req.Keywords)
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, nethttp.StatusOK, result)
	})

	srv.HandleFunc("/api/v1/predict", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req struct {
			Niche          string                             `json:"niche"`
			Keywords       []string                           `json:"keywords"`
			HistoricalData map[string][]model.TimeSeriesPoint `json:"historical_data"`
			RecentArticles []model.TextItem                   `json:"recent_articles"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, nethttp.StatusBadRequest, "invalid request body")
			return
		}

		result := eng.PredictTrends(r.Context(), req.Niche, req.Keywords, req.HistoricalData, req.RecentArticles)
		writeJSON(w, nethttp.StatusOK, result)
	})

	srv.HandleFunc("/api/v1/competitors", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req struct {
			URLs []string `json:"urls"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, nethttp.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.URLs) > 4 {
			req.URLs = req.URLs[:4]
		}

		writeJSON(w, nethttp.StatusOK, eng.AnalyzeCompetitors(r.Context(), req.URLs))
	})

	return srv
}

func writeJSON(w nethttp.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w nethttp.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
