// Package analysis exposes the analytical pipeline over HTTP as the
// dashboard feed: grouped aggregates, hypothesis test results and the
// revenue forecast, all as JSON.
package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"mavenroasters/aggregation"
	"mavenroasters/config"
	"mavenroasters/database"
	"mavenroasters/dataset"
	"mavenroasters/forecast"
	"mavenroasters/model"
	"mavenroasters/stats"
)

func writeJSON(w http.ResponseWriter, v interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// AggregatesHandler returns the full descriptive feed.
func AggregatesHandler(holder *dataset.Holder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := holder.Get()
		if t == nil || t.Len() == 0 {
			http.Error(w, "No dataset loaded", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, aggregation.Report(t), logger)
	}
}

// DimensionsHandler returns the store and product reference tables for
// dashboard filter dropdowns.
func DimensionsHandler(conn *sqlx.DB, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, err := database.GetAllStores(conn)
		if err != nil {
			logger.Error("failed to load stores", zap.Error(err))
			http.Error(w, "Failed to load stores: "+err.Error(), http.StatusInternalServerError)
			return
		}
		products, err := database.GetAllProducts(conn)
		if err != nil {
			logger.Error("failed to load products", zap.Error(err))
			http.Error(w, "Failed to load products: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]interface{}{
			"stores":   stores,
			"products": products,
		}, logger)
	}
}

// TestsHandler runs the hypothesis test battery and returns the flat
// result list. Flagged tests are part of the payload, not errors.
func TestsHandler(holder *dataset.Holder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := holder.Get()
		if t == nil || t.Len() == 0 {
			http.Error(w, "No dataset loaded", http.StatusServiceUnavailable)
			return
		}
		results := stats.NewAnalyzer(logger).Run(t)
		writeJSON(w, results, logger)
	}
}

// ForecastHandler fits the revenue model and returns the forecast report.
// The horizon defaults from config and can be overridden per request with
// ?horizon=N.
func ForecastHandler(holder *dataset.Holder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := holder.Get()
		if t == nil || t.Len() == 0 {
			http.Error(w, "No dataset loaded", http.StatusServiceUnavailable)
			return
		}

		cfg := config.GetConfig()
		horizon := cfg.ForecastHorizonDays
		if v := r.URL.Query().Get("horizon"); v != "" {
			h, err := strconv.Atoi(v)
			if err != nil || h <= 0 || h > 365 {
				http.Error(w, "horizon must be a positive number of days", http.StatusBadRequest)
				return
			}
			horizon = h
		}

		f := forecast.NewForecaster(horizon, cfg.MovingAverageWindow, cfg.HoldoutFraction, logger)
		report, err := f.Run(t)
		if errors.Is(err, forecast.ErrInsufficientHistory) {
			writeJSON(w, map[string]string{
				"status": model.StatusInsufficientData,
				"detail": err.Error(),
			}, logger)
			return
		}
		if err != nil {
			logger.Error("forecast failed", zap.Error(err))
			http.Error(w, "Failed to compute forecast: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, report, logger)
	}
}
