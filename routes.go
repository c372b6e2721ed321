package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mavenroasters/analysis"
	"mavenroasters/automation"
	"mavenroasters/dataset"
	"mavenroasters/loader"
	"mavenroasters/report"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, holder *dataset.Holder, logger *zap.Logger) {

	mux.HandleFunc("/api/aggregates", analysis.AggregatesHandler(holder, logger))
	mux.HandleFunc("/api/aggregates/export_csv", report.ExportAggregatesCSVHandler(holder, logger))

	mux.HandleFunc("/api/dimensions", analysis.DimensionsHandler(dbConn, logger))

	mux.HandleFunc("/api/stats/tests", analysis.TestsHandler(holder, logger))

	mux.HandleFunc("/api/forecast", analysis.ForecastHandler(holder, logger))
	mux.HandleFunc("/api/forecast/export_csv", report.ExportForecastCSVHandler(holder, logger))

	mux.HandleFunc("/api/report/summary", report.SummaryReportHandler(holder, logger))

	mux.HandleFunc("/api/dataset/reload", loader.ReloadDatasetHandler(dbConn, holder, logger))
	mux.HandleFunc("/api/dataset/download", automation.DownloadDatasetHandler(dbConn, holder, logger))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler(logger)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.Handle("/metrics", promhttp.Handler())
}
