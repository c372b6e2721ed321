package automation

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"mavenroasters/config"
	"mavenroasters/dataset"
	"mavenroasters/loader"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// DownloadDatasetHandler downloads the sales export from the configured
// portal, loads it and swaps the in-memory dataset.
func DownloadDatasetHandler(db *sqlx.DB, holder *dataset.Holder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		cfg := config.GetConfig()
		if cfg.PortalURL == "" {
			writeJSONError(w, "No portal URL configured", http.StatusBadRequest)
			return
		}

		logger.Info("starting dataset download", zap.String("url", cfg.PortalURL))
		filePath, err := DownloadDataset(cfg.PortalURL, cfg.DataFolderPath, cfg.DatasetFile)
		if err != nil {
			logger.Error("dataset download failed", zap.Error(err))
			writeJSONError(w, "Download error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if err := loader.LoadSalesCSV(db, filePath, logger); err != nil {
			writeJSONError(w, "Failed to load downloaded dataset: "+err.Error(), http.StatusInternalServerError)
			return
		}
		table, err := dataset.Load(db)
		if err != nil {
			writeJSONError(w, "Failed to rebuild dataset: "+err.Error(), http.StatusInternalServerError)
			return
		}
		holder.Set(table)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":       "success",
			"filePath":     filePath,
			"transactions": table.Len(),
		})
	}
}
