package loader

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"mavenroasters/config"
	"mavenroasters/dataset"
)

// ReloadDatasetHandler re-parses the sales export, reloads the tables and
// swaps the in-memory dataset.
func ReloadDatasetHandler(conn *sqlx.DB, holder *dataset.Holder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		cfg := config.GetConfig()

		if err := LoadSalesCSV(conn, cfg.DatasetPath(), logger); err != nil {
			logger.Error("dataset reload failed", zap.Error(err))
			http.Error(w, "Failed to reload dataset: "+err.Error(), http.StatusInternalServerError)
			return
		}
		table, err := dataset.Load(conn)
		if err != nil {
			logger.Error("dataset rebuild failed", zap.Error(err))
			http.Error(w, "Failed to rebuild dataset: "+err.Error(), http.StatusInternalServerError)
			return
		}
		holder.Set(table)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":       "reloaded",
			"transactions": table.Len(),
			"days":         table.DistinctDays(),
		})
	}
}
