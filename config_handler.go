package main

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"mavenroasters/config"
)

func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(config.GetConfig())
	}
}

func SaveConfigHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			http.Error(w, "Invalid config payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := config.SaveConfig(newCfg); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			http.Error(w, "Failed to save config: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(config.GetConfig())
	}
}
