package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

type Config struct {
	DataFolderPath      string  `json:"dataFolderPath"`
	DatasetFile         string  `json:"datasetFile"`
	ListenAddr          string  `json:"listenAddr"`
	MovingAverageWindow int     `json:"movingAverageWindow"`
	ForecastHorizonDays int     `json:"forecastHorizonDays"`
	HoldoutFraction     float64 `json:"holdoutFraction"`
	PortalURL           string  `json:"portalURL"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./roasters_config.json"

func defaults() Config {
	return Config{
		DataFolderPath:      "data",
		DatasetFile:         "coffee_shop_sales.csv",
		ListenAddr:          ":8080",
		MovingAverageWindow: 7,
		ForecastHorizonDays: 7,
		HoldoutFraction:     0.2,
		PortalURL:           "https://mavenanalytics.io/data-playground",
	}
}

// LoadConfig reads the config file, fills defaults and applies environment
// overrides (see .env.example). Missing file is not an error. On an
// unreadable or malformed file the stored config still ends up at the
// defaults, so callers that continue after the error get a usable config.
func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	c := defaults()
	file, readErr := os.ReadFile(configFilePath)
	if readErr != nil && !os.IsNotExist(readErr) {
		applyEnv(&c)
		cfg = c
		return cfg, readErr
	}
	if readErr == nil {
		if err := json.Unmarshal(file, &c); err != nil {
			c = defaults()
			applyEnv(&c)
			cfg = c
			return cfg, err
		}
	}
	applyDefaults(&c)
	applyEnv(&c)
	cfg = c
	return cfg, nil
}

func applyDefaults(c *Config) {
	d := defaults()
	if c.DataFolderPath == "" {
		c.DataFolderPath = d.DataFolderPath
	}
	if c.DatasetFile == "" {
		c.DatasetFile = d.DatasetFile
	}
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.MovingAverageWindow <= 0 {
		c.MovingAverageWindow = d.MovingAverageWindow
	}
	if c.ForecastHorizonDays <= 0 {
		c.ForecastHorizonDays = d.ForecastHorizonDays
	}
	if c.HoldoutFraction <= 0 || c.HoldoutFraction >= 1 {
		c.HoldoutFraction = d.HoldoutFraction
	}
	if c.PortalURL == "" {
		c.PortalURL = d.PortalURL
	}
}

func applyEnv(c *Config) {
	c.DataFolderPath = getenv("APP_DATA_FOLDER", c.DataFolderPath)
	c.DatasetFile = getenv("APP_DATASET_FILE", c.DatasetFile)
	c.ListenAddr = getenv("APP_LISTEN_ADDR", c.ListenAddr)
	c.PortalURL = getenv("APP_PORTAL_URL", c.PortalURL)
	if v := os.Getenv("APP_FORECAST_HORIZON_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			c.ForecastHorizonDays = days
		}
	}
	if v := os.Getenv("APP_MOVING_AVERAGE_WINDOW"); v != "" {
		if w, err := strconv.Atoi(v); err == nil && w > 0 {
			c.MovingAverageWindow = w
		}
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)
	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// DatasetPath is the full path of the sales export CSV.
func (c Config) DatasetPath() string {
	return filepath.Join(c.DataFolderPath, c.DatasetFile)
}
