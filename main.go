package main

import (
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"mavenroasters/config"
	"mavenroasters/dataset"
	"mavenroasters/loader"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("failed to load config file, using defaults", zap.Error(err))
		cfg = config.GetConfig()
	}

	logger.Info("connecting to database")
	dbConn, err := sqlx.Open("sqlite3", "./roasters.db?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		logger.Fatal("db open error", zap.Error(err))
	}
	defer dbConn.Close()

	if err := loader.InitDatabase(dbConn, cfg.DatasetPath(), logger); err != nil {
		logger.Fatal("database initialization failed", zap.Error(err))
	}

	table, err := dataset.Load(dbConn)
	if err != nil {
		logger.Fatal("failed to build in-memory dataset", zap.Error(err))
	}
	holder := dataset.NewHolder(table)
	logger.Info("dataset ready",
		zap.Int("transactions", table.Len()),
		zap.Int("days", table.DistinctDays()))

	mux := http.NewServeMux()

	if _, err := os.Stat("static"); err == nil {
		mux.Handle("/", http.FileServer(http.Dir("./static")))
	}

	SetupRoutes(mux, dbConn, holder, logger)

	logger.Info("starting server", zap.String("addr", cfg.ListenAddr))
	openBrowser("http://localhost"+cfg.ListenAddr, logger)

	if err := http.ListenAndServe(cfg.ListenAddr, instrument(mux)); err != nil {
		logger.Fatal("server start error", zap.Error(err))
	}
}

func openBrowser(url string, logger *zap.Logger) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		logger.Warn("failed to open browser", zap.Error(err))
	}
}
