package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"calgrid/internal/calendar"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath        string
	LogDir          string
	DatasetDir      string
	SettingsPath    string
	DefaultBinCount int
	LegacyRange     bool
	IngestTZ        *time.Location
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first; hosts launch
	// the server from arbitrary working directories.
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	datasetDir := getEnv("DATASETS_FOLDER", filepath.Join(dataPath, "datasets"))

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}
	if err := os.MkdirAll(datasetDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", datasetDir).Msg("Failed to create dataset directory")
	}

	binCount, err := strconv.Atoi(getEnv("DEFAULT_BIN_COUNT", ""))
	if err != nil || binCount <= 0 {
		binCount = calendar.DefaultBinCount
	}

	tz := time.UTC
	if name := os.Getenv("INGEST_TIMEZONE"); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Warn().Err(err).Str("tz", name).Msg("Unknown ingest timezone, falling back to UTC")
		} else {
			tz = loc
		}
	}

	cfg := &AppConfig{
		DataPath:        dataPath,
		LogDir:          logDir,
		DatasetDir:      datasetDir,
		SettingsPath:    getEnv("WIDGET_SETTINGS", ""),
		DefaultBinCount: binCount,
		LegacyRange:     getEnvBool("LEGACY_RANGE", true),
		IngestTZ:        tz,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
