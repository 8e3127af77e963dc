// ABOUTME: Studio configuration loading
// ABOUTME: Reads a TOML config file with environment variable overrides
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all studio configuration.
type Config struct {
	// Generation service
	APIKey   string `toml:"api_key"`
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
	Voice    string `toml:"voice"`

	// Audio
	SampleRate int `toml:"sample_rate"`
	Channels   int `toml:"channels"`

	// Visualization
	Bars          int     `toml:"bars"`
	SurfaceWidth  float64 `toml:"surface_width"`
	SurfaceHeight float64 `toml:"surface_height"`

	// HTTP API
	HTTPAddr string `toml:"http_addr"`

	// Storage
	DBPath  string `toml:"db_path"`
	LogFile string `toml:"log_file"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Endpoint:      "https://generativelanguage.googleapis.com",
		Model:         "gemini-2.5-flash-preview-tts",
		Voice:         "Kore",
		SampleRate:    24000,
		Channels:      1,
		Bars:          64,
		SurfaceWidth:  600,
		SurfaceHeight: 96,
		HTTPAddr:      ":8080",
		DBPath:        "./data/voiceforge.db",
		LogFile:       "voiceforge.log",
	}
}

// Load reads configuration from an optional TOML file, then applies
// environment variable overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	cfg.APIKey = getEnv("VOICEFORGE_API_KEY", cfg.APIKey)
	cfg.Endpoint = getEnv("VOICEFORGE_ENDPOINT", cfg.Endpoint)
	cfg.Model = getEnv("VOICEFORGE_MODEL", cfg.Model)
	cfg.Voice = getEnv("VOICEFORGE_VOICE", cfg.Voice)
	cfg.HTTPAddr = getEnv("VOICEFORGE_HTTP_ADDR", cfg.HTTPAddr)
	cfg.DBPath = getEnv("VOICEFORGE_DB_PATH", cfg.DBPath)
	cfg.LogFile = getEnv("VOICEFORGE_LOG_FILE", cfg.LogFile)
	cfg.SampleRate = getIntEnv("VOICEFORGE_SAMPLE_RATE", cfg.SampleRate)
	cfg.Bars = getIntEnv("VOICEFORGE_BARS", cfg.Bars)

	if cfg.SampleRate <= 0 {
		return cfg, fmt.Errorf("invalid sample rate: %d", cfg.SampleRate)
	}
	if cfg.Channels < 1 {
		return cfg, fmt.Errorf("invalid channel count: %d", cfg.Channels)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
