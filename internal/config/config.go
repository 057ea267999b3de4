// Package config loads application settings from environment variables,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	Categorizer CategorizerConfig
	Extractor   ExtractorConfig
}

type DatabaseConfig struct {
	// URL, when set, wins over the individual parameters.
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CategorizerConfig struct {
	// Model is the Gemini model used for categorization.
	Model string
	// Timeout bounds a single categorization request.
	Timeout time.Duration
	// RateLimit is the pause between consecutive requests.
	RateLimit time.Duration
}

type ExtractorConfig struct {
	// TessdataPrefix is where Tesseract language data lives.
	TessdataPrefix string
	// MinTextChars is the threshold below which a PDF is considered
	// scanned and is routed through OCR.
	MinTextChars int
}

// Load reads settings from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	// Optional in containers, convenient locally.
	_ = godotenv.Load()

	timeout, err := strconv.Atoi(getEnv("CATEGORIZER_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid CATEGORIZER_TIMEOUT_SECONDS: %w", err)
	}
	rateMs, err := strconv.Atoi(getEnv("CATEGORIZER_RATE_LIMIT_MS", "500"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid CATEGORIZER_RATE_LIMIT_MS: %w", err)
	}
	minText, err := strconv.Atoi(getEnv("OCR_MIN_TEXT_CHARS", "100"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid OCR_MIN_TEXT_CHARS: %w", err)
	}

	return &Config{
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			User:     getEnv("PG_USER", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			DBName:   getEnv("PG_DATABASE", "spendsense"),
			SSLMode:  getEnv("PG_SSLMODE", "disable"),
		},
		Categorizer: CategorizerConfig{
			Model:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout:   time.Duration(timeout) * time.Second,
			RateLimit: time.Duration(rateMs) * time.Millisecond,
		},
		Extractor: ExtractorConfig{
			TessdataPrefix: os.Getenv("TESSDATA_PREFIX"),
			MinTextChars:   minText,
		},
	}, nil
}

// DSN builds the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
