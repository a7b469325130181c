// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every recognized setting. Values come from environment
// variables; a .env file in the working directory is applied first when
// present.
type Config struct {
	// Region is the AWS region hosting the store.
	Region string

	// TableName is the DynamoDB table holding song records.
	TableName string

	// AccessKeyID and SecretAccessKey are optional static credentials.
	// When either is empty the SDK default credential chain is used
	// instead.
	AccessKeyID     string
	SecretAccessKey string

	// Host and Port select the HTTP listen address.
	Host string
	Port int

	// CORSOrigins lists the allowed CORS origins.
	CORSOrigins []string

	// LogLevel is the slog threshold.
	LogLevel slog.Level

	// RequestTimeout bounds the store work done for one HTTP request.
	RequestTimeout time.Duration
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		Region:         "us-east-1",
		TableName:      "TBL_SONG",
		Host:           "0.0.0.0",
		Port:           8000,
		CORSOrigins:    []string{"*"},
		LogLevel:       slog.LevelInfo,
		RequestTimeout: 10 * time.Second,
	}
}

// Load reads configuration from the environment on top of Default. A
// .env file is loaded best-effort before reading; real environment
// variables win over .env entries.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Region = v
	}
	if v := os.Getenv("DYNAMODB_TABLE_NAME"); v != "" {
		cfg.TableName = v
	}
	cfg.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	if v := os.Getenv("API_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("API_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("invalid API_PORT %q", v)
		}
		cfg.Port = port
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitOrigins(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
		cfg.LogLevel = level
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid REQUEST_TIMEOUT %q", v)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

// splitOrigins parses a comma-separated origin list, trimming
// whitespace and dropping empty entries. An all-empty list falls back
// to allowing every origin.
func splitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
