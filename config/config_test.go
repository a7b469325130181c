package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"
)

// pinEnv pins every recognized variable to empty so values from the
// host environment cannot leak into a test.
func pinEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"AWS_REGION",
		"DYNAMODB_TABLE_NAME",
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"API_HOST",
		"API_PORT",
		"CORS_ORIGINS",
		"LOG_LEVEL",
		"REQUEST_TIMEOUT",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

// --- Default Tests ---

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Region != "us-east-1" {
		t.Errorf("expected Region 'us-east-1', got %q", cfg.Region)
	}
	if cfg.TableName != "TBL_SONG" {
		t.Errorf("expected TableName 'TBL_SONG', got %q", cfg.TableName)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("expected Host '0.0.0.0', got %q", cfg.Host)
	}
	if cfg.Port != 8000 {
		t.Errorf("expected Port 8000, got %d", cfg.Port)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("expected CORSOrigins ['*'], got %v", cfg.CORSOrigins)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected LogLevel info, got %v", cfg.LogLevel)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected RequestTimeout 10s, got %v", cfg.RequestTimeout)
	}
}

// --- Load Tests ---

func TestLoad_Defaults(t *testing.T) {
	pinEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("expected %+v, got %+v", Default(), cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	pinEnv(t)
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("DYNAMODB_TABLE_NAME", "songs_test")
	t.Setenv("API_HOST", "127.0.0.1")
	t.Setenv("API_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REQUEST_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Region != "eu-west-1" {
		t.Errorf("expected Region 'eu-west-1', got %q", cfg.Region)
	}
	if cfg.TableName != "songs_test" {
		t.Errorf("expected TableName 'songs_test', got %q", cfg.TableName)
	}
	if cfg.Host != "127.0.0.1" {
		t.Errorf("expected Host '127.0.0.1', got %q", cfg.Host)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected Port 9090, got %d", cfg.Port)
	}
	expected := []string{"http://a.example", "http://b.example"}
	if !reflect.DeepEqual(cfg.CORSOrigins, expected) {
		t.Errorf("expected CORSOrigins %v, got %v", expected, cfg.CORSOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected LogLevel debug, got %v", cfg.LogLevel)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("expected RequestTimeout 3s, got %v", cfg.RequestTimeout)
	}
}

func TestLoad_StaticCredentials(t *testing.T) {
	pinEnv(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AccessKeyID != "AKIAEXAMPLE" {
		t.Errorf("expected AccessKeyID 'AKIAEXAMPLE', got %q", cfg.AccessKeyID)
	}
	if cfg.SecretAccessKey != "secret" {
		t.Errorf("expected SecretAccessKey 'secret', got %q", cfg.SecretAccessKey)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port string
	}{
		{"not a number", "eight"},
		{"zero", "0"},
		{"negative", "-1"},
		{"too large", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinEnv(t)
			t.Setenv("API_PORT", tt.port)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for API_PORT %q", tt.port)
			}
		})
	}
}

func TestLoad_LogLevels(t *testing.T) {
	tests := []struct {
		value    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			pinEnv(t)
			t.Setenv("LOG_LEVEL", tt.value)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if cfg.LogLevel != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, cfg.LogLevel)
			}
		})
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	pinEnv(t)
	t.Setenv("LOG_LEVEL", "loud")

	if _, err := Load(); err == nil {
		t.Error("expected error for LOG_LEVEL 'loud'")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
	}{
		{"not a duration", "soon"},
		{"zero", "0s"},
		{"negative", "-5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinEnv(t)
			t.Setenv("REQUEST_TIMEOUT", tt.timeout)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for REQUEST_TIMEOUT %q", tt.timeout)
			}
		})
	}
}

// --- splitOrigins Tests ---

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single", "http://a.example", []string{"http://a.example"}},
		{"wildcard", "*", []string{"*"}},
		{"multiple", "http://a.example,http://b.example", []string{"http://a.example", "http://b.example"}},
		{"spaces trimmed", " http://a.example , http://b.example ", []string{"http://a.example", "http://b.example"}},
		{"empty entries dropped", "http://a.example,,http://b.example", []string{"http://a.example", "http://b.example"}},
		{"only commas falls back", ",,,", []string{"*"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitOrigins(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
