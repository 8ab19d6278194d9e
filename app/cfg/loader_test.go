package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		FeedURL:       "https://example.com/feed.csv",
		FetchInterval: 3600,
		FetchTimeout:  30,
		DBPath:        "./data/test.db",
		Port:          "8080",
		BaseUrl:       "https://compscout.example.com",
		WorkerCount:   2,
		JWTSecret:     "test-secret",
		GeminiAPIKey:  "test-key",
		GeminiModel:   "gemini-3-flash-preview",
		UserAgent:     "Test Agent",
		Timezone:      "Asia/Taipei",
		Debug:         true,
		Version:       "test-version",
	}

	if cfg.FeedURL != "https://example.com/feed.csv" {
		t.Errorf("Expected feed URL 'https://example.com/feed.csv', got '%s'", cfg.FeedURL)
	}
	if cfg.FetchInterval != 3600 {
		t.Errorf("Expected fetch interval 3600, got %d", cfg.FetchInterval)
	}
	if cfg.FetchTimeout != 30 {
		t.Errorf("Expected fetch timeout 30, got %d", cfg.FetchTimeout)
	}
	if cfg.DBPath != "./data/test.db" {
		t.Errorf("Expected DB path './data/test.db', got '%s'", cfg.DBPath)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.BaseUrl != "https://compscout.example.com" {
		t.Errorf("Expected base URL 'https://compscout.example.com', got '%s'", cfg.BaseUrl)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("Expected worker count 2, got %d", cfg.WorkerCount)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("Expected JWT secret 'test-secret', got '%s'", cfg.JWTSecret)
	}
	if cfg.GeminiModel != "gemini-3-flash-preview" {
		t.Errorf("Expected Gemini model 'gemini-3-flash-preview', got '%s'", cfg.GeminiModel)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "Asia/Taipei" {
		t.Errorf("Expected timezone 'Asia/Taipei', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}
