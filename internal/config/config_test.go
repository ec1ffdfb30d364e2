package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"JAMB_DEV", "JAMB_ADDR", "PORT", "SANITY_PROJECT_ID", "SANITY_STUDIO_PROJECT_ID",
	"SANITY_DATASET", "SANITY_STUDIO_DATASET", "SANITY_API_VERSION", "SANITY_API_READ_TOKEN",
	"SANITY_STUDIO_URL", "SANITY_USE_CDN", "JAMB_CONTENT_DIR", "JAMB_WATCH", "JAMB_PUBLIC_DIR",
	"JAMB_EXPORT_DIR", "JAMB_CACHE_TTL", "JAMB_PREVIEW_SECRET", "JAMB_LOG_LEVEL",
	"JAMB_LOG_FORMAT", "JAMB_JOINABLE", "HOST_NAME", "SANITY_STUDIO_PRODUCTION_HOSTNAME",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %s, want %s", cfg.Addr, DefaultAddr)
	}
	if cfg.CacheTTL != DefaultCacheTTL {
		t.Errorf("CacheTTL = %v, want %v", cfg.CacheTTL, DefaultCacheTTL)
	}
	if cfg.Sanity.Dataset != DefaultDataset {
		t.Errorf("Dataset = %s, want %s", cfg.Sanity.Dataset, DefaultDataset)
	}
	if cfg.Dev || cfg.Watch {
		t.Error("Dev and Watch should default to false")
	}
	if len(cfg.Joinable) != 1 || cfg.Joinable[0] != "splitFeature" {
		t.Errorf("Joinable = %v, want [splitFeature]", cfg.Joinable)
	}
	if len(cfg.Warnings) != 2 {
		t.Errorf("Warnings = %v, want project and dataset fallbacks", cfg.Warnings)
	}
	if err := cfg.RequireSource(); err != ErrNoContentSource {
		t.Errorf("RequireSource() = %v, want ErrNoContentSource", err)
	}
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("JAMB_DEV", "1")
	t.Setenv("PORT", "3000")
	t.Setenv("SANITY_STUDIO_PROJECT_ID", "abc123")
	t.Setenv("SANITY_DATASET", "staging")
	t.Setenv("SANITY_USE_CDN", "true")
	t.Setenv("JAMB_CACHE_TTL", "15")
	t.Setenv("JAMB_JOINABLE", "splitFeature, storyCards,")
	t.Setenv("JAMB_LOG_FORMAT", "json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !cfg.Dev || !cfg.Watch {
		t.Error("JAMB_DEV should enable dev mode and watching")
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %s, want :3000", cfg.Addr)
	}
	if cfg.Sanity.ProjectID != "abc123" || cfg.Sanity.Dataset != "staging" || !cfg.Sanity.UseCDN {
		t.Errorf("Sanity = %+v", cfg.Sanity)
	}
	if cfg.CacheTTL != 15*time.Second {
		t.Errorf("CacheTTL = %v, want 15s", cfg.CacheTTL)
	}
	if strings.Join(cfg.Joinable, ",") != "splitFeature,storyCards" {
		t.Errorf("Joinable = %v", cfg.Joinable)
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", cfg.Warnings)
	}
	if err := cfg.RequireSource(); err != nil {
		t.Errorf("RequireSource() = %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	t.Setenv("JAMB_ADDR", ":9090")

	path := filepath.Join(t.TempDir(), "jamb.yaml")
	data := "addr: \":7070\"\ncontentDir: ./content\nlogLevel: debug\nsanity:\n  apiVersion: \"2024-06-01\"\njoinable:\n  - splitFeature\n  - productGrid\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %s, env should win over file", cfg.Addr)
	}
	if cfg.ContentDir != "./content" || cfg.LogLevel != "debug" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Sanity.APIVersion != "2024-06-01" {
		t.Errorf("APIVersion = %s", cfg.Sanity.APIVersion)
	}
	if len(cfg.Joinable) != 2 {
		t.Errorf("Joinable = %v", cfg.Joinable)
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("a content dir needs no sanity fallbacks, got %v", cfg.Warnings)
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("JAMB_LOG_FORMAT", "xml")
	t.Setenv("JAMB_LOG_LEVEL", "loud")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "JAMB_LOG_FORMAT") || !strings.Contains(err.Error(), "JAMB_LOG_LEVEL") {
		t.Errorf("error should name both fields, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestStudioHost(t *testing.T) {
	tests := []struct {
		name       string
		host       string
		production string
		projectID  string
		expected   string
	}{
		{"branch preview", "feature-x", "jamb", "p1", "feature-x-jamb"},
		{"main branch", "main", "jamb", "p1", "jamb"},
		{"no host name", "", "jamb", "p1", "jamb"},
		{"project fallback", "feature-x", "", "p1", "p1"},
		{"nothing", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{HostName: tt.host, ProductionHostName: tt.production, Sanity: Sanity{ProjectID: tt.projectID}}
			if got := cfg.StudioHost(); got != tt.expected {
				t.Errorf("StudioHost() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStudioURL(t *testing.T) {
	cfg := &Config{ProductionHostName: "jamb"}
	if got := cfg.StudioURL(); got != "https://jamb.sanity.studio" {
		t.Errorf("StudioURL() = %q", got)
	}
	cfg.Sanity.StudioURL = "http://localhost:3333"
	if got := cfg.StudioURL(); got != "http://localhost:3333" {
		t.Errorf("StudioURL() = %q", got)
	}
}

func TestLoadEnvFiles(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("JAMB_PREVIEW_SECRET=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("JAMB_PREVIEW_SECRET") })
	os.Unsetenv("JAMB_PREVIEW_SECRET")

	if err := LoadEnvFiles(filepath.Join(t.TempDir(), "nope.env"), path); err != nil {
		t.Fatalf("LoadEnvFiles() failed: %v", err)
	}
	if got := os.Getenv("JAMB_PREVIEW_SECRET"); got != "from-file" {
		t.Errorf("JAMB_PREVIEW_SECRET = %q, want from-file", got)
	}
}
