package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/3-lines-studio/jamb/internal/adapters/env"
)

const (
	DefaultAddr       = ":8080"
	DefaultDataset    = "production"
	DefaultAPIVersion = "2025-02-10"
	DefaultCacheTTL   = 60 * time.Second
	DefaultPublicDir  = "public"
	DefaultExportDir  = "out"
)

var ErrNoContentSource = errors.New("config: set SANITY_PROJECT_ID or JAMB_CONTENT_DIR")

type Sanity struct {
	ProjectID  string `yaml:"projectId"`
	Dataset    string `yaml:"dataset"`
	APIVersion string `yaml:"apiVersion"`
	Token      string `yaml:"token"`
	StudioURL  string `yaml:"studioUrl"`
	UseCDN     bool   `yaml:"useCdn"`
}

type Config struct {
	Dev           bool          `yaml:"dev"`
	Addr          string        `yaml:"addr"`
	Sanity        Sanity        `yaml:"sanity"`
	ContentDir    string        `yaml:"contentDir"`
	Watch         bool          `yaml:"watch"`
	PublicDir     string        `yaml:"publicDir"`
	ExportDir     string        `yaml:"exportDir"`
	CacheTTL      time.Duration `yaml:"cacheTTL"`
	PreviewSecret string        `yaml:"previewSecret"`
	LogLevel      string        `yaml:"logLevel"`
	LogFormat     string        `yaml:"logFormat"`
	// Joinable lists the block types whose consecutive instances share
	// spacing.
	Joinable []string `yaml:"joinable"`

	// Studio host derivation inputs.
	HostName           string `yaml:"hostName"`
	ProductionHostName string `yaml:"productionHostName"`

	// Warnings collects fallbacks applied while loading.
	Warnings []string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Addr:      DefaultAddr,
		PublicDir: DefaultPublicDir,
		ExportDir: DefaultExportDir,
		CacheTTL:  DefaultCacheTTL,
		LogLevel:  "info",
		LogFormat: "text",
		Joinable:  []string{"splitFeature"},
		Sanity: Sanity{
			APIVersion: DefaultAPIVersion,
		},
	}
}

// LoadEnvFiles loads .env style files into the process environment.
// Missing files are skipped; variables already set win.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load builds the configuration from defaults, then the optional YAML file
// at path, then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyFallbacks()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if os.Getenv(env.DevVar) != "" {
		c.Dev = env.DetectMode().IsDev()
	}
	c.Addr = getEnv("JAMB_ADDR", c.Addr)
	if port := os.Getenv("PORT"); port != "" && os.Getenv("JAMB_ADDR") == "" {
		c.Addr = ":" + port
	}

	c.Sanity.ProjectID = getEnv("SANITY_PROJECT_ID", getEnv("SANITY_STUDIO_PROJECT_ID", c.Sanity.ProjectID))
	c.Sanity.Dataset = getEnv("SANITY_DATASET", getEnv("SANITY_STUDIO_DATASET", c.Sanity.Dataset))
	c.Sanity.APIVersion = getEnv("SANITY_API_VERSION", c.Sanity.APIVersion)
	c.Sanity.Token = getEnv("SANITY_API_READ_TOKEN", c.Sanity.Token)
	c.Sanity.StudioURL = getEnv("SANITY_STUDIO_URL", c.Sanity.StudioURL)
	c.Sanity.UseCDN = getEnvBool("SANITY_USE_CDN", c.Sanity.UseCDN)

	c.ContentDir = getEnv("JAMB_CONTENT_DIR", c.ContentDir)
	c.Watch = getEnvBool("JAMB_WATCH", c.Watch || c.Dev)
	c.PublicDir = getEnv("JAMB_PUBLIC_DIR", c.PublicDir)
	c.ExportDir = getEnv("JAMB_EXPORT_DIR", c.ExportDir)
	c.CacheTTL = getEnvDuration("JAMB_CACHE_TTL", c.CacheTTL)
	c.PreviewSecret = getEnv("JAMB_PREVIEW_SECRET", c.PreviewSecret)
	c.LogLevel = getEnv("JAMB_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("JAMB_LOG_FORMAT", c.LogFormat)
	if v := os.Getenv("JAMB_JOINABLE"); v != "" {
		c.Joinable = splitList(v)
	}

	c.HostName = getEnv("HOST_NAME", c.HostName)
	c.ProductionHostName = getEnv("SANITY_STUDIO_PRODUCTION_HOSTNAME", c.ProductionHostName)
}

func (c *Config) applyFallbacks() {
	if c.ContentDir != "" {
		return
	}
	if c.Sanity.ProjectID == "" {
		c.Warnings = append(c.Warnings, "SANITY_PROJECT_ID is missing. Pages cannot be fetched until it is set.")
	}
	if c.Sanity.Dataset == "" {
		c.Sanity.Dataset = DefaultDataset
		c.Warnings = append(c.Warnings, "SANITY_DATASET is missing. Using fallback \""+DefaultDataset+"\".")
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("JAMB_ADDR must not be empty"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("JAMB_CACHE_TTL must not be negative, got %v", c.CacheTTL))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("JAMB_LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("JAMB_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// RequireSource reports whether pages can be loaded at all.
func (c *Config) RequireSource() error {
	if c.ContentDir == "" && c.Sanity.ProjectID == "" {
		return ErrNoContentSource
	}
	return nil
}

// StudioHost is the studio subdomain: a branch preview host is prefixed to
// the production host name, main uses the production name, and without
// one the project id stands in.
func (c *Config) StudioHost() string {
	if c.ProductionHostName != "" {
		if c.HostName != "" && c.HostName != "main" {
			return c.HostName + "-" + c.ProductionHostName
		}
		return c.ProductionHostName
	}
	return c.Sanity.ProjectID
}

func (c *Config) StudioURL() string {
	if c.Sanity.StudioURL != "" {
		return c.Sanity.StudioURL
	}
	if host := c.StudioHost(); host != "" {
		return "https://" + host + ".sanity.studio"
	}
	return ""
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
