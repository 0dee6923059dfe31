package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Workspace struct {
		Root        string   `yaml:"root"`
		Ignore      []string `yaml:"ignore"`
		LibraryDirs []string `yaml:"library_dirs"`
	} `yaml:"workspace"`
	Detection struct {
		MaxDepth     int `yaml:"max_depth"`      // 0 = unlimited
		MaxRetries   int `yaml:"max_retries"`    // provider warm-up attempts
		RetryDelayMS int `yaml:"retry_delay_ms"` // fixed delay between attempts
		DebounceMS   int `yaml:"debounce_ms"`    // re-trigger cadence, used by callers
	} `yaml:"detection"`
}

// Load reads the YAML config, applying .env and environment overrides on top.
// A missing file yields defaults rather than an error.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := defaults()

	// 2. Load YAML config
	if file, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with environment variables if present
	if root := os.Getenv("PYLENS_ROOT"); root != "" {
		cfg.Workspace.Root = root
	}
	if depth := os.Getenv("PYLENS_MAX_DEPTH"); depth != "" {
		if v, err := strconv.Atoi(depth); err == nil && v >= 0 {
			cfg.Detection.MaxDepth = v
		}
	}
	if retries := os.Getenv("PYLENS_MAX_RETRIES"); retries != "" {
		if v, err := strconv.Atoi(retries); err == nil && v > 0 {
			cfg.Detection.MaxRetries = v
		}
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Workspace.Root = "."
	cfg.Workspace.LibraryDirs = []string{".venv", "venv", "site-packages", "vendor"}
	cfg.Detection.MaxDepth = 3
	cfg.Detection.MaxRetries = 5
	cfg.Detection.RetryDelayMS = 300
	cfg.Detection.DebounceMS = 500
	return cfg
}
