// Package config loads the user-level cargows configuration.
//
// Values come from, in increasing precedence: built-in defaults, the TOML
// file at Path(), a .env file in the working directory, and CARGOWS_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/fbkclanna/cargows/internal/registry"
	"github.com/joho/godotenv"
)

const (
	EnvAuthorName  = "CARGOWS_AUTHOR_NAME"
	EnvAuthorEmail = "CARGOWS_AUTHOR_EMAIL"
	EnvAuthorOrg   = "CARGOWS_AUTHOR_ORG"
	EnvRegistryURL = "CARGOWS_REGISTRY_URL"
	EnvLicense     = "CARGOWS_LICENSE"
	EnvJobs        = "CARGOWS_JOBS"
)

// Config holds tool defaults applied by commands when flags are absent.
type Config struct {
	Author         manifest.Author
	RegistryURL    string
	License        string
	RepositoryBase string
	Jobs           int
}

type fileConfig struct {
	Author struct {
		Name         string `toml:"name"`
		Email        string `toml:"email"`
		Organization string `toml:"organization"`
	} `toml:"author"`
	RegistryURL    string `toml:"registry_url"`
	License        string `toml:"license"`
	RepositoryBase string `toml:"repository_base"`
	Jobs           int    `toml:"jobs"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RegistryURL: registry.DefaultBaseURL,
		License:     "MIT",
		Jobs:        8,
	}
}

// Path returns the default config file location.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cargows", "config.toml")
}

// Load reads path (Path() when empty) and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}

	if path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	// A missing .env is fine; real environment variables take precedence.
	_ = godotenv.Load()
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Jobs < 1 {
		return Config{}, fmt.Errorf("load config: jobs must be at least 1, got %d", cfg.Jobs)
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	if meta.IsDefined("author", "name") {
		cfg.Author.Name = strings.TrimSpace(raw.Author.Name)
	}
	if meta.IsDefined("author", "email") {
		cfg.Author.Email = strings.TrimSpace(raw.Author.Email)
	}
	if meta.IsDefined("author", "organization") {
		cfg.Author.Organization = strings.TrimSpace(raw.Author.Organization)
	}
	if meta.IsDefined("registry_url") {
		cfg.RegistryURL = strings.TrimSpace(raw.RegistryURL)
	}
	if meta.IsDefined("license") {
		cfg.License = strings.TrimSpace(raw.License)
	}
	if meta.IsDefined("repository_base") {
		cfg.RepositoryBase = strings.TrimRight(strings.TrimSpace(raw.RepositoryBase), "/")
	}
	if meta.IsDefined("jobs") {
		cfg.Jobs = raw.Jobs
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config %s: unknown key %s", path, undecoded[0])
	}
	return nil
}

func applyEnv(cfg *Config) error {
	set := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(EnvAuthorName, &cfg.Author.Name)
	set(EnvAuthorEmail, &cfg.Author.Email)
	set(EnvAuthorOrg, &cfg.Author.Organization)
	set(EnvRegistryURL, &cfg.RegistryURL)
	set(EnvLicense, &cfg.License)

	if v := strings.TrimSpace(os.Getenv(EnvJobs)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("load config: %s: %w", EnvJobs, err)
		}
		cfg.Jobs = n
	}
	return nil
}

// RepositoryURL joins RepositoryBase and name, or returns "" when no base
// is configured.
func (c Config) RepositoryURL(name string) string {
	if c.RepositoryBase == "" || name == "" {
		return ""
	}
	return c.RepositoryBase + "/" + name
}

// HasAuthor reports whether every author field is set.
func (c Config) HasAuthor() bool {
	return c.Author.Complete()
}
