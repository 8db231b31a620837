package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures holocron's runtime settings.
type Config struct {
	FilmURL        string
	Title          string
	Timeout        time.Duration
	LogDir         string
	LogLevel       string
	MaxConcurrency int
}

const (
	defaultConfigPath = "~/.config/holocron/config.toml"
	defaultLogDir     = "~/.local/state/holocron"
	defaultFilmURL    = "https://swapi.dev/api/films/2/"
	defaultTitle      = "Empire Strikes Back - Species Listing"
	defaultTimeout    = 10 * time.Second
	defaultLogLevel   = "INFO"
	logFileName       = "holocron.log"
)

// Default returns the built-in configuration with paths expanded.
func Default() Config {
	return Config{
		FilmURL:  defaultFilmURL,
		Title:    defaultTitle,
		Timeout:  defaultTimeout,
		LogDir:   mustExpand(defaultLogDir),
		LogLevel: defaultLogLevel,
	}
}

// Load reads the config file at path (or the default location), falling back to
// defaults when it is missing, then applies HOLOCRON_* environment overrides.
func Load(path string) (Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		FilmURL        string `toml:"film_url"`
		Title          string `toml:"title"`
		Timeout        string `toml:"timeout"`
		LogDir         string `toml:"log_dir"`
		LogLevel       string `toml:"log_level"`
		MaxConcurrency int    `toml:"max_concurrency"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.FilmURL); v != "" {
		cfg.FilmURL = v
	}
	if v := strings.TrimSpace(raw.Title); v != "" {
		cfg.Title = v
	}
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToUpper(v)
	}
	if raw.MaxConcurrency > 0 {
		cfg.MaxConcurrency = raw.MaxConcurrency
	}
	return cfg, nil
}

// envOverrides lists the variables ApplyEnv honours. Unset values keep the
// current setting.
type envOverrides struct {
	FilmURL        string        `env:"HOLOCRON_FILM_URL"`
	Title          string        `env:"HOLOCRON_TITLE"`
	Timeout        time.Duration `env:"HOLOCRON_TIMEOUT"`
	LogDir         string        `env:"HOLOCRON_LOG_DIR"`
	LogLevel       string        `env:"HOLOCRON_LOG_LEVEL"`
	MaxConcurrency int           `env:"HOLOCRON_MAX_CONCURRENCY"`
}

// ApplyEnv overlays HOLOCRON_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if v := strings.TrimSpace(o.FilmURL); v != "" {
		cfg.FilmURL = v
	}
	if v := strings.TrimSpace(o.Title); v != "" {
		cfg.Title = v
	}
	if o.Timeout > 0 {
		cfg.Timeout = o.Timeout
	}
	if v := strings.TrimSpace(o.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(o.LogLevel); v != "" {
		cfg.LogLevel = strings.ToUpper(v)
	}
	if o.MaxConcurrency > 0 {
		cfg.MaxConcurrency = o.MaxConcurrency
	}
	return nil
}

// LogPath returns the path to holocron's log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/" + logFileName)
	}
	return filepath.Join(c.LogDir, logFileName)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
