package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/altinukshini/dnafinder/internal/model"
)

const (
	envPrefix      = "DNA"
	configFileName = "config.toml"
	appDirName     = "dnafinder"

	DefaultAPIURL       = "http://localhost:8000"
	DefaultTimeout      = 60 * time.Second
	DefaultHistoryLimit = 10
)

type SearchMode string

const (
	// SearchModeTwoStep uploads the CSV first and searches by file_id.
	SearchModeTwoStep SearchMode = "two-step"
	// SearchModeSingle sends file, pattern and algorithm in one multipart request.
	SearchModeSingle SearchMode = "single"
)

func ParseSearchMode(s string) (SearchMode, error) {
	switch m := SearchMode(s); m {
	case SearchModeTwoStep, SearchModeSingle:
		return m, nil
	}
	return "", fmt.Errorf("search_mode %q must be %q or %q", s, SearchModeTwoStep, SearchModeSingle)
}

type Config struct {
	APIURL       string
	Timeout      time.Duration
	StatePath    string
	LogPath      string
	HistoryLimit int
	Algorithm    model.Algorithm
	SearchMode   SearchMode
	ExportDir    string
	Debug        bool
}

// fileConfig mirrors Config as it appears in config.toml.
type fileConfig struct {
	APIURL       string `toml:"api_url"`
	Timeout      string `toml:"timeout"`
	StatePath    string `toml:"state_path"`
	LogPath      string `toml:"log_path"`
	HistoryLimit int    `toml:"history_limit"`
	Algorithm    string `toml:"algorithm"`
	SearchMode   string `toml:"search_mode"`
	ExportDir    string `toml:"export_dir"`
}

// Load reads config.toml from the user config dir (or configPath when set)
// and overlays DNA_* environment variables.
func Load(configPath string) (Config, error) {
	dir := AppDir()

	v := viper.New()
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", DefaultTimeout.String())
	v.SetDefault("state_path", filepath.Join(dir, "state.db"))
	v.SetDefault("log_path", filepath.Join(dir, "dnafinder.log"))
	v.SetDefault("history_limit", DefaultHistoryLimit)
	v.SetDefault("algorithm", string(model.AlgorithmKMP))
	v.SetDefault("search_mode", string(SearchModeTwoStep))
	v.SetDefault("export_dir", ".")
	v.SetDefault("debug", false)

	if configPath == "" {
		configPath = filepath.Join(dir, configFileName)
	}
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	timeout, err := ParseTimeout(v.GetString("timeout"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:       strings.TrimRight(v.GetString("api_url"), "/"),
		Timeout:      timeout,
		StatePath:    v.GetString("state_path"),
		LogPath:      v.GetString("log_path"),
		HistoryLimit: v.GetInt("history_limit"),
		Algorithm:    model.Algorithm(v.GetString("algorithm")),
		SearchMode:   SearchMode(v.GetString("search_mode")),
		ExportDir:    v.GetString("export_dir"),
		Debug:        v.GetBool("debug"),
	}
	return cfg, cfg.Validate()
}

// ParseTimeout reads a duration such as "60s" or "1m". A bare number is a
// count of seconds.
func ParseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTimeout, nil
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("timeout %q is not a duration", raw)
	}
	return d, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q is not an absolute URL", c.APIURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.Timeout > 0 && c.Timeout < time.Second {
		return fmt.Errorf("timeout %s is under one second", c.Timeout)
	}
	if _, err := model.ParseAlgorithm(string(c.Algorithm)); err != nil {
		return err
	}
	if _, err := ParseSearchMode(string(c.SearchMode)); err != nil {
		return err
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive")
	}
	return nil
}

// AppDir is the per-user directory holding config, state and logs.
func AppDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, appDirName)
}

// WriteDefault writes a config.toml populated with the defaults and returns
// its path. It refuses to overwrite an existing file.
func WriteDefault(path string) (string, error) {
	if path == "" {
		path = filepath.Join(AppDir(), configFileName)
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file %s already exists", path)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(fileConfig{
		APIURL:       DefaultAPIURL,
		Timeout:      DefaultTimeout.String(),
		StatePath:    filepath.Join(AppDir(), "state.db"),
		LogPath:      filepath.Join(AppDir(), "dnafinder.log"),
		HistoryLimit: DefaultHistoryLimit,
		Algorithm:    string(model.AlgorithmKMP),
		SearchMode:   string(SearchModeTwoStep),
		ExportDir:    ".",
	})
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
