package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/xolan/tasktime/internal/osutil"
	"github.com/xolan/tasktime/internal/taskid"
	"github.com/xolan/tasktime/internal/timeinput"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// EnvAPIURL overrides api.base_url when set
	EnvAPIURL = "TASKTIME_API_URL"
)

// Output formats accepted by default_output_format
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config represents the application configuration
type Config struct {
	// Theme is the bubbletint theme ID used by the TUI
	Theme string `toml:"theme"`
	// LogLevel is the diagnostic log level (debug, info, warn, error)
	LogLevel string `toml:"log_level"`
	// DefaultOutputFormat is the output format for task details (text, json, yaml)
	DefaultOutputFormat string `toml:"default_output_format"`
	// TaskIDPattern is the regular expression used to find task IDs in branch names
	TaskIDPattern string `toml:"task_id_pattern"`

	API  APIConfig  `toml:"api"`
	Time TimeConfig `toml:"time"`
}

// APIConfig configures the task tracker client
type APIConfig struct {
	BaseURL           string `toml:"base_url"`
	Timeout           string `toml:"timeout"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
	CacheTTL          string `toml:"cache_ttl"`
}

// TimeConfig holds the limits applied to time entries
type TimeConfig struct {
	MaxMinutes            int `toml:"max_minutes"`
	RoundingInterval      int `toml:"rounding_interval"`
	ConfirmationThreshold int `toml:"confirmation_threshold"`
	PureNumberCeiling     int `toml:"pure_number_ceiling"`
}

// DefaultConfig returns a Config with sensible defaults.
// The API base URL has no default; it must come from the file or TASKTIME_API_URL.
func DefaultConfig() Config {
	policy := timeinput.DefaultPolicy()
	return Config{
		Theme:               "dracula",
		LogLevel:            "info",
		DefaultOutputFormat: OutputText,
		TaskIDPattern:       taskid.DefaultPattern,
		API: APIConfig{
			Timeout:           "10s",
			RequestsPerMinute: 60,
			CacheTTL:          "1m",
		},
		Time: TimeConfig{
			MaxMinutes:            policy.MaxMinutes,
			RoundingInterval:      policy.RoundingInterval,
			ConfirmationThreshold: policy.ConfirmationThreshold,
			PureNumberCeiling:     policy.PureNumberCeiling,
		},
	}
}

// Policy converts the time section into a timeinput.Policy.
func (t TimeConfig) Policy() timeinput.Policy {
	return timeinput.Policy{
		MaxMinutes:            t.MaxMinutes,
		RoundingInterval:      t.RoundingInterval,
		ConfirmationThreshold: t.ConfirmationThreshold,
		PureNumberCeiling:     t.PureNumberCeiling,
	}
}

// TimeoutDuration returns the parsed request timeout.
func (a APIConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// CacheTTLDuration returns the parsed task cache TTL.
func (a APIConfig) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(a.CacheTTL)
	if err != nil {
		return time.Minute
	}
	return d
}

// GetConfigPath returns the path to the config file, creating the
// application directory if needed.
func GetConfigPath() (string, error) {
	return osutil.AppFile(ConfigFile)
}

// Load reads the config file at path, merges it over the defaults,
// applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return Config{}, fmt.Errorf("failed to parse config file: %s", perr.ErrorWithPosition())
		}
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file, falling back to defaults when the
// file does not exist. Any other failure is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnv(&cfg)
			return cfg, cfg.Validate()
		}
		return Config{}, err
	}
	return Load(path)
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.API.BaseURL = v
	}
}

// Validate checks every field and normalizes case-insensitive values in place.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}

	c.DefaultOutputFormat = strings.ToLower(strings.TrimSpace(c.DefaultOutputFormat))
	switch c.DefaultOutputFormat {
	case "":
		c.DefaultOutputFormat = OutputText
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid default_output_format %q: must be text, json or yaml", c.DefaultOutputFormat)
	}

	if _, err := taskid.New(c.TaskIDPattern); err != nil {
		return err
	}

	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid api.base_url %q: must be an http(s) URL", c.API.BaseURL)
		}
		c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	}
	if d, err := time.ParseDuration(c.API.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid api.timeout %q: must be a positive duration like 10s", c.API.Timeout)
	}
	if d, err := time.ParseDuration(c.API.CacheTTL); err != nil || d < 0 {
		return fmt.Errorf("invalid api.cache_ttl %q: must be a duration like 1m", c.API.CacheTTL)
	}
	if c.API.RequestsPerMinute <= 0 {
		return fmt.Errorf("invalid api.requests_per_minute %d: must be positive", c.API.RequestsPerMinute)
	}

	t := c.Time
	switch {
	case t.MaxMinutes <= 0:
		return fmt.Errorf("invalid time.max_minutes %d: must be positive", t.MaxMinutes)
	case t.RoundingInterval < 0:
		return fmt.Errorf("invalid time.rounding_interval %d: must not be negative", t.RoundingInterval)
	case t.ConfirmationThreshold <= 0:
		return fmt.Errorf("invalid time.confirmation_threshold %d: must be positive", t.ConfirmationThreshold)
	case t.PureNumberCeiling <= 0:
		return fmt.Errorf("invalid time.pure_number_ceiling %d: must be positive", t.PureNumberCeiling)
	}

	return nil
}

// GenerateSampleConfig renders the default configuration as TOML with
// a placeholder API URL.
func GenerateSampleConfig() (string, error) {
	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://tracker.example.com/api/v1"

	var buf bytes.Buffer
	buf.WriteString("# tasktime configuration\n")
	buf.WriteString("# All keys are optional; missing keys use the defaults shown here.\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteSampleConfig writes GenerateSampleConfig to path unless a file
// already exists there.
func WriteSampleConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	sample, err := GenerateSampleConfig()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(sample), 0644)
}

// Save writes cfg to path as TOML, replacing the file atomically.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}
