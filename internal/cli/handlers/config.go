package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/config"
)

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	baseURL := cfg.API.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("(not set, use api.base_url or %s)", config.EnvAPIURL)
	}

	rows := []struct{ key, value string }{
		{"theme", cfg.Theme},
		{"log_level", cfg.LogLevel},
		{"default_output_format", cfg.DefaultOutputFormat},
		{"task_id_pattern", cfg.TaskIDPattern},
		{"api.base_url", baseURL},
		{"api.timeout", cfg.API.Timeout},
		{"api.requests_per_minute", fmt.Sprint(cfg.API.RequestsPerMinute)},
		{"api.cache_ttl", cfg.API.CacheTTL},
		{"time.max_minutes", fmt.Sprint(cfg.Time.MaxMinutes)},
		{"time.rounding_interval", fmt.Sprint(cfg.Time.RoundingInterval)},
		{"time.confirmation_threshold", fmt.Sprint(cfg.Time.ConfirmationThreshold)},
		{"time.pure_number_ceiling", fmt.Sprint(cfg.Time.PureNumberCeiling)},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(deps.Stdout, "%-28s %s\n", r.key+":", r.value)
	}
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	err := deps.Services.Config.Init()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to set api.base_url and customize your settings.")
}
