package service

import (
	"fmt"
	"os"

	"github.com/xolan/tasktime/internal/config"
)

// ConfigService provides operations for the configuration file
type ConfigService struct {
	configPath string
	config     config.Config
}

// NewConfigService creates a new ConfigService
func NewConfigService(configPath string, cfg config.Config) *ConfigService {
	return &ConfigService{
		configPath: configPath,
		config:     cfg,
	}
}

// Get returns the effective configuration
func (s *ConfigService) Get() config.Config {
	return s.config
}

// GetPath returns the path to the config file
func (s *ConfigService) GetPath() string {
	return s.configPath
}

// Exists checks if the config file exists
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Init creates a sample config file
func (s *ConfigService) Init() error {
	if err := config.WriteSampleConfig(s.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetTheme records the TUI theme and writes the config file.
func (s *ConfigService) SetTheme(name string) error {
	cfg := s.config
	cfg.Theme = name
	if err := config.Save(s.configPath, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	s.config = cfg
	return nil
}
