package pattern

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds store-level settings, currently just the default scaff
// used when commands omit an explicit pattern name. It lives next to the
// patterns as config.json.
type Config struct {
	DefaultScaff string `json:"default_scaff,omitempty"`
}

// LoadConfig reads the store config. A missing file yields an empty
// config.
func (s *Store) LoadConfig() (*Config, error) {
	path := filepath.Join(s.dir, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading store config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing store config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig writes the store config.
func (s *Store) SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store config: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, configFileName), data, 0o644)
}

// SetDefaultScaff records name as the default scaff after verifying it
// exists in the store.
func (s *Store) SetDefaultScaff(name string) error {
	if _, err := s.Load(name); err != nil {
		return err
	}
	cfg, err := s.LoadConfig()
	if err != nil {
		return err
	}
	cfg.DefaultScaff = name
	return s.SaveConfig(cfg)
}

// DefaultScaff returns the configured default scaff name, or "" when none
// is set.
func (s *Store) DefaultScaff() (string, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return "", err
	}
	return cfg.DefaultScaff, nil
}

// ClearDefaultScaff removes the default scaff setting.
func (s *Store) ClearDefaultScaff() error {
	cfg, err := s.LoadConfig()
	if err != nil {
		return err
	}
	cfg.DefaultScaff = ""
	return s.SaveConfig(cfg)
}
