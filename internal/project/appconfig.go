package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/TipPlace/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.tipplace/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".tipplace")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// SaveConfig persists a Config to the given path. Paths ending in .yaml or
// .yml are written as YAML, everything else as JSON. Missing parent
// directories are created.
func SaveConfig(path string, config model.Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadConfig reads a Config from the given path.
// If the file does not exist, it returns DefaultConfig with no error.
// Fields absent from the file keep their default values.
func LoadConfig(path string) (model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultConfig(), nil
		}
		return model.Config{}, err
	}

	config := model.DefaultConfig()
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&config); err != nil {
			return model.Config{}, fmt.Errorf("parse YAML in %q: %w", path, err)
		}
	} else if err := json.Unmarshal(data, &config); err != nil {
		return model.Config{}, fmt.Errorf("parse JSON in %q: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return model.Config{}, fmt.Errorf("invalid config in %q: %w", path, err)
	}
	// Ensure RecentReports is never nil
	if config.RecentReports == nil {
		config.RecentReports = []string{}
	}
	return config, nil
}

// Environment variables that override spacing values.
const (
	EnvGap         = "TIPPLACE_GAP"
	EnvViewportPad = "TIPPLACE_VIEWPORT_PAD"
	EnvMinArrowPad = "TIPPLACE_MIN_ARROW_PAD"
	EnvArrowSize   = "TIPPLACE_ARROW_SIZE"
)

// ApplyEnv overlays spacing overrides from the environment onto config.
// lookup is normally os.LookupEnv. Values that do not parse as finite,
// non-negative numbers are ignored.
func ApplyEnv(config model.Config, lookup func(string) (string, bool)) model.Config {
	overrides := []struct {
		key   string
		field *float64
	}{
		{EnvGap, &config.Gap},
		{EnvViewportPad, &config.ViewportPad},
		{EnvMinArrowPad, &config.MinArrowPad},
		{EnvArrowSize, &config.ArrowSize},
	}
	for _, o := range overrides {
		raw, ok := lookup(o.key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		*o.field = v
	}
	return config
}

// LoadEffectiveConfig loads the config file at path and applies environment
// overrides on top of it.
func LoadEffectiveConfig(path string) (model.Config, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return model.Config{}, err
	}
	return ApplyEnv(config, os.LookupEnv), nil
}
