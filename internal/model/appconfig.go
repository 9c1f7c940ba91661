package model

import (
	"fmt"
	"math"
)

// Default spacing values, in device-independent units.
const (
	DefaultGap         = 8.0
	DefaultViewportPad = 4.0
	DefaultMinArrowPad = 12.0
	DefaultArrowSize   = 8.0
)

// Config holds the tooltip spacing constants and application preferences.
// It is read once at setup; components copy it and never mutate the copy.
type Config struct {
	// Spacing used by the placement engine
	Gap         float64 `json:"gap" yaml:"gap"`                     // target edge to tooltip edge
	ViewportPad float64 `json:"viewport_pad" yaml:"viewport_pad"`   // minimum margin to the viewport edge
	MinArrowPad float64 `json:"min_arrow_pad" yaml:"min_arrow_pad"` // arrow never closer than this to a tooltip corner
	ArrowSize   float64 `json:"arrow_size" yaml:"arrow_size"`

	// Rendering preferences
	UseNative bool `json:"use_native" yaml:"use_native"` // prefer anchored positioning when the platform supports it
	Debug     bool `json:"debug" yaml:"debug"`           // keep the tooltip visible after the pointer leaves

	// Application preferences
	Theme         string   `json:"theme" yaml:"theme"` // "light", "dark", "system"
	RecentReports []string `json:"recent_reports" yaml:"recent_reports"`
}

// DefaultConfig returns a Config populated with the standard spacing.
func DefaultConfig() Config {
	return Config{
		Gap:           DefaultGap,
		ViewportPad:   DefaultViewportPad,
		MinArrowPad:   DefaultMinArrowPad,
		ArrowSize:     DefaultArrowSize,
		UseNative:     true,
		Theme:         "system",
		RecentReports: []string{},
	}
}

// Validate rejects spacing values the engine cannot work with.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"gap", c.Gap},
		{"viewport_pad", c.ViewportPad},
		{"min_arrow_pad", c.MinArrowPad},
		{"arrow_size", c.ArrowSize},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be a finite number", f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%s must not be negative, got %g", f.name, f.value)
		}
	}
	switch c.Theme {
	case "", "light", "dark", "system":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	return nil
}

// AddRecentReport records path at the front of the recent report list,
// dropping duplicates and keeping at most max entries.
func (c *Config) AddRecentReport(path string, max int) {
	list := []string{path}
	for _, p := range c.RecentReports {
		if p != path {
			list = append(list, p)
		}
	}
	if max > 0 && len(list) > max {
		list = list[:max]
	}
	c.RecentReports = list
}
