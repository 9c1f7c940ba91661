// Package ui provides the TipPlace demo application UI components.
//
// This file defines the application theme and its light/dark/system variants.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// TipPlaceTheme wraps the default Fyne theme with a fixed or system-following
// variant and slightly tighter sizing around tooltips.
type TipPlaceTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewTipPlaceTheme creates a theme for a Config.Theme value: "light", "dark",
// or anything else to follow the system.
func NewTipPlaceTheme(name string) *TipPlaceTheme {
	t := &TipPlaceTheme{base: theme.DefaultTheme()}
	t.SetVariantName(name)
	return t
}

// SetVariantName switches between light, dark, and system variants.
func (t *TipPlaceTheme) SetVariantName(name string) {
	switch name {
	case "light":
		t.variant, t.system = theme.VariantLight, false
	case "dark":
		t.variant, t.system = theme.VariantDark, false
	default:
		t.system = true
	}
}

// Color delegates to the base theme with the stored variant unless the
// system variant is followed.
func (t *TipPlaceTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.system {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *TipPlaceTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *TipPlaceTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size tightens text and padding so tooltip bubbles stay compact.
func (t *TipPlaceTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
