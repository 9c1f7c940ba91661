package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TipPlace/internal/model"
)

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultConfig()
	cfg.Gap = 10
	cfg.Theme = "dark"
	cfg.UseNative = false
	cfg.RecentReports = []string{"/tmp/a.pdf", "/tmp/b.xlsx"}

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Gap != 10 {
		t.Errorf("expected Gap=10, got %f", loaded.Gap)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if loaded.UseNative {
		t.Error("expected UseNative=false")
	}
	if len(loaded.RecentReports) != 2 {
		t.Errorf("expected 2 recent reports, got %d", len(loaded.RecentReports))
	}
}

func TestSaveAndLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := model.DefaultConfig()
	cfg.ViewportPad = 6
	cfg.Debug = true
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 || data[0] == '{' {
		t.Fatalf("expected YAML output, got %q", data)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.ViewportPad != 6 || !loaded.Debug {
		t.Errorf("unexpected round trip: %+v", loaded)
	}
}

func TestLoadConfigPartialYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("gap: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Gap != 12 {
		t.Errorf("expected Gap=12, got %f", cfg.Gap)
	}
	if cfg.MinArrowPad != model.DefaultMinArrowPad {
		t.Errorf("expected default MinArrowPad, got %f", cfg.MinArrowPad)
	}
}

func TestLoadConfigYAMLUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gap: 12\nspacing: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unknown YAML field")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultConfig()
	if cfg.Gap != defaults.Gap {
		t.Errorf("expected default gap %f, got %f", defaults.Gap, cfg.Gap)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestLoadConfigRejectsNegativeSpacing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"gap":-3}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for negative gap")
	}
}

func TestSaveConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "config.json")

	if err := SaveConfig(path, model.DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadConfigNilRecentReports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"gap":8,"theme":"light","recent_reports":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.RecentReports == nil {
		t.Error("RecentReports should not be nil after loading")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvGap:         "14",
		EnvViewportPad: " 2.5 ",
		EnvMinArrowPad: "wide",
		EnvArrowSize:   "-1",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := ApplyEnv(model.DefaultConfig(), lookup)
	if cfg.Gap != 14 {
		t.Errorf("expected Gap=14, got %f", cfg.Gap)
	}
	if cfg.ViewportPad != 2.5 {
		t.Errorf("expected ViewportPad=2.5, got %f", cfg.ViewportPad)
	}
	if cfg.MinArrowPad != model.DefaultMinArrowPad {
		t.Errorf("unparsable override should be ignored, got %f", cfg.MinArrowPad)
	}
	if cfg.ArrowSize != model.DefaultArrowSize {
		t.Errorf("negative override should be ignored, got %f", cfg.ArrowSize)
	}
}

func TestLoadEffectiveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv(EnvGap, "20")

	cfg, err := LoadEffectiveConfig(path)
	if err != nil {
		t.Fatalf("LoadEffectiveConfig failed: %v", err)
	}
	if cfg.Gap != 20 {
		t.Errorf("expected environment gap 20, got %f", cfg.Gap)
	}
}
