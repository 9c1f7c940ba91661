package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/TipPlace/internal/model"
)

func TestParseSize(t *testing.T) {
	s, err := parseSize(" 1280X800 ")
	require.NoError(t, err)
	assert.Equal(t, model.Size{Width: 1280, Height: 800}, s)

	for _, bad := range []string{"", "1280", "1280x", "axb", "0x10", "10x-1", "1x2x3"} {
		_, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseRect(t *testing.T) {
	r, err := parseRect("10, 20, 30, 40")
	require.NoError(t, err)
	assert.Equal(t, model.NewRect(10, 20, 30, 40), r)

	r, err = parseRect("50,50,-20,-10")
	require.NoError(t, err)
	assert.Equal(t, model.NewRect(30, 40, 20, 10), r)

	_, err = parseRect("1,2,3")
	assert.Error(t, err)
	_, err = parseRect("1,2,3,x")
	assert.Error(t, err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), "x")
	writeFile(t, filepath.Join(dir, "nested", "deep", "b.csv"), "x")
	writeFile(t, filepath.Join(dir, "nested", "c.json"), "x")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dir.csv"), 0755))

	files, err := expandPatterns(dir, []string{"**/*.csv", "a.csv"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.csv"),
		filepath.Join(dir, "nested", "deep", "b.csv"),
	}, files)

	files, err = expandPatterns(dir, []string{"nested/*.{csv,json}"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "nested", "c.json")}, files)

	_, err = expandPatterns(dir, []string{"*.xlsx"})
	assert.Error(t, err)
}

// run executes tipctl with a config path that does not exist, so defaults apply.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestPlaceCommandJSON(t *testing.T) {
	out, err := run(t, "place", "--viewport", "1280x800", "--target", "500,400,80,30", "--tooltip", "160x40", "--json")
	require.NoError(t, err)

	var layout model.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	assert.Equal(t, model.PlacementTop, layout.Placement)
	assert.Len(t, layout.Candidates, len(model.PriorityOrder))
	assert.InDelta(t, 460.0, layout.Position.X, 1e-9)
}

func TestPlaceCommandTable(t *testing.T) {
	out, err := run(t, "place", "--viewport", "400x300", "--target", "180,5,40,20", "--tooltip", "120x30")
	require.NoError(t, err)
	// Nothing fits above; bottom-start outranks bottom.
	assert.Contains(t, out, "Placement:    bottom-start\n")
	assert.Contains(t, out, "*bottom-start")
	assert.Contains(t, out, "CANDIDATE")
}

func TestPlaceCommandForcedPlacement(t *testing.T) {
	out, err := run(t, "place", "--target", "500,400,80,30", "--tooltip", "160x40", "-p", "LEFT", "--json")
	require.NoError(t, err)

	var layout model.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	assert.Equal(t, model.PlacementLeft, layout.Placement)

	_, err = run(t, "place", "--target", "500,400,80,30", "--tooltip", "160x40", "-p", "sideways")
	assert.Error(t, err)
}

func TestPlaceCommandRequiresTarget(t *testing.T) {
	_, err := run(t, "place", "--tooltip", "160x40")
	assert.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scenarios", "menu.csv"),
		"label,viewport_w,viewport_h,left,top,width,height,tip_w,tip_h\n"+
			"File,1280,800,10,10,60,24,160,40\n"+
			"Center,1280,800,600,380,80,30,160,40\n")
	writeFile(t, filepath.Join(dir, "scenarios", "notes.txt"), "ignored")

	out := filepath.Join(dir, "report.xlsx")
	stdout, err := run(t, "report", "--dir", dir, "--out", out, "scenarios/*.csv")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 scenarios")

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestReportCommandRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"),
		"label,viewport_w,viewport_h,left,top,width,height,tip_w,tip_h\n"+
			"A,1280,800,10,10,60,24,160,40\n")

	_, err := run(t, "report", "--dir", dir, "--out", filepath.Join(dir, "out.png"), "a.csv")
	assert.Error(t, err)
}

func TestReportCommandStrict(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "nope")

	_, err := run(t, "report", "--dir", dir, "--strict", "--out", filepath.Join(dir, "r.pdf"), "a.txt")
	assert.Error(t, err)

	_, err = run(t, "report", "--dir", dir, "--out", filepath.Join(dir, "r.pdf"), "a.txt")
	assert.ErrorContains(t, err, "no scenarios")
}

func TestConfigShowAndInit(t *testing.T) {
	out, err := run(t, "config", "show")
	require.NoError(t, err)

	var cfg model.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, model.DefaultConfig().Gap, cfg.Gap)

	path := filepath.Join(t.TempDir(), "tipplace.yaml")
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--config", path, "config", "init"})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, path)

	cmd = newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--config", path, "config", "init"})
	assert.Error(t, cmd.Execute())
}
