package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/piwi3910/TipPlace/internal/model"
)

// parseSize reads "WIDTHxHEIGHT".
func parseSize(s string) (model.Size, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return model.Size{}, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	nums, err := parseNumbers(parts)
	if err != nil {
		return model.Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if nums[0] <= 0 || nums[1] <= 0 {
		return model.Size{}, fmt.Errorf("invalid size %q: width and height must be > 0", s)
	}
	return model.Size{Width: nums[0], Height: nums[1]}, nil
}

// parseRect reads "LEFT,TOP,WIDTH,HEIGHT". Negative sizes are normalized.
func parseRect(s string) (model.Rect, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 4 {
		return model.Rect{}, fmt.Errorf("invalid rect %q, want LEFT,TOP,WIDTH,HEIGHT", s)
	}
	nums, err := parseNumbers(parts)
	if err != nil {
		return model.Rect{}, fmt.Errorf("invalid rect %q: %w", s, err)
	}
	return model.NewRect(nums[0], nums[1], nums[2], nums[3]).Normalized(), nil
}

func parseNumbers(parts []string) ([]float64, error) {
	nums := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", p)
		}
		nums[i] = v
	}
	return nums, nil
}

// expandPatterns resolves doublestar patterns against dir and returns the
// matching files, deduplicated and sorted. A pattern that matches nothing is
// an error so typos do not produce empty reports.
func expandPatterns(dir string, patterns []string) ([]string, error) {
	seen := map[string]struct{}{}
	var matched []string
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		ms, err := doublestar.Glob(os.DirFS(dir), pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(ms) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", pattern)
		}
		for _, m := range ms {
			m = filepath.ToSlash(filepath.Clean(m))
			if _, ok := seen[m]; ok {
				continue
			}
			info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(m)))
			if err != nil || info.IsDir() {
				continue
			}
			seen[m] = struct{}{}
			matched = append(matched, m)
		}
	}
	sort.Strings(matched)

	files := make([]string, len(matched))
	for i, m := range matched {
		files[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return files, nil
}
