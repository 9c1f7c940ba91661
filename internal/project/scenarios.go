package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/TipPlace/internal/model"
)

// SaveScenarios writes a scenario set to a JSON file, creating parent directories.
func SaveScenarios(path string, set model.ScenarioSet) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadScenarios reads a scenario set from a JSON file. Target rectangles are
// normalized so files may give either edges or sizes.
func LoadScenarios(path string) (model.ScenarioSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.ScenarioSet{}, fmt.Errorf("scenario file %q not found", path)
		}
		return model.ScenarioSet{}, err
	}

	set := model.NewScenarioSet("")
	if err := json.Unmarshal(data, &set); err != nil {
		return model.ScenarioSet{}, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	if err := set.Config.Validate(); err != nil {
		return model.ScenarioSet{}, fmt.Errorf("invalid config in scenario file: %w", err)
	}

	for i, s := range set.Scenarios {
		set.Scenarios[i].Target = s.Target.Normalized()
		if s.Placement != "" && !s.Placement.Valid() {
			return model.ScenarioSet{}, fmt.Errorf("scenario %d (%s): unknown placement %q", i+1, s.Label, s.Placement)
		}
	}
	if set.Scenarios == nil {
		set.Scenarios = []model.Scenario{}
	}
	if set.Name == "" {
		set.Name = filepath.Base(path)
	}
	return set, nil
}
