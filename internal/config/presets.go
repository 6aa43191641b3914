package config

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// DefaultPreset is used when an input document names no rule set.
const DefaultPreset = "standard"

type presetCatalog struct {
	Presets []yaml.Node `yaml:"presets"`
}

// LoadPresets decodes a preset catalog. Every entry overlays StandardRules and
// must pass RuleConfiguration.Validate.
func LoadPresets(data []byte) ([]domain.RuleConfiguration, error) {
	var catalog presetCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse preset catalog: %w", err)
	}

	seen := make(map[string]bool, len(catalog.Presets))
	presets := make([]domain.RuleConfiguration, 0, len(catalog.Presets))
	for i := range catalog.Presets {
		rules := domain.StandardRules()
		rules.Description = ""
		if err := catalog.Presets[i].Decode(&rules); err != nil {
			return nil, fmt.Errorf("preset %d: %w", i, err)
		}
		if rules.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i)
		}
		if seen[rules.Name] {
			return nil, fmt.Errorf("duplicate preset %q", rules.Name)
		}
		seen[rules.Name] = true
		if err := rules.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", rules.Name, err)
		}
		presets = append(presets, rules)
	}
	return presets, nil
}

// Presets returns the built-in rule sets in catalog order.
func Presets() []domain.RuleConfiguration {
	presets, err := LoadPresets(presetsYAML)
	if err != nil {
		// the catalog is compiled in; a failure here is a build defect
		panic(err)
	}
	return presets
}

// PresetNames lists the built-in rule set names.
func PresetNames() []string {
	presets := Presets()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// Preset returns the built-in rule set with the given name.
func Preset(name string) (domain.RuleConfiguration, error) {
	if name == "" {
		name = DefaultPreset
	}
	for _, p := range Presets() {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return domain.RuleConfiguration{}, domain.NewComputationError(domain.KindInvalidInput, "rule_set", name,
		"unknown rule set; available: "+strings.Join(PresetNames(), ", "))
}
