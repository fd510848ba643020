package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/patchwork-go/patchwork"
)

// fileConfig mirrors patchwork.Config field-for-field, but with YAML tags
// and every field optional: a field absent from the file leaves the
// default alone, while a zero value present in the file sets it to zero.
type fileConfig struct {
	DiffTimeout          *time.Duration `yaml:"diffTimeout"`
	DiffEditCost         *int           `yaml:"diffEditCost"`
	MatchDistance        *int           `yaml:"matchDistance"`
	MatchMaxBits         *int           `yaml:"matchMaxBits"`
	MatchThreshold       *float64       `yaml:"matchThreshold"`
	PatchDeleteThreshold *float64       `yaml:"patchDeleteThreshold"`
	PatchMargin          *int           `yaml:"patchMargin"`
}

// loadConfig reads path (if non-empty) as YAML and layers it on top of
// patchwork.NewDefaultConfig.
func loadConfig(path string) (*patchwork.Config, error) {
	cfg := patchwork.NewDefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, err
	}
	if fc.DiffTimeout != nil {
		cfg.DiffTimeout = *fc.DiffTimeout
	}
	if fc.DiffEditCost != nil {
		cfg.DiffEditCost = *fc.DiffEditCost
	}
	if fc.MatchDistance != nil {
		cfg.MatchDistance = *fc.MatchDistance
	}
	if fc.MatchMaxBits != nil {
		cfg.MatchMaxBits = *fc.MatchMaxBits
	}
	if fc.MatchThreshold != nil {
		cfg.MatchThreshold = *fc.MatchThreshold
	}
	if fc.PatchDeleteThreshold != nil {
		cfg.PatchDeleteThreshold = *fc.PatchDeleteThreshold
	}
	if fc.PatchMargin != nil {
		cfg.PatchMargin = *fc.PatchMargin
	}
	return cfg, nil
}
