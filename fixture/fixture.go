// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package fixture loads named point-cloud scenarios from yaml, for use by
// the command-line demo when a fixed, human-editable input is wanted
// instead of a generated one.
package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gazed/hull/math/lin"
)

// Scenario is a named point cloud with an optional iteration cap, as
// loaded from a yaml fixture file.
type Scenario struct {
	Name          string
	Points        []lin.V3
	MaxIterations *int
}

// scenarioConfig mirrors the on-disk yaml layout. Points are read as
// plain [x,y,z] triples so fixture files stay easy to hand-edit.
type scenarioConfig struct {
	Name          string      `yaml:"name"`
	MaxIterations *int        `yaml:"max_iterations"`
	Points        [][3]float64 `yaml:"points"`
}

// Load parses a yaml scenario from data.
func Load(data []byte) (*Scenario, error) {
	var cfg scenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("fixture: yaml %w", err)
	}
	if len(cfg.Points) == 0 {
		return nil, fmt.Errorf("fixture: %s has no points", cfg.Name)
	}

	points := make([]lin.V3, len(cfg.Points))
	for i, p := range cfg.Points {
		points[i] = lin.V3{X: p[0], Y: p[1], Z: p[2]}
	}

	return &Scenario{
		Name:          cfg.Name,
		Points:        points,
		MaxIterations: cfg.MaxIterations,
	}, nil
}
