// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command seaurchin builds a convex hull from a fixture file or a
// generated sea-urchin point cloud and reports its vertex count, face
// count, and volume.
//
// Usage:
//
//	seaurchin                    # generate and hull a default point cloud
//	seaurchin -fixture cube.yaml # hull the scenario described by the file
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/gazed/hull"
	"github.com/gazed/hull/fixture"
	"github.com/gazed/hull/internal/seaurchin"
	"github.com/gazed/hull/math/lin"
)

func main() {
	fixturePath := flag.String("fixture", "", "path to a yaml point-cloud fixture; generates a sea urchin if omitted")
	divisions := flag.Int("divisions", 50, "ring divisions for the generated sea urchin (ignored with -fixture)")
	seed := flag.Int64("seed", 1, "random seed for the generated sea urchin")
	flag.Parse()

	points, maxIterations, err := loadPoints(*fixturePath, *divisions, *seed)
	if err != nil {
		slog.Error("seaurchin: load points", "err", err)
		os.Exit(1)
	}

	h, err := hull.Construct(points, maxIterations)
	if err != nil {
		slog.Error("seaurchin: construct", "err", err)
		os.Exit(1)
	}

	verts, triples := hull.VerticesAndIndices(h)
	fmt.Printf("vertices: %d\n", len(verts))
	fmt.Printf("faces:    %d\n", len(triples)/3)
	fmt.Printf("volume:   %v\n", hull.Volume(h))
}

func loadPoints(fixturePath string, divisions int, seed int64) ([]lin.V3, *int, error) {
	if fixturePath == "" {
		rng := rand.New(rand.NewSource(seed))
		return seaurchin.Generate(rng, divisions), nil, nil
	}

	data, err := os.ReadFile(fixturePath)
	if err != nil {
		return nil, nil, fmt.Errorf("seaurchin: %w", err)
	}
	scenario, err := fixture.Load(data)
	if err != nil {
		return nil, nil, fmt.Errorf("seaurchin: %w", err)
	}
	return scenario.Points, scenario.MaxIterations, nil
}
