// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package seaurchin generates the spiky sphere-like point cloud shared by
// the hull benchmark and fuzz harnesses: a ring-sampled unit sphere with
// each point's radius independently jittered, then shuffled so insertion
// order carries no geometric information.
package seaurchin

import (
	"math"
	"math/rand"

	"github.com/gazed/hull/math/lin"
)

func rotX(p lin.V3, angle float64) lin.V3 {
	s, c := math.Sincos(angle)
	return lin.V3{X: p.X, Y: c*p.Y - s*p.Z, Z: s*p.Y + c*p.Z}
}

func rotZ(p lin.V3, angle float64) lin.V3 {
	s, c := math.Sincos(angle)
	return lin.V3{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y, Z: p.Z}
}

// Generate returns divisions*divisions points arranged on rings around
// the unit sphere, each scaled by an independent uniform random radius in
// [0,1), then shuffled with rng.
func Generate(rng *rand.Rand, divisions int) []lin.V3 {
	points := make([]lin.V3, 0, divisions*divisions)
	unitY := lin.V3{X: 0, Y: 1, Z: 0}
	for stepX := 0; stepX < divisions; stepX++ {
		angleX := 2 * math.Pi * (float64(stepX) / float64(divisions))
		p := rotX(unitY, angleX)
		for stepZ := 0; stepZ < divisions; stepZ++ {
			angleZ := 2 * math.Pi * (float64(stepZ) / float64(divisions))
			ringPoint := rotZ(p, angleZ)
			radius := rng.Float64()
			ringPoint.Scale(&ringPoint, radius)
			points = append(points, ringPoint)
		}
	}
	rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})
	return points
}

// SpherePoints returns divisions*divisions points exactly on the unit
// sphere, unshuffled: used where a clean (non-jittered) sphere is wanted.
func SpherePoints(divisions int) []lin.V3 {
	points := make([]lin.V3, 0, divisions*divisions)
	unitY := lin.V3{X: 0, Y: 1, Z: 0}
	for stepX := 0; stepX < divisions; stepX++ {
		angleX := 2 * math.Pi * (float64(stepX) / float64(divisions))
		p := rotX(unitY, angleX)
		for stepZ := 0; stepZ < divisions; stepZ++ {
			angleZ := 2 * math.Pi * (float64(stepZ) / float64(divisions))
			points = append(points, rotZ(p, angleZ))
		}
	}
	return points
}
