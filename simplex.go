// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package hull

import (
	"log/slog"

	"github.com/gazed/hull/math/lin"
)

// extremes finds, in a single pass, the indices of the minimum and
// maximum point along each axis. Ties keep the first point encountered
// for a minimum and the first strictly-greater point for a maximum,
// matching spec.md §4.3 step 1.
func extremes(points []lin.V3) (min, max [3]int) {
	for axis := 0; axis < 3; axis++ {
		min[axis], max[axis] = 0, 0
	}
	for i := 1; i < len(points); i++ {
		p := &points[i]
		coords := [3]float64{p.X, p.Y, p.Z}
		for axis := 0; axis < 3; axis++ {
			c := coords[axis]
			minCoord := axisCoord(&points[min[axis]], axis)
			maxCoord := axisCoord(&points[max[axis]], axis)
			if c < minCoord {
				min[axis] = i
			} else if c > maxCoord {
				max[axis] = i
			}
		}
	}
	return min, max
}

func axisCoord(p *lin.V3, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// initialSimplexIndices implements spec.md §4.3 steps 1-6: pick the four
// point indices that will seed the hull's first tetrahedron, or report
// which kind of degeneracy prevented it.
func initialSimplexIndices(points []lin.V3) ([4]int, *Error) {
	var indices [4]int

	min, max := extremes(points)

	maxExtent := 0.0
	axis := 0
	for a := 0; a < 3; a++ {
		extent := axisCoord(&points[max[a]], a) - axisCoord(&points[min[a]], a)
		if extent > maxExtent {
			maxExtent = extent
			axis = a
		}
	}
	if maxExtent == 0 {
		return indices, errDegenerateInput(Coincident)
	}

	indices[0] = max[axis]
	indices[1] = min[axis]

	v0, v1 := &points[indices[0]], &points[indices[1]]
	var u lin.V3
	u.Sub(v1, v0)
	u.Unit()

	maxSqDist := 0.0
	var normal lin.V3
	for i := range points {
		if i == indices[0] || i == indices[1] {
			continue
		}
		var diff, cross lin.V3
		diff.Sub(&points[i], v0)
		cross.Cross(&u, &diff)
		sqDist := cross.LenSqr()
		if sqDist > maxSqDist {
			maxSqDist = sqDist
			indices[2] = i
			normal = cross
		}
	}
	if maxSqDist == 0 {
		return indices, errDegenerateInput(Collinear)
	}

	normal.Unit()
	// Re-orthogonalize against u with one Gram-Schmidt step, guarding
	// against cancellation when normal and u are nearly parallel.
	proj := normal.Dot(&u)
	var corrected lin.V3
	corrected.Scale(&u, proj)
	corrected.Sub(&normal, &corrected)
	corrected.Unit()
	normal = corrected

	v2 := &points[indices[2]]
	d0 := normal.Dot(v2)
	maxDist := 0.0
	for i := range points {
		if i == indices[0] || i == indices[1] || i == indices[2] {
			continue
		}
		dist := normal.Dot(&points[i]) - d0
		if dist < 0 {
			dist = -dist
		}
		if dist > maxDist {
			maxDist = dist
			indices[3] = i
		}
	}
	if maxDist == 0 {
		return indices, errDegenerateInput(Coplanar)
	}

	return indices, nil
}

// buildSimplex constructs the initial four-face tetrahedron from points,
// fully linking every face to every other face (spec.md §4.3 steps 7-8).
func buildSimplex(points []lin.V3) (faces map[faceKey]*Face, nextKey faceKey, err *Error) {
	indices, degenerr := initialSimplexIndices(points)
	if degenerr != nil {
		return nil, 0, degenerr
	}

	faces = make(map[faceKey]*Face, 4)
	keys := make([]faceKey, 0, 4)

	for omit := 0; omit < 4; omit++ {
		var faceIndices [3]int
		pos := 0
		for j, idx := range indices {
			if j != omit {
				faceIndices[pos] = idx
				pos++
			}
		}
		f := newFace(points, faceIndices)
		orientAgainst(points, f, indices[omit])
		if f.Indices[0] == f.Indices[1] || f.Indices[1] == f.Indices[2] || f.Indices[0] == f.Indices[2] {
			slog.Error("buildSimplex: face has repeated vertex", "indices", f.Indices)
			return nil, 0, errRoundOff("simplex face does not have three distinct vertices")
		}
		key := faceKey(len(keys))
		faces[key] = f
		keys = append(keys, key)
	}

	for _, key := range keys {
		f := faces[key]
		for _, other := range keys {
			if other != key {
				f.addNeighbor(other)
			}
		}
	}

	return faces, faceKey(len(keys)), nil
}
