// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package hull builds three-dimensional convex hulls from point clouds
// using the Quickhull algorithm: an initial tetrahedron is refined by
// repeatedly absorbing the farthest point a current face can still see,
// until no point lies strictly outside any face of the hull.
package hull

import (
	"log/slog"
	"sort"

	"github.com/gazed/hull/math/lin"
)

// Hull is a closed, triangulated convex polytope: a compacted point array
// and a set of triangular faces with full vertex adjacency. The zero
// value is not useful; obtain a Hull from Construct.
type Hull struct {
	points  []lin.V3
	faces   map[faceKey]*Face
	nextKey faceKey
}

// Construct builds the convex hull of points. maxIterations, when
// non-nil, caps the number of builder iterations; a capped run still
// returns a valid closed mesh, just not necessarily the tightest hull.
//
// Construct fails with Empty if points is empty, Degenerated if there are
// three or fewer points, DegenerateInput if the initial four points
// cannot be separated into a non-degenerate tetrahedron, or RoundOff if a
// structural invariant is violated mid-construction.
func Construct(points []lin.V3, maxIterations *int) (*Hull, error) {
	if len(points) == 0 {
		return nil, errEmpty()
	}
	if len(points) <= 3 {
		return nil, errDegenerated()
	}

	working := make([]lin.V3, len(points))
	copy(working, points)

	faces, nextKey, err := buildHullFaces(working, maxIterations)
	if err != nil {
		return nil, err
	}

	h := &Hull{points: working, faces: faces, nextKey: nextKey}
	if perr := h.compact(); perr != nil {
		return nil, perr
	}
	return h, nil
}

// AddPoints appends morePoints to h's point set, re-runs the builder
// against the existing face set, and recompacts. h is left unchanged if
// an error is returned.
func AddPoints(h *Hull, morePoints []lin.V3) error {
	if len(morePoints) == 0 {
		return nil
	}

	points := make([]lin.V3, len(h.points)+len(morePoints))
	copy(points, h.points)
	copy(points[len(h.points):], morePoints)

	faces := cloneFaces(h.faces)
	nextKey, err := rebuildHullFaces(points, faces, h.nextKey, nil)
	if err != nil {
		return err
	}

	candidate := &Hull{points: points, faces: faces, nextKey: nextKey}
	if perr := candidate.compact(); perr != nil {
		return perr
	}
	*h = *candidate
	return nil
}

// AddPoint is a variadic convenience wrapping AddPoints.
func AddPoint(h *Hull, morePoints ...lin.V3) error {
	return AddPoints(h, morePoints)
}

func cloneFaces(faces map[faceKey]*Face) map[faceKey]*Face {
	clone := make(map[faceKey]*Face, len(faces))
	for k, f := range faces {
		cf := *f
		cf.neighbors = append([]faceKey(nil), f.neighbors...)
		cf.outside = append([]outsidePoint(nil), f.outside...)
		clone[k] = &cf
	}
	return clone
}

// compact implements spec.md §4.5: discard points no longer referenced by
// any face and renumber the survivors, in ascending order of their old
// index, so indices stay compact and stable for the lifetime of the hull.
func (h *Hull) compact() *Error {
	referenced := make(map[int]bool)
	for _, f := range h.faces {
		for _, idx := range f.Indices {
			referenced[idx] = true
		}
	}

	old := make([]int, 0, len(referenced))
	for idx := range referenced {
		old = append(old, idx)
	}
	sort.Ints(old)

	if len(old) <= 3 {
		slog.Error("compact: final hull has three or fewer distinct vertices", "vertices", len(old))
		return errDegenerated()
	}

	remap := make(map[int]int, len(old))
	compacted := make([]lin.V3, len(old))
	for newIdx, oldIdx := range old {
		remap[oldIdx] = newIdx
		compacted[newIdx] = h.points[oldIdx]
	}

	for _, f := range h.faces {
		for i, idx := range f.Indices {
			f.Indices[i] = remap[idx]
		}
	}

	h.points = compacted
	return nil
}

// VerticesAndIndices returns the hull's compacted vertex array and the
// flattened triangle list: three indices per face, length 3×faceCount.
func VerticesAndIndices(h *Hull) ([]lin.V3, []int) {
	points := make([]lin.V3, len(h.points))
	copy(points, h.points)

	keys := sortedFaceKeys(h.faces)
	triples := make([]int, 0, len(keys)*3)
	for _, k := range keys {
		f := h.faces[k]
		triples = append(triples, f.Indices[0], f.Indices[1], f.Indices[2])
	}
	return points, triples
}

// Volume returns the hull's volume via tetrahedral decomposition fanned
// from vertex 0: each face contributes a signed tetrahedron volume with
// that vertex, clamped at zero to absorb round-off on faces incident to
// or coplanar with it, summed and divided by 6.
func Volume(h *Hull) float64 {
	if len(h.points) == 0 {
		return 0
	}
	origin := &h.points[0]
	sum := 0.0
	for _, f := range h.faces {
		a := &h.points[f.Indices[0]]
		b := &h.points[f.Indices[1]]
		c := &h.points[f.Indices[2]]

		var ab, ac, cross lin.V3
		ab.Sub(b, origin)
		ac.Sub(c, origin)
		cross.Cross(&ab, &ac)

		var ad lin.V3
		ad.Sub(a, origin)
		vol := cross.Dot(&ad)
		if vol < 0 {
			vol = 0
		}
		sum += vol
	}
	return sum / 6
}

// SupportPoint returns the hull vertex maximizing the dot product with
// direction, a linear scan over the compacted point array. Ties are
// broken in favor of the first vertex encountered.
func SupportPoint(h *Hull, direction *lin.V3) lin.V3 {
	best := h.points[0]
	bestDot := best.Dot(direction)
	for i := 1; i < len(h.points); i++ {
		d := h.points[i].Dot(direction)
		if d > bestDot {
			bestDot = d
			best = h.points[i]
		}
	}
	return best
}

// SupportPointWorld is the rigid-body collision query this hull exists to
// serve: given a world-space transform for the hull and a world-space
// direction, it returns the hull vertex in world space that is farthest
// along direction. The direction is rotated into the hull's local frame
// so the scan still runs over untransformed local vertices; only the
// winning vertex pays for a full transform.
func SupportPointWorld(h *Hull, t *lin.T, direction *lin.V3) lin.V3 {
	var invRot lin.Q
	invRot.Inv(t.Rot)

	localDir := *direction
	localDir.MultvQ(&localDir, &invRot)

	local := SupportPoint(h, &localDir)
	world := local
	t.App(&world)
	return world
}
