// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package hull

import (
	"sort"

	"github.com/gazed/hull/geom"
	"github.com/gazed/hull/math/lin"
)

// faceKey identifies a face within a hull's face set. Keys increase
// monotonically and are never reused once a face is deleted, so a stale
// key is always detectable as "not present" rather than silently aliasing
// a later, unrelated face.
type faceKey uint32

// outsidePoint is one entry of a face's conflict list: the index of a
// point that can see the face, and its signed position relative to the
// face's plane. Invariant: position is always strictly positive while the
// entry remains on the list.
type outsidePoint struct {
	index    int
	position float64
}

// Face is a triangle on the current hull boundary.
type Face struct {
	// Indices are the face's three point indices, counter-clockwise as
	// seen from outside the hull.
	Indices [3]int
	// Normal is the un-normalized outward normal, (b-a) x (c-a).
	Normal lin.V3
	// DistanceFromOrigin is Normal . points[Indices[0]].
	DistanceFromOrigin float64

	neighbors []faceKey
	outside   []outsidePoint
}

// newFace builds a Face from three point indices, computing its plane
// from the current point array. Orientation is the caller's
// responsibility (see orientAgainst).
func newFace(points []lin.V3, indices [3]int) *Face {
	a, b, c := &points[indices[0]], &points[indices[1]], &points[indices[2]]
	n := geom.TriangleNormal(a, b, c)
	return &Face{
		Indices:            indices,
		Normal:             n,
		DistanceFromOrigin: n.Dot(a),
	}
}

// flip reverses the face's orientation: swap the first two indices and
// negate the stored plane. Used when a face was built back-to-front.
func (f *Face) flip() {
	f.Indices[0], f.Indices[1] = f.Indices[1], f.Indices[0]
	f.Normal.Scale(&f.Normal, -1)
	f.DistanceFromOrigin = -f.DistanceFromOrigin
}

// numNeighbors reports how many of the (up to three) faces sharing an
// edge with f are currently linked. It is 3 once the builder has finished
// linking f, and smaller only mid-construction.
func (f *Face) numNeighbors() int { return len(f.neighbors) }

func (f *Face) addNeighbor(key faceKey) {
	f.neighbors = append(f.neighbors, key)
}

// removeNeighbor drops key from f's neighbor list. It is a no-op if key
// is not present, which should not happen given the invariants in §3.
func (f *Face) removeNeighbor(key faceKey) {
	for i, n := range f.neighbors {
		if n == key {
			last := len(f.neighbors) - 1
			f.neighbors[i] = f.neighbors[last]
			f.neighbors = f.neighbors[:last]
			return
		}
	}
}

// hasNeighbor reports whether key is among f's current neighbors.
func (f *Face) hasNeighbor(key faceKey) bool {
	for _, n := range f.neighbors {
		if n == key {
			return true
		}
	}
	return false
}

// outsideLen reports the number of points currently attached to f's
// conflict list.
func (f *Face) outsideLen() int { return len(f.outside) }

// farthest returns the index of the conflict-list point with the largest
// signed position: the apex for the next iteration that processes f.
// Valid only when outsideLen() > 0; the list is kept sorted ascending by
// position, so the farthest point is always the last element.
func (f *Face) farthest() int {
	return f.outside[len(f.outside)-1].index
}

// addOutside appends a (point, position) pair to f's conflict list.
// position must be strictly positive.
func (f *Face) addOutside(index int, position float64) {
	f.outside = append(f.outside, outsidePoint{index: index, position: position})
}

// sortOutside orders f's conflict list ascending by signed position, so
// the last element is the farthest and a constant-time pop supplies the
// next apex.
func (f *Face) sortOutside() {
	sort.Slice(f.outside, func(i, j int) bool {
		return f.outside[i].position < f.outside[j].position
	})
}

// signedPosition classifies point q (by index into points) against f's
// plane using the exact-sign orientation predicate over f's *current*
// vertex indices, not the (possibly stale, approximate) stored Normal.
func signedPosition(points []lin.V3, f *Face, q int) float64 {
	a, b, c := &points[f.Indices[0]], &points[f.Indices[1]], &points[f.Indices[2]]
	return geom.Orient3D(a, b, c, &points[q])
}

// orientAgainst flips f if the given reference point lies in front of it,
// i.e. has a strictly positive signed position; a reference point on the
// plane leaves f unchanged. Used by the initial simplex
// builder, where the omitted vertex must end up strictly behind each of
// the four faces.
func orientAgainst(points []lin.V3, f *Face, reference int) {
	if signedPosition(points, f, reference) > 0 {
		f.flip()
	}
}
