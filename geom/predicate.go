// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package geom provides the geometric predicates used to build a 3D
// convex hull: an exact-sign orientation test and the un-normalized
// triangle normal. Both are pure functions over github.com/gazed/hull/math/lin
// vectors; neither allocates a face or owns any hull state.
package geom

import (
	"math"
	"math/big"

	"github.com/gazed/hull/math/lin"
)

// TriangleNormal returns (b-a) x (c-a), deliberately un-normalized.
// Downstream code only ever uses its direction, and skipping the
// normalization avoids a square root and keeps the result exactly
// representable when the vertices are integers or small-denominator
// rationals.
func TriangleNormal(a, b, c *lin.V3) lin.V3 {
	var ab, ac, n lin.V3
	ab.Sub(b, a)
	ac.Sub(c, a)
	n.Cross(&ab, &ac)
	return n
}

// Orient3D classifies q against the oriented plane through a, b, c.
// The sign is the answer; the magnitude is only meaningful for relative
// comparisons between points tested against the same face:
//
//	> 0 : q is on the outward side (the face is visible from q)
//	= 0 : q lies exactly on the plane
//	< 0 : q is on the inward side
//
// The sign is that of TriangleNormal(a,b,c) . (q-a), i.e. of six times the
// signed volume of the tetrahedron a,b,c,q. A plain float64 evaluation of
// that formula is returned whenever a conservative error bound guarantees
// its sign is trustworthy; near-degenerate inputs fall back to an exact
// evaluation using rational arithmetic so that nearly-coplanar points
// never flip a face's visibility classification. The fallback returns
// only the sign, as -1, 0 or +1. See DESIGN.md for why
// this trades Shewchuk-style floating-point expansions for big.Rat.
func Orient3D(a, b, c, q *lin.V3) float64 {
	abx, aby, abz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	acx, acy, acz := c.X-a.X, c.Y-a.Y, c.Z-a.Z
	aqx, aqy, aqz := q.X-a.X, q.Y-a.Y, q.Z-a.Z

	fast, bound := det3x3WithBound(abx, aby, abz, acx, acy, acz, aqx, aqy, aqz)
	if fast > bound || fast < -bound {
		return fast
	}
	return exactDet3x3(a, b, c, q)
}

// det3x3WithBound returns det([r0;r1;r2]) computed in float64 along with a
// conservative absolute error bound on that result. The bound follows the
// same triage-then-escalate shape as golang/geo's s2.stableSign: sum the
// magnitudes of the six triple products that make up the determinant and
// scale by a constant derived from IEEE754 double rounding error, instead
// of analyzing cancellation term by term. When |fast| exceeds the bound,
// the computed sign cannot have been flipped by rounding.
func det3x3WithBound(r0x, r0y, r0z, r1x, r1y, r1z, r2x, r2y, r2z float64) (det, bound float64) {
	const dblEpsilon = 2.220446049250313e-16
	// 3 additions of 2-term products, each compounding rounding error;
	// an 8x safety margin on the naive bound is generous and cheap.
	const errorMultiplier = 8 * dblEpsilon

	t0 := r1y*r2z - r1z*r2y
	t1 := r1z*r2x - r1x*r2z
	t2 := r1x*r2y - r1y*r2x
	det = r0x*t0 + r0y*t1 + r0z*t2

	mag := math.Abs(r0x)*(math.Abs(r1y*r2z)+math.Abs(r1z*r2y)) +
		math.Abs(r0y)*(math.Abs(r1z*r2x)+math.Abs(r1x*r2z)) +
		math.Abs(r0z)*(math.Abs(r1x*r2y)+math.Abs(r1y*r2x))
	bound = errorMultiplier * mag
	return det, bound
}

// exactDet3x3 evaluates the same determinant, det([b-a; c-a; q-a]), using
// big.Rat, which represents every float64 coordinate exactly (SetFloat64
// is lossless) and performs every subtraction/addition/multiplication
// without rounding. The result's sign is therefore the true sign of the
// determinant, independent of how close the inputs are to degenerate.
func exactDet3x3(pa, pb, pc, pq *lin.V3) float64 {
	a, b, c := ratDiff(pb.X, pa.X), ratDiff(pb.Y, pa.Y), ratDiff(pb.Z, pa.Z)
	d, e, f := ratDiff(pc.X, pa.X), ratDiff(pc.Y, pa.Y), ratDiff(pc.Z, pa.Z)
	g, h, i := ratDiff(pq.X, pa.X), ratDiff(pq.Y, pa.Y), ratDiff(pq.Z, pa.Z)

	t0 := new(big.Rat).Sub(mulRat(e, i), mulRat(f, h))
	t1 := new(big.Rat).Sub(mulRat(f, g), mulRat(d, i))
	t2 := new(big.Rat).Sub(mulRat(d, h), mulRat(e, g))

	sum := new(big.Rat).Add(mulRat(a, t0), mulRat(b, t1))
	sum.Add(sum, mulRat(c, t2))

	switch sum.Sign() {
	case 0:
		return 0
	case 1:
		return 1
	default:
		return -1
	}
}

func ratOf(f float64) *big.Rat {
	r := new(big.Rat)
	r.SetFloat64(f)
	return r
}

func ratDiff(x, y float64) *big.Rat {
	return new(big.Rat).Sub(ratOf(x), ratOf(y))
}

func mulRat(a, b *big.Rat) *big.Rat {
	return new(big.Rat).Mul(a, b)
}
