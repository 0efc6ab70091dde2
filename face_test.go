// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package hull

import (
	"testing"

	"github.com/gazed/hull/math/lin"
)

func TestNewFaceComputesPlane(t *testing.T) {
	points := []lin.V3{v3(-1, 0, 0), v3(1, 0, 0), v3(0, 1, 0)}
	f := newFace(points, [3]int{0, 1, 2})

	wantNormal := v3(0, 0, 2)
	if !f.Normal.Eq(&wantNormal) {
		t.Fatalf("want normal %v, got %v", wantNormal, f.Normal)
	}
	if want := f.Normal.Dot(&points[0]); f.DistanceFromOrigin != want {
		t.Fatalf("want distance %v, got %v", want, f.DistanceFromOrigin)
	}
}

func TestFaceFlipReversesWindingAndPlane(t *testing.T) {
	points := []lin.V3{v3(-1, 0, 0), v3(1, 0, 0), v3(0, 1, 0)}
	f := newFace(points, [3]int{0, 1, 2})
	normalBefore := f.Normal
	distBefore := f.DistanceFromOrigin

	f.flip()

	if f.Indices != [3]int{1, 0, 2} {
		t.Fatalf("want flipped indices [1 0 2], got %v", f.Indices)
	}
	wantNormal := normalBefore
	wantNormal.Scale(&wantNormal, -1)
	if !f.Normal.Eq(&wantNormal) {
		t.Fatalf("want normal %v, got %v", wantNormal, f.Normal)
	}
	if f.DistanceFromOrigin != -distBefore {
		t.Fatalf("want distance %v, got %v", -distBefore, f.DistanceFromOrigin)
	}
}

func TestFaceNeighborBookkeeping(t *testing.T) {
	points := []lin.V3{v3(-1, 0, 0), v3(1, 0, 0), v3(0, 1, 0)}
	f := newFace(points, [3]int{0, 1, 2})

	f.addNeighbor(3)
	f.addNeighbor(7)
	if f.numNeighbors() != 2 {
		t.Fatalf("want 2 neighbors, got %d", f.numNeighbors())
	}
	if !f.hasNeighbor(3) || !f.hasNeighbor(7) {
		t.Fatal("expected both neighbors present")
	}

	f.removeNeighbor(3)
	if f.hasNeighbor(3) {
		t.Fatal("expected neighbor 3 removed")
	}
	if f.numNeighbors() != 1 {
		t.Fatalf("want 1 neighbor, got %d", f.numNeighbors())
	}

	f.removeNeighbor(99) // no-op, key absent
	if f.numNeighbors() != 1 {
		t.Fatalf("removing an absent neighbor should be a no-op, got %d", f.numNeighbors())
	}
}

func TestFaceOutsideListOrdersByFarthest(t *testing.T) {
	points := []lin.V3{v3(-1, 0, 0), v3(1, 0, 0), v3(0, 1, 0)}
	f := newFace(points, [3]int{0, 1, 2})

	f.addOutside(10, 0.5)
	f.addOutside(11, 3.0)
	f.addOutside(12, 1.5)
	f.sortOutside()

	if f.outsideLen() != 3 {
		t.Fatalf("want 3 outside points, got %d", f.outsideLen())
	}
	if got := f.farthest(); got != 11 {
		t.Fatalf("want farthest index 11, got %d", got)
	}
}

func TestOrientAgainstFlipsWhenReferenceIsInFront(t *testing.T) {
	points := []lin.V3{v3(-1, 0, 0), v3(1, 0, 0), v3(0, 1, 0), v3(0, 0, -5), v3(0, 0, 5)}
	f := newFace(points, [3]int{0, 1, 2})

	orientAgainst(points, f, 3) // behind the plane already: no flip
	if f.Indices != [3]int{0, 1, 2} {
		t.Fatalf("want unchanged indices, got %v", f.Indices)
	}

	orientAgainst(points, f, 4) // in front: must flip so 4 ends up behind
	if signedPosition(points, f, 4) > 0 {
		t.Fatalf("reference point should be behind the oriented face")
	}
}
