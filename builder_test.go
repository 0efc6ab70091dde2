// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package hull

import (
	"testing"

	"github.com/gazed/hull/math/lin"
)

func TestSharedEdgeFindsTwoCommonIndices(t *testing.T) {
	a := &Face{Indices: [3]int{0, 1, 2}}
	b := &Face{Indices: [3]int{1, 2, 3}}
	edge, ok := sharedEdge(a, b)
	if !ok {
		t.Fatal("expected a shared edge")
	}
	if edge != [2]int{1, 2} {
		t.Fatalf("want edge [1 2], got %v", edge)
	}
}

func TestSharedEdgeRejectsNonAdjacentFaces(t *testing.T) {
	a := &Face{Indices: [3]int{0, 1, 2}}
	b := &Face{Indices: [3]int{3, 4, 5}}
	if _, ok := sharedEdge(a, b); ok {
		t.Fatal("expected no shared edge")
	}
}

func TestShareTwoIndices(t *testing.T) {
	a := &Face{Indices: [3]int{0, 1, 2}}
	b := &Face{Indices: [3]int{1, 2, 3}}
	c := &Face{Indices: [3]int{4, 5, 6}}
	if !shareTwoIndices(a, b) {
		t.Fatal("a and b should share two indices")
	}
	if shareTwoIndices(a, c) {
		t.Fatal("a and c should not share any indices")
	}
}

func TestVisibleSetFindsOnlyFacesThatSeeApex(t *testing.T) {
	points := []lin.V3{v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0), v3(0, 0, 1), v3(10, 10, 10)}
	faces, _, err := buildSimplex(points[:4])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	apex := 4 // far outside the slanted face x+y+z=1, the only face that sees it
	var start faceKey
	found := false
	for key, f := range faces {
		if signedPosition(points, f, apex) > 0 {
			start = key
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected at least one face to see the apex")
	}

	visible := visibleSet(points, faces, start, apex)
	if len(visible) == 0 {
		t.Fatal("expected a non-empty visible set")
	}
	for key := range visible {
		if signedPosition(points, faces[key], apex) <= 0 {
			t.Fatalf("face %d included in visible set but does not see apex", key)
		}
	}
	for key, f := range faces {
		if !visible[key] && signedPosition(points, f, apex) > 0 {
			t.Fatalf("face %d sees apex but was excluded from visible set", key)
		}
	}
}

func TestExtractHorizonRequiresAtLeastThreeRidges(t *testing.T) {
	points := []lin.V3{v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0), v3(0, 0, 1), v3(10, 10, 10)}
	faces, _, err := buildSimplex(points[:4])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	apex := 4
	var start faceKey
	for key, f := range faces {
		if signedPosition(points, f, apex) > 0 {
			start = key
			break
		}
	}
	visible := visibleSet(points, faces, start, apex)
	horizon, herr := extractHorizon(faces, visible)
	if herr != nil {
		t.Fatalf("unexpected error: %v", herr)
	}
	if len(horizon) < 3 {
		t.Fatalf("want at least 3 horizon ridges, got %d", len(horizon))
	}
	for _, r := range horizon {
		if visible[r.outsideNeighbor] {
			t.Fatalf("ridge outside neighbor %d should not be in the visible set", r.outsideNeighbor)
		}
		if !visible[r.visibleFace] {
			t.Fatalf("ridge visible face %d should be in the visible set", r.visibleFace)
		}
	}
}
