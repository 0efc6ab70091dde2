// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package hull

import (
	"testing"

	"github.com/gazed/hull/math/lin"
)

func TestInitialSimplexIndicesCollinearFromTwoPoints(t *testing.T) {
	points := []lin.V3{v3(0, 0, 0), v3(10, 10, 10)}
	_, err := initialSimplexIndices(points)
	if !errorsIsDegenerateInput(err, Collinear) {
		t.Fatalf("want DegenerateInput(Collinear), got %v", err)
	}
}

func TestInitialSimplexIndicesCoplanarFromThreePoints(t *testing.T) {
	points := []lin.V3{v3(0, 0, 5), v3(10, 13, 10), v3(-10.1, 13, 10)}
	_, err := initialSimplexIndices(points)
	if !errorsIsDegenerateInput(err, Coplanar) {
		t.Fatalf("want DegenerateInput(Coplanar), got %v", err)
	}
}

func errorsIsDegenerateInput(err *Error, want DegenerateInput) bool {
	return err != nil && err.Kind == DegenerateInputKind && err.Input == want
}

func TestBuildSimplexLinksAllFourFaces(t *testing.T) {
	points := []lin.V3{v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0), v3(0, 0, 1)}
	faces, nextKey, err := buildSimplex(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(faces) != 4 {
		t.Fatalf("want 4 faces, got %d", len(faces))
	}
	if nextKey != 4 {
		t.Fatalf("want next key 4, got %d", nextKey)
	}
	for key, f := range faces {
		if f.numNeighbors() != 3 {
			t.Fatalf("face %d has %d neighbors, want 3", key, f.numNeighbors())
		}
		for other := range faces {
			if other != key && !f.hasNeighbor(other) {
				t.Fatalf("face %d should be linked to face %d", key, other)
			}
		}
	}
}

func TestBuildSimplexFacesOrientedAwayFromOmittedVertex(t *testing.T) {
	points := []lin.V3{v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0), v3(0, 0, 1)}
	faces, _, err := buildSimplex(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, f := range faces {
		centroid := v3(0.25, 0.25, 0.25)
		points = append(points, centroid)
		pos := signedPosition(points, f, len(points)-1)
		points = points[:len(points)-1]
		if pos > 0 {
			t.Fatalf("tetrahedron centroid should not be in front of face %v", f.Indices)
		}
	}
}
