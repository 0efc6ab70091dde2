// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package hull

import (
	"math/rand"
	"testing"

	"github.com/gazed/hull/internal/seaurchin"
)

// FuzzConstruct is the native-Go replacement for the original crate's
// libfuzzer-sys sea-urchin fuzz target: a seed controls a generated
// jittered-sphere point cloud, and Construct must never panic on it,
// whatever it decides about the result's validity.
func FuzzConstruct(f *testing.F) {
	f.Add(int64(1), 10)
	f.Add(int64(2), 50)
	f.Add(int64(3), 2)

	f.Fuzz(func(t *testing.T, seed int64, divisions int) {
		if divisions < 2 {
			divisions = 2
		}
		if divisions > 100 {
			divisions = 100
		}
		rng := rand.New(rand.NewSource(seed))
		points := seaurchin.Generate(rng, divisions)

		h, err := Construct(points, nil)
		if err != nil {
			return
		}
		if Volume(h) < 0 {
			t.Fatalf("hull volume should never be negative, got %v", Volume(h))
		}
		verts, triples := VerticesAndIndices(h)
		if len(triples)%3 != 0 {
			t.Fatalf("flatTriples length must be a multiple of 3, got %d", len(triples))
		}
		for _, idx := range triples {
			if idx < 0 || idx >= len(verts) {
				t.Fatalf("face index %d out of range for %d vertices", idx, len(verts))
			}
		}
	})
}
