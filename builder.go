// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package hull

import (
	"log/slog"
	"sort"

	"github.com/gazed/hull/math/lin"
)

// assignedFromFaces derives the current hull's vertex-index set directly
// from its faces, rather than carrying a separately maintained set: a
// point index is "assigned" exactly when some face currently references
// it. This lets AddPoints pick up the re-orientation and convexity-probe
// state of a prior build without any extra persisted state.
func assignedFromFaces(faces map[faceKey]*Face) map[int]bool {
	assigned := make(map[int]bool)
	for _, f := range faces {
		for _, idx := range f.Indices {
			assigned[idx] = true
		}
	}
	return assigned
}

// sortedFaceKeys returns the current face keys in ascending order. Go map
// iteration order is randomized; every place the builder needs a
// deterministic traversal (face selection, horizon walk, redistribution)
// goes through this so that construction is reproducible given the same
// input, per spec.md §5.
func sortedFaceKeys(faces map[faceKey]*Face) []faceKey {
	keys := make([]faceKey, 0, len(faces))
	for k := range faces {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// seedConflictLists assigns every currently-unassigned point to the first
// face (in key order) whose plane it lies strictly outside, mirroring the
// one-pass conflict-list seeding of spec.md §4.4. Safe to call again after
// AddPoints appends new points: already-assigned (hull vertex) indices are
// skipped, and previously-interior points re-tested against the same
// faces they were already found interior to simply produce no conflict
// entry again.
func seedConflictLists(points []lin.V3, faces map[faceKey]*Face, assigned map[int]bool) {
	keys := sortedFaceKeys(faces)
	for i := range points {
		if assigned[i] {
			continue
		}
		for _, key := range keys {
			f := faces[key]
			pos := signedPosition(points, f, i)
			if pos > 0 {
				f.addOutside(i, pos)
				break
			}
		}
	}
	for _, f := range faces {
		f.sortOutside()
	}
}

// selectFaceWithConflicts returns the lowest-keyed face with a non-empty
// conflict list, or (0, false) if every face's list is empty.
func selectFaceWithConflicts(faces map[faceKey]*Face) (faceKey, bool) {
	for _, key := range sortedFaceKeys(faces) {
		if faces[key].outsideLen() > 0 {
			return key, true
		}
	}
	return 0, false
}

// visibleSet returns the set of face keys visible from apex, starting the
// DFS at start. Grounded on the polytope-expansion traversal shape used by
// the EPA loop in gazed-vu's physics package: a work stack plus a visited
// set, admitting a neighbor only when the geometric test passes.
func visibleSet(points []lin.V3, faces map[faceKey]*Face, start faceKey, apex int) map[faceKey]bool {
	visible := map[faceKey]bool{start: true}
	stack := []faceKey{start}
	for len(stack) > 0 {
		key := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f := faces[key]
		for _, n := range f.neighbors {
			if visible[n] {
				continue
			}
			if signedPosition(points, faces[n], apex) > 0 {
				visible[n] = true
				stack = append(stack, n)
			}
		}
	}
	return visible
}

// horizonRidge is one edge of the visible region's boundary: the two
// shared vertices, the visible face it came from, and the non-visible
// neighbor across that edge that the new fan face must inherit adjacency
// with.
type horizonRidge struct {
	edge            [2]int
	visibleFace     faceKey
	outsideNeighbor faceKey
}

// sharedEdge returns the (exactly two) point indices that g and h have in
// common, in the order encountered walking g's vertex list.
func sharedEdge(g, h *Face) ([2]int, bool) {
	var shared [2]int
	n := 0
	for _, gi := range g.Indices {
		for _, hi := range h.Indices {
			if gi == hi {
				if n == 2 {
					return shared, false
				}
				shared[n] = gi
				n++
				break
			}
		}
	}
	return shared, n == 2
}

// extractHorizon walks every visible face's neighbors, in key order, and
// collects the ridges shared with a non-visible neighbor.
func extractHorizon(faces map[faceKey]*Face, visible map[faceKey]bool) ([]horizonRidge, *Error) {
	var horizon []horizonRidge
	visibleKeys := make([]faceKey, 0, len(visible))
	for k := range visible {
		visibleKeys = append(visibleKeys, k)
	}
	sort.Slice(visibleKeys, func(i, j int) bool { return visibleKeys[i] < visibleKeys[j] })

	for _, gk := range visibleKeys {
		g := faces[gk]
		for _, hk := range g.neighbors {
			if visible[hk] {
				continue
			}
			h := faces[hk]
			edge, ok := sharedEdge(g, h)
			if !ok {
				slog.Error("extractHorizon: ridge does not have exactly two vertices", "visible", gk, "outside", hk)
				return nil, errRoundOff("horizon ridge does not have exactly two vertices")
			}
			horizon = append(horizon, horizonRidge{edge: edge, visibleFace: gk, outsideNeighbor: hk})
		}
	}
	if len(horizon) < 3 {
		slog.Error("extractHorizon: horizon has fewer than three ridges", "size", len(horizon))
		return nil, errRoundOff("horizon has fewer than three ridges")
	}
	return horizon, nil
}

// shareTwoIndices reports whether a and b have exactly two vertex indices
// in common, which is how two new fan faces recognize each other as
// neighbors in step 6 of the hull builder.
func shareTwoIndices(a, b *Face) bool {
	count := 0
	for _, ai := range a.Indices {
		for _, bi := range b.Indices {
			if ai == bi {
				count++
				break
			}
		}
	}
	return count == 2
}

// fanAndLink implements spec.md §4.4 steps 5-7: build one new face per
// horizon ridge, wire it to the outside neighbor it inherits and to its
// fellow new faces, then re-orient every new face against the assigned
// set. Returns the new faces' keys in horizon order.
func fanAndLink(points []lin.V3, faces map[faceKey]*Face, nextKey *faceKey, apex int, horizon []horizonRidge, assigned map[int]bool) ([]faceKey, *Error) {
	newKeys := make([]faceKey, len(horizon))
	for i, ridge := range horizon {
		nf := newFace(points, [3]int{apex, ridge.edge[0], ridge.edge[1]})
		key := *nextKey
		*nextKey++
		faces[key] = nf
		newKeys[i] = key

		outside := faces[ridge.outsideNeighbor]
		outside.removeNeighbor(ridge.visibleFace)
		outside.addNeighbor(key)
		nf.addNeighbor(ridge.outsideNeighbor)
	}

	assigned[apex] = true
	for _, ridge := range horizon {
		assigned[ridge.edge[0]] = true
		assigned[ridge.edge[1]] = true
	}

	for i := 0; i < len(newKeys); i++ {
		for j := i + 1; j < len(newKeys); j++ {
			fi, fj := faces[newKeys[i]], faces[newKeys[j]]
			if shareTwoIndices(fi, fj) {
				fi.addNeighbor(newKeys[j])
				fj.addNeighbor(newKeys[i])
			}
		}
	}
	for _, key := range newKeys {
		if faces[key].numNeighbors() != 3 {
			slog.Error("fanAndLink: new face does not have three neighbors", "key", key, "neighbors", faces[key].numNeighbors())
			return nil, errRoundOff("new fan face does not have three neighbors")
		}
	}

	probeOrder := make([]int, 0, len(assigned))
	for idx := range assigned {
		probeOrder = append(probeOrder, idx)
	}
	sort.Ints(probeOrder)

	for _, key := range newKeys {
		nf := faces[key]
		oriented := false
		for _, idx := range probeOrder {
			pos := signedPosition(points, nf, idx)
			if pos == 0 {
				continue
			}
			if pos > 0 {
				nf.flip()
			}
			oriented = true
			break
		}
		if !oriented {
			slog.Error("fanAndLink: new face could not be oriented against any probe point", "key", key)
			return nil, errDegenerated()
		}
	}

	return newKeys, nil
}

// redistribute reattaches every still-outside conflict point formerly
// held by a deleted visible face onto the new fan faces, per spec.md
// §4.4 step 8.
func redistribute(points []lin.V3, faces map[faceKey]*Face, visible map[faceKey]bool, newKeys []faceKey, assigned map[int]bool) {
	seen := make(map[int]bool)
	var candidates []int
	visibleKeys := make([]faceKey, 0, len(visible))
	for k := range visible {
		visibleKeys = append(visibleKeys, k)
	}
	sort.Slice(visibleKeys, func(i, j int) bool { return visibleKeys[i] < visibleKeys[j] })
	for _, vk := range visibleKeys {
		for _, op := range faces[vk].outside {
			if !seen[op.index] {
				seen[op.index] = true
				candidates = append(candidates, op.index)
			}
		}
	}
	sort.Ints(candidates)

	for _, p := range candidates {
		if assigned[p] {
			continue
		}
		for _, key := range newKeys {
			nf := faces[key]
			pos := signedPosition(points, nf, p)
			if pos > 0 {
				nf.addOutside(p, pos)
				break
			}
		}
	}
	for _, key := range newKeys {
		faces[key].sortOutside()
	}
}

// deleteVisible removes every face in visible from the face set, fixing
// up any stale reverse-adjacency entry on its surviving neighbors. By the
// time this runs, horizon neighbors have already had their adjacency
// repointed to the new fan faces in fanAndLink, so this is a cleanup pass
// for any remaining reference between two visible faces' neighbors.
func deleteVisible(faces map[faceKey]*Face, visible map[faceKey]bool) {
	for vk := range visible {
		f := faces[vk]
		for _, nk := range f.neighbors {
			if !visible[nk] {
				if other := faces[nk]; other != nil {
					other.removeNeighbor(vk)
				}
			}
		}
		delete(faces, vk)
	}
}

// convexityProbe is the post-invariant check of spec.md §4.4: every
// assigned (hull vertex or formerly-conflict) point must report a
// non-positive signed position against every face. Probing every
// assigned index, rather than only index 0, is a deliberate strengthening
// recorded in SPEC_FULL.md's Open Question Decisions: index 0 alone can
// sit at an extreme vertex and trivially pass while concavity elsewhere
// goes undetected.
func convexityProbe(points []lin.V3, faces map[faceKey]*Face, assigned map[int]bool) *Error {
	keys := sortedFaceKeys(faces)
	indices := make([]int, 0, len(assigned))
	for idx := range assigned {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, p := range indices {
		for _, key := range keys {
			if signedPosition(points, faces[key], p) > 0 {
				slog.Error("convexityProbe: concavity detected at post-invariant probe", "point", p, "face", key)
				return errRoundOff("concavity detected at post-invariant probe")
			}
		}
	}
	return nil
}

// runMainLoop drives spec.md §4.4's main loop to completion: repeatedly
// pick a face with outside points, expand the visible region from its
// farthest point, refan the horizon, and redistribute. Stops when no face
// has a conflict list, or when maxIterations is reached.
func runMainLoop(points []lin.V3, faces map[faceKey]*Face, nextKey *faceKey, assigned map[int]bool, maxIterations *int) *Error {
	iterations := 0
	for {
		if maxIterations != nil && iterations >= *maxIterations {
			break
		}
		fk, ok := selectFaceWithConflicts(faces)
		if !ok {
			break
		}
		f := faces[fk]
		apex := f.farthest()

		visible := visibleSet(points, faces, fk, apex)
		for key := range visible {
			if len(faces[key].Indices) != 3 {
				slog.Error("runMainLoop: visible face does not have three vertices", "key", key)
				return errRoundOff("visible face does not have three vertices")
			}
		}

		horizon, herr := extractHorizon(faces, visible)
		if herr != nil {
			return herr
		}

		newKeys, ferr := fanAndLink(points, faces, nextKey, apex, horizon, assigned)
		if ferr != nil {
			return ferr
		}

		redistribute(points, faces, visible, newKeys, assigned)
		deleteVisible(faces, visible)

		iterations++
	}

	if err := convexityProbe(points, faces, assigned); err != nil {
		return err
	}
	return nil
}

// buildHullFaces runs the complete construction pipeline over points: the
// initial simplex, conflict-list seeding, and the main loop.
func buildHullFaces(points []lin.V3, maxIterations *int) (map[faceKey]*Face, faceKey, *Error) {
	faces, nextKey, err := buildSimplex(points)
	if err != nil {
		return nil, 0, err
	}
	assigned := assignedFromFaces(faces)
	seedConflictLists(points, faces, assigned)
	if err := runMainLoop(points, faces, &nextKey, assigned, maxIterations); err != nil {
		return nil, 0, err
	}
	return faces, nextKey, nil
}

// rebuildHullFaces re-seeds conflict lists against an existing face set
// and re-runs the main loop, for AddPoints.
func rebuildHullFaces(points []lin.V3, faces map[faceKey]*Face, nextKey faceKey, maxIterations *int) (faceKey, *Error) {
	assigned := assignedFromFaces(faces)
	seedConflictLists(points, faces, assigned)
	if err := runMainLoop(points, faces, &nextKey, assigned, maxIterations); err != nil {
		return 0, err
	}
	return nextKey, nil
}
