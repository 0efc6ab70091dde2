// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package hull

import "fmt"

// Kind distinguishes the ways hull construction can fail.
type Kind int

// The four error kinds surfaced by Construct and AddPoints.
const (
	// Empty means the point set had zero points.
	Empty Kind = iota
	// Degenerated means there were too few input points, the final hull
	// collapsed to three or fewer vertices, or a fan face came out
	// degenerate under the re-orientation probe.
	Degenerated
	// DegenerateInputKind means the initial simplex could not be built;
	// Reason distinguishes why.
	DegenerateInputKind
	// RoundOff means a structural invariant was violated mid-iteration.
	RoundOff
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Degenerated:
		return "degenerated"
	case DegenerateInputKind:
		return "degenerate input"
	case RoundOff:
		return "round-off error"
	default:
		return "unknown"
	}
}

// DegenerateInput names the specific way the initial point set collapsed.
type DegenerateInput int

// The three ways the initial-simplex extreme-point search can collapse.
const (
	// Coincident means the point cloud's maximum extent along every axis
	// was exactly zero: the points are all the same point.
	Coincident DegenerateInput = iota
	// Collinear means every point lies on the line through the two most
	// extreme points found.
	Collinear
	// Coplanar means every point lies on the plane found from the first
	// three simplex vertices.
	Coplanar
)

func (d DegenerateInput) String() string {
	switch d {
	case Coincident:
		return "coincident"
	case Collinear:
		return "collinear"
	case Coplanar:
		return "coplanar"
	default:
		return "unknown"
	}
}

// Error is returned by Construct and AddPoints. It is never partial: a
// non-nil Error means no usable Hull was produced.
type Error struct {
	Kind   Kind
	Input  DegenerateInput // meaningful only when Kind == DegenerateInputKind
	Reason string          // meaningful only when Kind == RoundOff
}

func (e *Error) Error() string {
	switch e.Kind {
	case DegenerateInputKind:
		return fmt.Sprintf("hull: degenerate input: %s", e.Input)
	case RoundOff:
		return fmt.Sprintf("hull: round-off error: %s", e.Reason)
	default:
		return fmt.Sprintf("hull: %s", e.Kind)
	}
}

// Is lets errors.Is(err, &hull.Error{Kind: hull.Degenerated}) and similar
// targets match on Kind regardless of the Reason payload. For
// DegenerateInputKind the Input must match as well.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	if other.Kind != e.Kind {
		return false
	}
	if e.Kind == DegenerateInputKind {
		return other.Input == e.Input
	}
	return true
}

func errEmpty() *Error       { return &Error{Kind: Empty} }
func errDegenerated() *Error { return &Error{Kind: Degenerated} }

func errDegenerateInput(d DegenerateInput) *Error {
	return &Error{Kind: DegenerateInputKind, Input: d}
}

func errRoundOff(reason string) *Error {
	return &Error{Kind: RoundOff, Reason: reason}
}
