package types

import (
	"errors"
	"fmt"
)

// Dimensions is the fixed arity of every requirement and capability profile:
// two size measures and a blood-type code.
const Dimensions = 3

// ErrDimensionMismatch is returned when raw coordinates do not have exactly Dimensions entries.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Profile is a point in the requirement space: what a patient needs, or the
// most a donor lobe can serve.
type Profile struct {
	Size1 float64
	Size2 float64
	Blood float64
}

// NewProfile builds a Profile from raw coordinates in (size1, size2, blood) order.
// Anything other than exactly Dimensions coordinates is an ErrDimensionMismatch,
// partial vectors are never compared.
func NewProfile(coords []float64) (Profile, error) {
	if len(coords) != Dimensions {
		return Profile{}, fmt.Errorf("expected %d coordinates, got %d: %w", Dimensions, len(coords), ErrDimensionMismatch)
	}
	return Profile{Size1: coords[0], Size2: coords[1], Blood: coords[2]}, nil
}

// DominatedBy reports whether every coordinate of p is <= the corresponding coordinate of q.
func (p Profile) DominatedBy(q Profile) bool {
	return p.Size1 <= q.Size1 && p.Size2 <= q.Size2 && p.Blood <= q.Blood
}

// Pair is one patient-donor unit in the exchange pool. A Pair is built once
// from input data and never mutated; Yr dominating Yl is a modeling
// assumption, not something the evaluator enforces.
type Pair struct {
	ID      int
	X       Profile // patient requirement profile
	Yl      Profile // max profile the donor's left lobe can serve
	Yr      Profile // max profile the donor's right lobe can serve
	Willing bool    // donor consents to a right-lobe donation
	Direct  bool    // pair prefers a direct transplant over any exchange
}

// Feasibility classifies which of a donor's lobes, if any, can serve a patient.
type Feasibility int

const (
	Infeasible Feasibility = iota
	LeftFeasible
	RightFeasible
)

func (f Feasibility) String() string {
	switch f {
	case LeftFeasible:
		return "left-feasible"
	case RightFeasible:
		return "right-feasible"
	default:
		return "infeasible"
	}
}

// TransplantType determines which lobe, if any, the donor of one pair could
// give to the patient of another. The left lobe is checked first and wins
// outright when both lobes would work, the smaller graft is always preferred.
func TransplantType(donor, patient Pair) Feasibility {
	if patient.X.DominatedBy(donor.Yl) {
		return LeftFeasible
	}
	if patient.X.DominatedBy(donor.Yr) {
		return RightFeasible
	}
	return Infeasible
}
