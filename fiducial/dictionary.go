package fiducial

import (
	"fmt"
	"math"
)

// Dictionary is the append-only collection of accepted Markers together with
// the separation threshold tau. A member's identifier is its position, which
// never changes because members are only ever appended.
//
// Dictionary is not safe for concurrent mutation; Generate owns it while it
// runs and hands it back read-only afterwards.
type Dictionary struct {
	targetSize int
	gridSize   int
	tau        int
	members    []Marker
}

// Match describes the member closest to an observed candidate.
type Match struct {
	// ID is the member's position in the dictionary.
	ID int
	// Distance is the rotation-invariant Hamming distance.
	Distance int
	// Rotation is how many 90° counter-clockwise turns of the member give
	// Distance against the candidate as observed.
	Rotation int
}

// NewDictionary returns an empty dictionary for n×n markers that aims for
// targetSize members, starting from DefaultInitialTau.
// Returns ErrGridSize or ErrTargetSize on invalid sizes.
func NewDictionary(targetSize, gridSize int) (*Dictionary, error) {
	if gridSize < 1 || gridSize > MaxGridSize {
		return nil, fmt.Errorf("%w: %d", ErrGridSize, gridSize)
	}
	if targetSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrTargetSize, targetSize)
	}
	return &Dictionary{
		targetSize: targetSize,
		gridSize:   gridSize,
		tau:        DefaultInitialTau,
		members:    make([]Marker, 0, targetSize),
	}, nil
}

// Len returns the number of members.
func (d *Dictionary) Len() int { return len(d.members) }

// TargetSize returns the requested number of members.
func (d *Dictionary) TargetSize() int { return d.targetSize }

// GridSize returns n.
func (d *Dictionary) GridSize() int { return d.gridSize }

// Tau returns the current separation threshold.
func (d *Dictionary) Tau() int { return d.tau }

// Member returns the member with the given id.
func (d *Dictionary) Member(id int) (Marker, bool) {
	if id < 0 || id >= len(d.members) {
		return Marker{}, false
	}
	return d.members[id], true
}

// Members returns the members in id order. The slice is a copy; the Markers
// themselves are immutable.
func (d *Dictionary) Members() []Marker {
	out := make([]Marker, len(d.members))
	copy(out, d.members)
	return out
}

// Append adds candidate as the next member. It performs no separation check:
// the acceptance policy belongs to the caller.
func (d *Dictionary) Append(candidate Marker) {
	d.members = append(d.members, candidate)
}

// DistanceFromDictionary returns the smaller of candidate's self-rotation
// distance and its rotation-invariant distance to every member. For an empty
// dictionary only the self-rotation distance applies. Members of a different
// size are skipped.
// Complexity: O(m·n²).
func (d *Dictionary) DistanceFromDictionary(candidate Marker) int {
	lowest := candidate.SelfHammingDistance()
	for _, m := range d.members {
		h := candidate.MinHammingDistance(m)
		if h == DistanceMismatch {
			continue
		}
		if h < lowest {
			lowest = h
		}
	}
	return lowest
}

// Contains reports whether some member has exactly candidate's rows.
// Complexity: O(m·n).
func (d *Dictionary) Contains(candidate Marker) bool {
	for _, m := range d.members {
		if candidate.Matches(m) {
			return true
		}
	}
	return false
}

// SumScore returns the sum of transition × rarity over every row of every
// member, using mode for the transition term. An empty dictionary sums to 0;
// callers normalising by SumScore must treat a zero sum specially.
// Complexity: O(m·n).
func (d *Dictionary) SumScore(mode TransitionMode) float64 {
	return d.stats(mode).sum
}

// Nearest finds the member with the smallest rotation-invariant distance to
// candidate. Ties go to the lowest id. It reports false when the dictionary
// is empty or candidate has a different size. Whether the match is close
// enough to accept is left to the caller, typically by comparing it with Tau.
// Complexity: O(m·n²).
func (d *Dictionary) Nearest(candidate Marker) (Match, bool) {
	if candidate.Size() != d.gridSize {
		return Match{}, false
	}
	best := Match{ID: -1, Distance: math.MaxInt}
	for id, m := range d.members {
		for k := 0; k < 4; k++ {
			h := candidate.HammingDistance(m.Rotate(k).words)
			if h == DistanceMismatch {
				break
			}
			if h < best.Distance {
				best = Match{ID: id, Distance: h, Rotation: k}
			}
		}
	}
	if best.ID < 0 {
		return Match{}, false
	}
	return best, true
}
