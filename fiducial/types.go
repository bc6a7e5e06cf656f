package fiducial

import "errors"

// Sentinel errors for fiducial operations.
var (
	// ErrGridSize indicates a grid size outside [1, MaxGridSize].
	ErrGridSize = errors.New("fiducial: grid size out of range")
	// ErrTargetSize indicates a requested dictionary size below one.
	ErrTargetSize = errors.New("fiducial: target size must be at least 1")
	// ErrWordLength indicates a codeword whose length is outside [1, MaxGridSize].
	ErrWordLength = errors.New("fiducial: codeword length out of range")
	// ErrInvalidBits indicates a textual codeword containing characters other than '0' and '1'.
	ErrInvalidBits = errors.New("fiducial: codeword must contain only '0' and '1'")
	// ErrNotSquare indicates a marker whose row count differs from its row length.
	ErrNotSquare = errors.New("fiducial: marker grid must be square")
	// ErrCorruptDictionary indicates a persisted dictionary that failed validation.
	ErrCorruptDictionary = errors.New("fiducial: corrupt dictionary document")
)

const (
	// MaxGridSize bounds n so that the 2ⁿ codeword universe stays enumerable
	// and a whole grid fits in 64 bits.
	MaxGridSize = 8

	// DistanceMismatch is returned by HammingDistance when the operands have
	// different shapes. Valid distances are never negative.
	DistanceMismatch = -1

	// DefaultInitialTau is the starting separation threshold.
	DefaultInitialTau = 4

	// DefaultPatience is the number of rejections tolerated before tau decays.
	// Tau decays on the rejection that pushes the counter above this value.
	DefaultPatience = 2
)

// Status classifies how a generation run ended.
type Status int

const (
	// StatusDone means the dictionary reached its target size.
	StatusDone Status = iota
	// StatusPartial means the round budget ran out first.
	StatusPartial
	// StatusExhausted means the candidate pool could not supply n words,
	// or tau would have decayed below its configured floor.
	StatusExhausted
)

// String returns a lower-case name for s.
func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusPartial:
		return "partial"
	case StatusExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// TransitionMode selects the arithmetic of the transition score.
type TransitionMode int

const (
	// TransitionInteger computes 1 - pairs/(L-1) with integer division.
	// Every word scores 1 except the constant words, which score 0.
	TransitionInteger TransitionMode = iota
	// TransitionReal computes the same formula in floating point, giving a
	// graded preference for words with more bit transitions.
	TransitionReal
)

// String returns a lower-case name for m.
func (m TransitionMode) String() string {
	switch m {
	case TransitionInteger:
		return "integer"
	case TransitionReal:
		return "real"
	default:
		return "unknown"
	}
}

// ParseTransitionMode maps "integer" or "real" to a TransitionMode.
func ParseTransitionMode(s string) (TransitionMode, bool) {
	switch s {
	case "integer", "int", "":
		return TransitionInteger, true
	case "real", "float":
		return TransitionReal, true
	default:
		return TransitionInteger, false
	}
}

// Result holds the outcome of Generate.
type Result struct {
	// Dictionary holds every accepted marker, possibly fewer than requested.
	Dictionary *Dictionary

	// Status reports whether the target size was reached.
	Status Status

	// InitialTau is the threshold generation started from.
	InitialTau int

	// Tau is the threshold in force when generation stopped. Members accepted
	// early may satisfy a larger value; every member satisfies this one.
	Tau int

	// Rounds counts trial markers evaluated.
	Rounds int

	// Accepted counts trial markers appended to the dictionary.
	Accepted int

	// Rejected counts trial markers below the threshold.
	Rejected int

	// Decays counts how many times tau was lowered.
	Decays int
}

// Complete reports whether the dictionary reached its target size. It says
// nothing about separation: a Degenerate result may be complete and still
// hold exact duplicates.
func (r *Result) Complete() bool {
	return r.Status == StatusDone
}

// Degenerate reports whether tau decayed to zero or below, in which case the
// dictionary carries no minimum-separation guarantee.
func (r *Result) Degenerate() bool {
	return r.Tau <= 0
}
