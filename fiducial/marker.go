package fiducial

import (
	"fmt"
	"math/bits"
	"strings"
)

// Marker is an n×n bit grid read as n rows, each row a Codeword of length n.
// A Marker owns its rows: constructors copy their input and accessors return
// copies, so a Marker never changes after construction.
type Marker struct {
	words []Codeword
}

// NewMarker builds a Marker from n rows of length n.
// Returns ErrGridSize for zero rows or more than MaxGridSize rows and
// ErrNotSquare if any row length differs from the row count.
// Complexity: O(n).
func NewMarker(words []Codeword) (Marker, error) {
	n := len(words)
	if n < 1 || n > MaxGridSize {
		return Marker{}, fmt.Errorf("%w: %d rows", ErrGridSize, n)
	}
	for i, w := range words {
		if w.length != n {
			return Marker{}, fmt.Errorf("%w: row %d has length %d, want %d", ErrNotSquare, i, w.length, n)
		}
	}
	cp := make([]Codeword, n)
	copy(cp, words)
	return Marker{words: cp}, nil
}

// ParseMarker builds a Marker from textual rows such as "101".
// Complexity: O(n²).
func ParseMarker(rows ...string) (Marker, error) {
	words := make([]Codeword, len(rows))
	for i, r := range rows {
		w, err := ParseCodeword(r)
		if err != nil {
			return Marker{}, fmt.Errorf("row %d: %w", i, err)
		}
		words[i] = w
	}
	return NewMarker(words)
}

// Size returns n, the number of rows (and columns).
func (m Marker) Size() int { return len(m.words) }

// Words returns a copy of the rows.
func (m Marker) Words() []Codeword {
	cp := make([]Codeword, len(m.words))
	copy(cp, m.words)
	return cp
}

// Rows returns the rows in textual form.
func (m Marker) Rows() []string {
	out := make([]string, len(m.words))
	for i, w := range m.words {
		out[i] = w.String()
	}
	return out
}

// Grid returns the bit grid as Grid()[row][col], true for a set bit.
// Complexity: O(n²).
func (m Marker) Grid() [][]bool {
	n := len(m.words)
	g := make([][]bool, n)
	for i, w := range m.words {
		g[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			g[i][j] = w.Bit(j)
		}
	}
	return g
}

// String joins the rows with '/'.
func (m Marker) String() string {
	return strings.Join(m.Rows(), "/")
}

// Rotate returns a new Marker turned 90° counter-clockwise k times.
// k is taken modulo 4, negative values included, so Rotate(4) == Rotate(0).
// One step transposes the grid and then reverses the row order.
// Complexity: O(n²) per step.
func (m Marker) Rotate(k int) Marker {
	k = ((k % 4) + 4) % 4
	cur := m.Words()
	for ; k > 0; k-- {
		cur = rotateOnce(cur)
	}
	return Marker{words: cur}
}

// rotateOnce transposes src and reverses the row order: out[i][j] = src[j][n-1-i].
func rotateOnce(src []Codeword) []Codeword {
	n := len(src)
	out := make([]Codeword, n)
	for i := 0; i < n; i++ {
		var v uint64
		col := n - 1 - i
		for j := 0; j < n; j++ {
			v <<= 1
			if src[j].Bit(col) {
				v |= 1
			}
		}
		out[i] = Codeword{bits: v, length: n}
	}
	return out
}

// HammingDistance counts differing bits between m and other, compared row by
// row without rotation. Returns DistanceMismatch if the row counts differ or
// any pair of rows has different lengths.
// Complexity: O(n).
func (m Marker) HammingDistance(other []Codeword) int {
	if len(m.words) != len(other) {
		return DistanceMismatch
	}
	dist := 0
	for i, w := range m.words {
		if w.length != other[i].length {
			return DistanceMismatch
		}
		dist += bits.OnesCount64(w.bits ^ other[i].bits)
	}
	return dist
}

// MinHammingDistance returns the smallest Hamming distance between m and any
// of the four rotations of other, making the comparison orientation-free.
// Returns DistanceMismatch if the markers differ in size.
// Complexity: O(n²).
func (m Marker) MinHammingDistance(other Marker) int {
	best := m.HammingDistance(other.words)
	if best == DistanceMismatch {
		return DistanceMismatch
	}
	for k := 1; k < 4; k++ {
		if d := m.HammingDistance(other.Rotate(k).words); d < best {
			best = d
		}
	}
	return best
}

// SelfHammingDistance returns the smallest Hamming distance between m and its
// own rotations by 90°, 180° and 270°. Zero means m looks the same in two
// orientations, so a detector could not tell which way up it is.
// Complexity: O(n²).
func (m Marker) SelfHammingDistance() int {
	best := -1
	r := m
	for k := 1; k < 4; k++ {
		r = r.Rotate(1)
		if d := m.HammingDistance(r.words); best < 0 || d < best {
			best = d
		}
	}
	return best
}

// ContainsWord reports whether any row of m equals w.
// Complexity: O(n).
func (m Marker) ContainsWord(w Codeword) bool {
	for _, x := range m.words {
		if x == w {
			return true
		}
	}
	return false
}

// Matches reports whether other has the same rows in the same order.
// Rotated copies do not match.
// Complexity: O(n).
func (m Marker) Matches(other Marker) bool {
	if len(m.words) != len(other.words) {
		return false
	}
	for i, w := range m.words {
		if w != other.words[i] {
			return false
		}
	}
	return true
}
