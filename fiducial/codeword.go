package fiducial

import (
	"fmt"
	"math/bits"
	"strings"
)

// Codeword is one row of a marker grid: an L-bit pattern stored in the low
// bits of an integer. Column j lives at bit L-1-j, so the textual form reads
// most significant bit first ("100" == 4).
// Codeword is a small value type; copies are independent.
type Codeword struct {
	bits   uint64
	length int
}

// NewCodeword builds a Codeword of the given length from the low bits of v.
// Bits above length are discarded.
// Returns ErrWordLength if length is outside [1, MaxGridSize].
// Complexity: O(1).
func NewCodeword(v uint64, length int) (Codeword, error) {
	if length < 1 || length > MaxGridSize {
		return Codeword{}, fmt.Errorf("%w: %d", ErrWordLength, length)
	}
	return Codeword{bits: v & lowMask(length), length: length}, nil
}

// ParseCodeword parses a string of '0' and '1' characters.
// Returns ErrWordLength for empty or over-long input and ErrInvalidBits for
// any other character.
// Complexity: O(L).
func ParseCodeword(s string) (Codeword, error) {
	if len(s) < 1 || len(s) > MaxGridSize {
		return Codeword{}, fmt.Errorf("%w: %q", ErrWordLength, s)
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		v <<= 1
		switch s[i] {
		case '0':
		case '1':
			v |= 1
		default:
			return Codeword{}, fmt.Errorf("%w: %q", ErrInvalidBits, s)
		}
	}
	return Codeword{bits: v, length: len(s)}, nil
}

// Len returns the word length L.
func (c Codeword) Len() int { return c.length }

// Bits returns the pattern as an integer, column 0 in the highest bit.
func (c Codeword) Bits() uint64 { return c.bits }

// Bit reports whether column j is set. j must lie in [0, Len()).
func (c Codeword) Bit(j int) bool {
	return c.bits>>(c.length-1-j)&1 == 1
}

// String renders the pattern as '0'/'1' characters, column 0 first.
func (c Codeword) String() string {
	var sb strings.Builder
	sb.Grow(c.length)
	for j := 0; j < c.length; j++ {
		if c.Bit(j) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// equalPairs counts adjacent columns holding the same bit.
func (c Codeword) equalPairs() int {
	if c.length < 2 {
		return 0
	}
	m := lowMask(c.length - 1)
	changes := bits.OnesCount64((c.bits ^ c.bits>>1) & m)
	return c.length - 1 - changes
}

// TransitionScore returns 1 - pairs/(L-1) in integer arithmetic, where pairs
// counts adjacent equal bits. The truncation leaves two buckets: constant
// words score 0 and every other word scores 1. A single-bit word has no pairs
// and scores 1.
// Complexity: O(1).
func (c Codeword) TransitionScore() int {
	if c.length < 2 {
		return 1
	}
	return 1 - c.equalPairs()/(c.length-1)
}

// TransitionRatio returns 1 - pairs/(L-1) in floating point, in [0, 1].
// Alternating words score 1, constant words score 0.
// Complexity: O(1).
func (c Codeword) TransitionRatio() float64 {
	if c.length < 2 {
		return 1
	}
	return 1 - float64(c.equalPairs())/float64(c.length-1)
}

// transition returns the transition score under mode.
func (c Codeword) transition(mode TransitionMode) float64 {
	if mode == TransitionReal {
		return c.TransitionRatio()
	}
	return float64(c.TransitionScore())
}

// Rarity returns 1 for an empty dictionary, otherwise
// 1 - occurrences/total where occurrences counts the words of all members
// equal to c and total is the number of words across all members.
// Higher means rarer. A nil dictionary counts as empty.
// Complexity: O(m·n).
func (c Codeword) Rarity(d *Dictionary) float64 {
	if d == nil || d.Len() == 0 {
		return 1
	}
	var occurrences, total int
	for _, m := range d.members {
		for _, w := range m.words {
			if w == c {
				occurrences++
			}
		}
		total += len(m.words)
	}
	if total == 0 {
		return 1
	}
	return 1 - float64(occurrences)/float64(total)
}

// lowMask returns a mask with the low n bits set.
func lowMask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<n - 1
}
