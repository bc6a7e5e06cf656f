// Package fiducial generates dictionaries of square binary fiducial markers.
//
// What:
//
//   - Codeword is one n-bit row of a marker grid, stored as a small integer.
//   - Marker is an immutable n×n grid of Codewords with rotation and
//     rotation-invariant Hamming distance queries.
//   - Dictionary is the append-only set of accepted Markers together with the
//     minimum-separation threshold tau reached while building it.
//   - Generate runs the greedy search that scores every Codeword, forms a trial
//     Marker from the n best ones and accepts it only when its distance to the
//     dictionary (and to its own rotations) is at least tau. When acceptance
//     stalls, tau decays by one.
//
// Why:
//
//   - A square tag can be read starting from any of its four sides. Keeping
//     members apart from each other's rotations lets a detector classify a
//     noisy observed grid and recover its orientation.
//
// Complexity (n = grid size, m = dictionary size):
//
//   - Rotate:                 O(n²)
//   - MinHammingDistance:     O(n²)
//   - DistanceFromDictionary: O(m·n²)
//   - Generate, per round:    O(2ⁿ·m·n + 2ⁿ·log 2ⁿ)
//
// Options:
//
//   - WithSeed / WithRand:  deterministic source for the first-round shuffle.
//   - WithInitialTau:       starting threshold (default 4).
//   - WithPatience:         rejections tolerated before tau decays (default 2).
//   - WithMinTau:           floor below which generation stops as exhausted.
//   - WithMaxRounds:        round budget; spent budget ends as partial.
//   - WithTransitionMode:   integer (default) or real transition scoring.
//   - WithLogger, WithHooks: observability.
//
// Errors:
//
//   - ErrGridSize:   grid size outside [1, MaxGridSize].
//   - ErrTargetSize: requested dictionary size < 1.
//   - ErrWordLength, ErrInvalidBits, ErrNotSquare: malformed rows or grids.
//   - ErrCorruptDictionary: a persisted dictionary failed validation.
//
// Distances between grids of different shape are reported with the
// DistanceMismatch sentinel (-1), which no valid distance can take.
package fiducial
