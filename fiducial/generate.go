// Package fiducial - greedy dictionary generation.
//
// Generate is a two-state loop (searching, done) with one failure exit:
//
//   - Every round scores all 2ⁿ codewords against the current dictionary,
//     ranks them, and forms a trial marker from the n best.
//   - The trial joins the dictionary when its distance to every member and
//     to its own rotations is at least tau.
//   - When rejections exceed the patience, tau drops by one. Tau may reach
//     zero or below, at which point any trial is accepted; Result reports it.
//
// Only the first round is random: the ranked order is shuffled once, and the
// shuffled order then breaks score ties in every later round because the
// ranking is a stable sort of the previous order.
package fiducial

import (
	"sort"
)

// Generate builds a dictionary of up to targetSize n×n markers.
//
// Contracts:
//   - n must lie in [1, MaxGridSize]; targetSize must be ≥ 1.
//   - Generation stops when the dictionary holds targetSize members.
//   - Running out of candidates, hitting the WithMinTau floor or spending the
//     WithMaxRounds budget ends early; Result.Status tells which, and the
//     partial dictionary is returned.
//   - Once tau has decayed to 0 every trial passes, so later members may be
//     exact copies of earlier ones. Result.Degenerate reports that case;
//     Complete does not.
//
// Errors: ErrGridSize, ErrTargetSize. No other condition is an error.
//
// Complexity: O(R·(2ⁿ·(m·n + log 2ⁿ))) for R rounds and m members.
func Generate(targetSize, n int, opts ...Option) (*Result, error) {
	d, err := NewDictionary(targetSize, n)
	if err != nil {
		return nil, err
	}
	cfg := newGeneratorConfig(opts...)
	d.tau = cfg.initialTau

	log := cfg.log.With().
		Int("grid_size", n).
		Int("target_size", targetSize).
		Str("transition_mode", cfg.mode.String()).
		Logger()

	universe := enumerateWords(n)
	order := make([]int, len(universe))
	for i := range order {
		order[i] = i
	}
	scores := make([]float64, len(universe))

	res := &Result{
		Dictionary: d,
		Status:     StatusDone,
		InitialTau: cfg.initialTau,
	}
	failures := 0
	first := true

	for d.Len() != targetSize {
		if len(order) < n {
			res.Status = StatusExhausted
			log.Warn().Int("candidates", len(order)).Msg("candidate pool smaller than grid size")
			break
		}
		if cfg.maxRounds > 0 && res.Rounds >= cfg.maxRounds {
			res.Status = StatusPartial
			log.Warn().Int("rounds", res.Rounds).Msg("round budget spent")
			break
		}

		st := d.stats(cfg.mode)
		for i, w := range universe {
			scores[i] = st.score(w, cfg.mode)
		}
		sort.SliceStable(order, func(a, b int) bool {
			return scores[order[a]] > scores[order[b]]
		})
		if first {
			shuffleInPlace(order, cfg.rng)
			first = false
		}

		words := make([]Codeword, n)
		for i := 0; i < n; i++ {
			words[i] = universe[order[i]]
		}
		trial := Marker{words: words}
		res.Rounds++

		dist := d.DistanceFromDictionary(trial)
		if dist >= d.tau {
			d.Append(trial)
			failures = 0
			res.Accepted++
			log.Debug().
				Int("id", d.Len()-1).
				Int("distance", dist).
				Int("tau", d.tau).
				Str("marker", trial.String()).
				Msg("accepted marker")
			if cfg.hooks.OnAccept != nil {
				cfg.hooks.OnAccept(d.Len()-1, trial, dist, d.tau)
			}
		} else {
			failures++
			res.Rejected++
			if cfg.hooks.OnReject != nil {
				cfg.hooks.OnReject(trial, dist, d.tau)
			}
		}

		if failures > cfg.patience {
			if cfg.hasMinTau && d.tau-1 < cfg.minTau {
				res.Status = StatusExhausted
				log.Warn().Int("tau", d.tau).Int("min_tau", cfg.minTau).Msg("tau floor reached")
				break
			}
			d.tau--
			failures = 0
			res.Decays++
			log.Debug().Int("tau", d.tau).Msg("tau decayed")
			if cfg.hooks.OnDecay != nil {
				cfg.hooks.OnDecay(d.tau)
			}
		}
	}

	res.Tau = d.tau
	ev := log.Info()
	if res.Degenerate() {
		ev = log.Warn().Bool("degenerate", true)
	}
	ev.Str("status", res.Status.String()).
		Int("members", d.Len()).
		Int("tau", res.Tau).
		Int("rounds", res.Rounds).
		Int("decays", res.Decays).
		Msg("generation finished")

	return res, nil
}

// enumerateWords returns every codeword of length n in ascending order.
func enumerateWords(n int) []Codeword {
	size := 1 << n
	out := make([]Codeword, size)
	for v := 0; v < size; v++ {
		out[v] = Codeword{bits: uint64(v), length: n}
	}
	return out
}

// dictStats is a snapshot of the dictionary quantities scoring depends on,
// taken once per round.
type dictStats struct {
	counts map[Codeword]int
	total  int
	sum    float64
}

// stats computes word occurrence counts and the score normaliser.
// Complexity: O(m·n).
func (d *Dictionary) stats(mode TransitionMode) dictStats {
	st := dictStats{counts: make(map[Codeword]int)}
	for _, m := range d.members {
		for _, w := range m.words {
			st.counts[w]++
		}
		st.total += len(m.words)
	}
	for _, m := range d.members {
		for _, w := range m.words {
			st.sum += w.transition(mode) * st.rarity(w)
		}
	}
	return st
}

// rarity mirrors Codeword.Rarity against the snapshot.
func (s dictStats) rarity(w Codeword) float64 {
	if s.total == 0 {
		return 1
	}
	return 1 - float64(s.counts[w])/float64(s.total)
}

// score returns transition × rarity normalised by the dictionary sum.
// A non-positive sum (empty dictionary, or every member word scoring 0)
// leaves the product unnormalised; dividing by a positive constant would not
// change the ranking anyway.
func (s dictStats) score(w Codeword, mode TransitionMode) float64 {
	raw := w.transition(mode) * s.rarity(w)
	if s.sum <= 0 {
		return raw
	}
	return raw / s.sum
}
