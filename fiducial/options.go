// Options tune a single Generate run. An Option given a value that can never
// be meaningful panics at the call site, so Generate only sees validated
// settings.

package fiducial

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// Option customizes a Generate run by mutating its generatorConfig.
type Option func(*generatorConfig)

// Hooks are optional callbacks fired synchronously from the generation loop.
// Nil fields are skipped.
type Hooks struct {
	// OnAccept fires after a trial marker joins the dictionary.
	OnAccept func(id int, m Marker, distance, tau int)
	// OnReject fires when a trial marker falls below tau.
	OnReject func(m Marker, distance, tau int)
	// OnDecay fires after tau is lowered.
	OnDecay func(tau int)
}

// WithSeed seeds the first-round shuffle deterministically.
// Seed 0 selects a fixed default seed.
func WithSeed(seed int64) Option {
	return func(c *generatorConfig) {
		c.rng = rngFromSeed(seed)
	}
}

// WithRand supplies the RNG used for the first-round shuffle.
// Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("fiducial: WithRand(nil)")
	}
	return func(c *generatorConfig) {
		c.rng = r
	}
}

// WithInitialTau sets the starting separation threshold. Panics if tau < 0.
func WithInitialTau(tau int) Option {
	if tau < 0 {
		panic("fiducial: WithInitialTau(tau<0)")
	}
	return func(c *generatorConfig) {
		c.initialTau = tau
	}
}

// WithPatience sets how many rejections are tolerated before tau decays;
// tau decays when the failure count exceeds p. Panics if p < 0.
func WithPatience(p int) Option {
	if p < 0 {
		panic("fiducial: WithPatience(p<0)")
	}
	return func(c *generatorConfig) {
		c.patience = p
	}
}

// WithMinTau sets a floor for tau. When a decay would take tau below the
// floor, generation stops with StatusExhausted instead. Without this option
// tau may decay to zero and below.
func WithMinTau(floor int) Option {
	return func(c *generatorConfig) {
		c.minTau = floor
		c.hasMinTau = true
	}
}

// WithMaxRounds bounds the number of trial markers evaluated. A spent budget
// ends generation with StatusPartial. Panics if rounds < 1.
func WithMaxRounds(rounds int) Option {
	if rounds < 1 {
		panic("fiducial: WithMaxRounds(rounds<1)")
	}
	return func(c *generatorConfig) {
		c.maxRounds = rounds
	}
}

// WithTransitionMode selects integer (default) or real transition scoring.
func WithTransitionMode(mode TransitionMode) Option {
	if mode != TransitionInteger && mode != TransitionReal {
		panic("fiducial: WithTransitionMode(unknown mode)")
	}
	return func(c *generatorConfig) {
		c.mode = mode
	}
}

// WithLogger routes generation logs to l. The default discards them.
func WithLogger(l zerolog.Logger) Option {
	return func(c *generatorConfig) {
		c.log = l
	}
}

// WithHooks installs generation callbacks.
func WithHooks(h Hooks) Option {
	return func(c *generatorConfig) {
		c.hooks = h
	}
}
