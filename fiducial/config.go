// generatorConfig collects the settings Options write. With no options a run
// is seeded with the default seed, starts at DefaultInitialTau, tolerates
// DefaultPatience rejections per decay, ranks by integer transitions, has no
// round budget or tau floor, and logs nowhere.

package fiducial

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// generatorConfig aggregates all knobs of a Generate run.
type generatorConfig struct {
	rng        *rand.Rand
	initialTau int
	patience   int
	minTau     int
	hasMinTau  bool
	maxRounds  int // 0 means unbounded
	mode       TransitionMode
	log        zerolog.Logger
	hooks      Hooks
}

// newGeneratorConfig applies opts over the defaults; later options win.
func newGeneratorConfig(opts ...Option) generatorConfig {
	cfg := generatorConfig{
		initialTau: DefaultInitialTau,
		patience:   DefaultPatience,
		mode:       TransitionInteger,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rngFromSeed(0)
	}
	return cfg
}
