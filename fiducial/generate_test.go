package fiducial_test

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fiducial/fiducial"
)

// requireSeparated asserts the dictionary invariant against the achieved tau.
func requireSeparated(t *testing.T, res *fiducial.Result) {
	t.Helper()
	members := res.Dictionary.Members()
	for i, a := range members {
		if d := a.SelfHammingDistance(); d < res.Tau {
			t.Fatalf("member %d (%s) self distance %d < tau %d", i, a, d, res.Tau)
		}
		for j := i + 1; j < len(members); j++ {
			if d := a.MinHammingDistance(members[j]); d < res.Tau {
				t.Fatalf("members %d,%d distance %d < tau %d", i, j, d, res.Tau)
			}
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	_, err := fiducial.Generate(4, 0)
	require.ErrorIs(t, err, fiducial.ErrGridSize)
	_, err = fiducial.Generate(4, fiducial.MaxGridSize+1)
	require.ErrorIs(t, err, fiducial.ErrGridSize)
	_, err = fiducial.Generate(0, 3)
	require.ErrorIs(t, err, fiducial.ErrTargetSize)
}

// TestGenerate_Separation runs several sizes and checks the invariant.
func TestGenerate_Separation(t *testing.T) {
	cases := []struct {
		name   string
		target int
		n      int
		mode   fiducial.TransitionMode
	}{
		{"3x3x3", 3, 3, fiducial.TransitionInteger},
		{"3x3x6", 6, 3, fiducial.TransitionInteger},
		{"4x4x8", 8, 4, fiducial.TransitionInteger},
		{"5x5x10", 10, 5, fiducial.TransitionInteger},
		{"4x4x8Real", 8, 4, fiducial.TransitionReal},
		{"6x6x12Real", 12, 6, fiducial.TransitionReal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := fiducial.Generate(tc.target, tc.n,
				fiducial.WithSeed(7),
				fiducial.WithTransitionMode(tc.mode),
			)
			require.NoError(t, err)
			require.Equal(t, fiducial.StatusDone, res.Status)
			require.True(t, res.Complete())
			// The target size, not the grid size, decides when to stop.
			require.Equal(t, tc.target, res.Dictionary.Len())
			require.Equal(t, res.Tau, res.Dictionary.Tau())
			require.LessOrEqual(t, res.Tau, res.InitialTau)
			require.Equal(t, res.InitialTau-res.Tau, res.Decays)
			require.Equal(t, res.Dictionary.Len(), res.Accepted)
			require.Equal(t, res.Rounds, res.Accepted+res.Rejected)
			for _, m := range res.Dictionary.Members() {
				require.Equal(t, tc.n, m.Size())
			}
			requireSeparated(t, res)
		})
	}
}

// TestGenerate_AcceptedAgainstTauAtTheTime checks that each member met the
// threshold in force when it was accepted, which may exceed the final tau.
func TestGenerate_AcceptedAgainstTauAtTheTime(t *testing.T) {
	var taus []int
	res, err := fiducial.Generate(8, 4,
		fiducial.WithSeed(3),
		fiducial.WithHooks(fiducial.Hooks{
			OnAccept: func(id int, m fiducial.Marker, distance, tau int) {
				require.Equal(t, len(taus), id)
				require.GreaterOrEqual(t, distance, tau)
				taus = append(taus, tau)
			},
		}),
	)
	require.NoError(t, err)
	require.Len(t, taus, res.Dictionary.Len())

	members := res.Dictionary.Members()
	for j, m := range members {
		require.GreaterOrEqual(t, m.SelfHammingDistance(), taus[j])
		for i := 0; i < j; i++ {
			require.GreaterOrEqual(t, m.MinHammingDistance(members[i]), taus[j])
		}
		if j > 0 {
			require.LessOrEqual(t, taus[j], taus[j-1], "tau never grows")
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	run := func(opt fiducial.Option) []string {
		res, err := fiducial.Generate(6, 4, opt)
		require.NoError(t, err)
		out := make([]string, 0, res.Dictionary.Len())
		for _, m := range res.Dictionary.Members() {
			out = append(out, m.String())
		}
		return out
	}
	require.Equal(t, run(fiducial.WithSeed(42)), run(fiducial.WithSeed(42)))
	require.Equal(t,
		run(fiducial.WithRand(rand.New(rand.NewSource(9)))),
		run(fiducial.WithRand(rand.New(rand.NewSource(9)))),
	)
	// Seed 0 maps to the fixed default seed.
	require.Equal(t, run(fiducial.WithSeed(0)), run(fiducial.WithSeed(1)))
}

// TestGenerate_SeedChangesFirstMember checks the first round is randomised:
// without the shuffle every seed would start from the same ranked words.
func TestGenerate_SeedChangesFirstMember(t *testing.T) {
	firsts := make(map[string]bool)
	for seed := int64(1); seed <= 8; seed++ {
		res, err := fiducial.Generate(1, 4, fiducial.WithSeed(seed))
		require.NoError(t, err)
		m, ok := res.Dictionary.Member(0)
		require.True(t, ok)
		firsts[m.String()] = true
	}
	require.Greater(t, len(firsts), 1, "every seed produced the same first member")
}

// countingSource counts Int63 draws of the wrapped source.
type countingSource struct {
	src   rand.Source
	draws int
}

func (c *countingSource) Int63() int64 {
	c.draws++
	return c.src.Int63()
}

func (c *countingSource) Seed(seed int64) { c.src.Seed(seed) }

// TestGenerate_ShufflesOnlyFirstRound checks the RNG is consumed in round one
// and never again: later rounds rank by a stable sort of the previous order.
func TestGenerate_ShufflesOnlyFirstRound(t *testing.T) {
	src := &countingSource{src: rand.NewSource(21)}
	var seen []int
	record := func() { seen = append(seen, src.draws) }
	res, err := fiducial.Generate(6, 4,
		fiducial.WithRand(rand.New(src)),
		fiducial.WithHooks(fiducial.Hooks{
			OnAccept: func(int, fiducial.Marker, int, int) { record() },
			OnReject: func(fiducial.Marker, int, int) { record() },
		}),
	)
	require.NoError(t, err)
	require.Len(t, seen, res.Rounds)
	require.Greater(t, res.Rounds, 1)
	require.Positive(t, seen[0], "round one must draw from the RNG")
	for round, draws := range seen {
		require.Equal(t, seen[0], draws, "RNG drawn again in round %d", round+1)
	}
	require.Equal(t, seen[0], src.draws)
}

// TestGenerate_DegenerateTau drives a 1×1 grid, whose only markers look the
// same in every orientation, until tau has decayed to zero.
func TestGenerate_DegenerateTau(t *testing.T) {
	var decays []int
	res, err := fiducial.Generate(1, 1,
		fiducial.WithHooks(fiducial.Hooks{
			OnDecay: func(tau int) { decays = append(decays, tau) },
		}),
	)
	require.NoError(t, err)
	require.Equal(t, fiducial.StatusDone, res.Status)
	require.Equal(t, 0, res.Tau)
	require.True(t, res.Degenerate())
	require.Equal(t, 4, res.Decays)
	require.Equal(t, 12, res.Rejected)
	require.Equal(t, 1, res.Accepted)
	require.Equal(t, 13, res.Rounds)
	require.Equal(t, []int{3, 2, 1, 0}, decays)
}

func TestGenerate_Patience(t *testing.T) {
	res, err := fiducial.Generate(1, 1, fiducial.WithPatience(0), fiducial.WithInitialTau(2))
	require.NoError(t, err)
	// Every rejection decays tau: 2 → 1 → 0, then accept.
	require.Equal(t, 2, res.Rejected)
	require.Equal(t, 2, res.Decays)
	require.Equal(t, 3, res.Rounds)
}

// TestGenerate_RoundBudget asks for more markers than the budget allows and
// checks the run ends as partial instead of looping.
func TestGenerate_RoundBudget(t *testing.T) {
	res, err := fiducial.Generate(1000, 3, fiducial.WithSeed(5), fiducial.WithMaxRounds(200))
	require.NoError(t, err)
	require.Equal(t, fiducial.StatusPartial, res.Status)
	require.False(t, res.Complete())
	require.Equal(t, 200, res.Rounds)
	require.Less(t, res.Dictionary.Len(), 1000)
	require.Equal(t, 1000, res.Dictionary.TargetSize())
}

// TestGenerate_TauFloor checks that a floor turns decay into exhaustion.
func TestGenerate_TauFloor(t *testing.T) {
	res, err := fiducial.Generate(5, 3,
		fiducial.WithInitialTau(100),
		fiducial.WithMinTau(100),
	)
	require.NoError(t, err)
	require.Equal(t, fiducial.StatusExhausted, res.Status)
	require.Equal(t, 0, res.Dictionary.Len())
	require.Equal(t, 100, res.Tau)
	require.Equal(t, 0, res.Decays)
	require.Equal(t, fiducial.DefaultPatience+1, res.Rounds)
}

func TestGenerate_HooksAgreeWithResult(t *testing.T) {
	var accepts, rejects, decays int
	res, err := fiducial.Generate(10, 4,
		fiducial.WithSeed(11),
		fiducial.WithHooks(fiducial.Hooks{
			OnAccept: func(int, fiducial.Marker, int, int) { accepts++ },
			OnReject: func(_ fiducial.Marker, distance, tau int) {
				require.Less(t, distance, tau)
				rejects++
			},
			OnDecay: func(int) { decays++ },
		}),
	)
	require.NoError(t, err)
	require.Equal(t, res.Dictionary.Len(), accepts)
	require.Equal(t, res.Accepted, accepts)
	require.Equal(t, res.Rejected, rejects)
	require.Equal(t, res.Decays, decays)
}

func TestGenerate_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	res, err := fiducial.Generate(3, 3, fiducial.WithSeed(2), fiducial.WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	require.Equal(t, res.Dictionary.Len(), strings.Count(out, `"message":"accepted marker"`))
	require.Contains(t, out, `"message":"generation finished"`)
	require.Contains(t, out, `"status":"done"`)
	require.Contains(t, out, `"grid_size":3`)
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	require.Panics(t, func() { fiducial.WithRand(nil) })
	require.Panics(t, func() { fiducial.WithInitialTau(-1) })
	require.Panics(t, func() { fiducial.WithPatience(-1) })
	require.Panics(t, func() { fiducial.WithMaxRounds(0) })
	require.Panics(t, func() { fiducial.WithTransitionMode(fiducial.TransitionMode(9)) })
}

func TestStatusAndModeNames(t *testing.T) {
	require.Equal(t, "done", fiducial.StatusDone.String())
	require.Equal(t, "partial", fiducial.StatusPartial.String())
	require.Equal(t, "exhausted", fiducial.StatusExhausted.String())
	require.Equal(t, "unknown", fiducial.Status(42).String())

	m, ok := fiducial.ParseTransitionMode("real")
	require.True(t, ok)
	require.Equal(t, fiducial.TransitionReal, m)
	require.Equal(t, "real", m.String())
	_, ok = fiducial.ParseTransitionMode("fuzzy")
	require.False(t, ok)
}
