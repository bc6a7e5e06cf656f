package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fiducial/fiducial"
)

func TestRecorder_FollowsGeneration(t *testing.T) {
	r := New()
	res, err := fiducial.Generate(6, 4, fiducial.WithSeed(4), fiducial.WithHooks(r.Hooks()))
	require.NoError(t, err)
	r.Observe(res)

	require.Equal(t, float64(res.Dictionary.Len()), testutil.ToFloat64(r.accepted))
	require.Equal(t, float64(res.Rejected), testutil.ToFloat64(r.rejected))
	require.Equal(t, float64(res.Decays), testutil.ToFloat64(r.decays))
	require.Equal(t, float64(res.Tau), testutil.ToFloat64(r.tau))
	require.Equal(t, float64(res.Dictionary.Len()), testutil.ToFloat64(r.members))
	require.Equal(t, 1.0, testutil.ToFloat64(r.status.WithLabelValues("done")))
	require.Equal(t, 0.0, testutil.ToFloat64(r.status.WithLabelValues("partial")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := New()
	res, err := fiducial.Generate(2, 3, fiducial.WithSeed(1), fiducial.WithHooks(r.Hooks()))
	require.NoError(t, err)
	r.Observe(res)

	path := filepath.Join(t.TempDir(), "fiducial.prom")
	require.NoError(t, r.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "fiducial_markers_accepted_total 2")
	require.Contains(t, string(raw), `fiducial_generation_status{status="done"} 1`)
}
