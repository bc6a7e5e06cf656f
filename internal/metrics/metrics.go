// Package metrics exposes dictionary generation progress as Prometheus
// metrics. A Recorder plugs into fiducial.Generate through its hooks and can
// write a node-exporter textfile once the run is over.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/fiducial/fiducial"
)

const namespace = "fiducial"

// Recorder holds the generation metrics on a private registry.
type Recorder struct {
	reg *prometheus.Registry

	accepted prometheus.Counter
	rejected prometheus.Counter
	decays   prometheus.Counter
	distance prometheus.Histogram
	tau      prometheus.Gauge
	members  prometheus.Gauge
	status   *prometheus.GaugeVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		accepted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "markers_accepted_total",
			Help:      "Trial markers accepted into the dictionary.",
		}),
		rejected: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "markers_rejected_total",
			Help:      "Trial markers rejected for falling below tau.",
		}),
		decays: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tau_decays_total",
			Help:      "Times the separation threshold was lowered.",
		}),
		distance: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trial_distance",
			Help:      "Distance of each trial marker from the dictionary.",
			Buckets:   prometheus.LinearBuckets(0, 1, 17),
		}),
		tau: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tau",
			Help:      "Current separation threshold.",
		}),
		members: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dictionary_members",
			Help:      "Markers in the dictionary.",
		}),
		status: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generation_status",
			Help:      "1 for the status the last run ended with.",
		}, []string{"status"}),
	}
}

// Hooks returns callbacks that feed the Recorder from a Generate run.
func (r *Recorder) Hooks() fiducial.Hooks {
	return fiducial.Hooks{
		OnAccept: func(id int, _ fiducial.Marker, distance, tau int) {
			r.accepted.Inc()
			r.distance.Observe(float64(distance))
			r.members.Set(float64(id + 1))
			r.tau.Set(float64(tau))
		},
		OnReject: func(_ fiducial.Marker, distance, tau int) {
			r.rejected.Inc()
			r.distance.Observe(float64(distance))
			r.tau.Set(float64(tau))
		},
		OnDecay: func(tau int) {
			r.decays.Inc()
			r.tau.Set(float64(tau))
		},
	}
}

// Observe records the final state of a run.
func (r *Recorder) Observe(res *fiducial.Result) {
	r.tau.Set(float64(res.Tau))
	r.members.Set(float64(res.Dictionary.Len()))
	for _, s := range []fiducial.Status{fiducial.StatusDone, fiducial.StatusPartial, fiducial.StatusExhausted} {
		v := 0.0
		if s == res.Status {
			v = 1
		}
		r.status.WithLabelValues(s.String()).Set(v)
	}
}

// Gatherer returns the registry backing the Recorder.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile writes the metrics in the text exposition format to path,
// atomically, for the node-exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
