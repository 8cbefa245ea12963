package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors for the refresh pipeline. Declared at package level so tasks
// can record without caring whether Register ran (tests skip it).
var (
	CyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ytsched_refresh_cycles_total",
			Help: "Completed refresh cycles, by result.",
		},
		[]string{"result"},
	)

	CycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ytsched_refresh_cycle_duration_seconds",
			Help:    "Duration of a full refresh cycle including all channel fetches.",
			Buckets: prometheus.DefBuckets,
		},
	)

	ChannelErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ytsched_channel_errors_total",
			Help: "Per-channel fetch failures across all cycles.",
		},
	)

	VisibleEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ytsched_visible_entries",
			Help: "Entries in the latest published schedule after window filtering.",
		},
	)
)

// Register installs all collectors into the default registry. Call once at
// startup.
func Register() {
	prometheus.MustRegister(
		CyclesTotal,
		CycleDuration,
		ChannelErrorsTotal,
		VisibleEntries,
	)
}
