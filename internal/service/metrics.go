package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors for the snapshot pipeline.
var Metrics = struct {
	SnapshotLoads   *prometheus.CounterVec
	RefreshDuration prometheus.Histogram
	ChannelsTracked prometheus.Gauge
}{}

// InitMetrics registers the snapshot pipeline collectors. Call once at startup.
func InitMetrics() {
	Metrics.SnapshotLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_snapshot_loads_total",
			Help: "Snapshot load attempts, by serving source and outcome.",
		},
		[]string{"source", "outcome"},
	)

	Metrics.RefreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leaderboard_refresh_duration_seconds",
			Help:    "Duration of full refresh cycles (fetch, normalize, commit).",
			Buckets: prometheus.DefBuckets,
		},
	)

	Metrics.ChannelsTracked = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "leaderboard_channels",
			Help: "Number of channels in the current snapshot.",
		},
	)

	prometheus.MustRegister(
		Metrics.SnapshotLoads,
		Metrics.RefreshDuration,
		Metrics.ChannelsTracked,
	)
}
