// Package metrics exposes prometheus counters and histograms for the
// probe, resolve, and download paths, registered against the default
// registry the way the teacher wires client_golang into its status
// endpoints.
//
// Only ResolvesTotal is incremented, by the CLI's data subcommand; the
// other collectors are registered and exported but nothing records into
// them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProbesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nwpfetch",
		Name:      "probes_total",
		Help:      "HEAD probes issued against mirrors, by source and outcome.",
	}, []string{"source", "outcome"})

	ResolvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nwpfetch",
		Name:      "resolves_total",
		Help:      "Source resolutions performed, by model and outcome.",
	}, []string{"model", "outcome"})

	BytesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nwpfetch",
		Name:      "bytes_fetched_total",
		Help:      "Bytes fetched from mirrors, by model and source.",
	}, []string{"model", "source"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nwpfetch",
		Name:      "cache_hits_total",
		Help:      "Local cache hits avoiding a remote fetch, by kind (grib, index).",
	}, []string{"kind"})

	DownloadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nwpfetch",
		Name:      "download_duration_seconds",
		Help:      "Wall-clock time to complete a download (subset or full), by model.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"model"})
)
