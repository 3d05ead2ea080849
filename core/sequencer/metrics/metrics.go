// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics exposes the sequencer core's Prometheus instrumentation,
// grounded on the teacher's metrics/prometheus package, which also reaches
// directly for github.com/prometheus/client_golang.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles every counter and gauge the core touches on the
// admission and batch-production hot paths.
type Metrics struct {
	AdmissionAccepted prometheus.Counter
	AdmissionRejected *prometheus.CounterVec // labeled by rejection reason

	BatchesSealed      prometheus.Counter
	BatchTxCount       prometheus.Histogram
	BatchGasUsed       prometheus.Histogram
	ForcedTxDropped    prometheus.Counter
	BatchesBelowMin    prometheus.Counter // advisory min_batch_size tracking

	PoolDepth        prometheus.Gauge
	ForcedQueueDepth prometheus.Gauge
}

// New registers and returns a fresh Metrics bundle on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AdmissionAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sequencer",
			Subsystem: "admission",
			Name:      "accepted_total",
			Help:      "Total number of accepted UserTransaction admissions.",
		}),
		AdmissionRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sequencer",
			Subsystem: "admission",
			Name:      "rejected_total",
			Help:      "Total number of rejected UserTransaction admissions, by reason.",
		}, []string{"reason"}),
		BatchesSealed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sequencer",
			Subsystem: "batch",
			Name:      "sealed_total",
			Help:      "Total number of batches sealed by the orchestrator.",
		}),
		BatchTxCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sequencer",
			Subsystem: "batch",
			Name:      "tx_count",
			Help:      "Number of transactions per sealed batch.",
			Buckets:   prometheus.LinearBuckets(0, 50, 10),
		}),
		BatchGasUsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sequencer",
			Subsystem: "batch",
			Name:      "gas_used",
			Help:      "Cumulative gas used per sealed batch.",
			Buckets:   prometheus.ExponentialBuckets(21000, 2, 16),
		}),
		ForcedTxDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sequencer",
			Subsystem: "batch",
			Name:      "forced_tx_dropped_total",
			Help:      "Forced transactions dropped from a batch for exceeding the gas budget.",
		}),
		BatchesBelowMin: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sequencer",
			Subsystem: "batch",
			Name:      "below_min_size_total",
			Help:      "Sealed batches whose size fell below the advisory min_batch_size.",
		}),
		PoolDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sequencer",
			Subsystem: "pool",
			Name:      "depth",
			Help:      "Current number of transactions pending in the normal pool.",
		}),
		ForcedQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sequencer",
			Subsystem: "forced_queue",
			Name:      "depth",
			Help:      "Current number of transactions pending in the forced queue.",
		}),
	}

	reg.MustRegister(
		m.AdmissionAccepted,
		m.AdmissionRejected,
		m.BatchesSealed,
		m.BatchTxCount,
		m.BatchGasUsed,
		m.ForcedTxDropped,
		m.BatchesBelowMin,
		m.PoolDepth,
		m.ForcedQueueDepth,
	)
	return m
}
