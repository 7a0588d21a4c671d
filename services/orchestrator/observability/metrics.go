// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the orchestrator.
//
// # Description
//
// Metrics cover the agent graph (runs by route and status, run latency,
// active runs), report ingestion (documents and chunks), and full-report
// extraction (batch counts). Exposed via the /metrics endpoint; use with
// Prometheus + Grafana for dashboards and alerting.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const metricsNamespace = "finsight"

// =============================================================================
// Agent Metrics
// =============================================================================

var (
	// AgentRunsTotal counts agent graph runs by route and status.
	// Labels: route (retrieve, direct, unrouted), status (success, error)
	AgentRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "agent",
			Name:      "runs_total",
			Help:      "Total agent graph runs by route and status",
		},
		[]string{"route", "status"},
	)

	// AgentRunDuration measures end-to-end graph run latency.
	// Labels: route
	AgentRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "agent",
			Name:      "run_duration_seconds",
			Help:      "End-to-end agent run duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"route"},
	)

	// AgentActiveRuns tracks graph runs currently in flight.
	AgentActiveRuns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "agent",
			Name:      "active_runs",
			Help:      "Number of agent runs currently in flight",
		},
	)

	// ExtractionBatchesTotal counts extraction batches processed by status.
	// Labels: status (parsed, unparsed, error)
	ExtractionBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "agent",
			Name:      "extraction_batches_total",
			Help:      "Total extraction batches processed by outcome",
		},
		[]string{"status"},
	)
)

// =============================================================================
// Ingestion Metrics
// =============================================================================

var (
	// IngestedReportsTotal counts reports ingested into the vector store.
	// Labels: status (success, error)
	IngestedReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "ingest",
			Name:      "reports_total",
			Help:      "Total reports ingested by status",
		},
		[]string{"status"},
	)

	// IngestedChunksTotal counts chunks written to the vector store.
	IngestedChunksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "ingest",
			Name:      "chunks_total",
			Help:      "Total report chunks written to the vector store",
		},
	)
)
