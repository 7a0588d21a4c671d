// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/finsightai/FinsightLocal/services/llm"
	"github.com/finsightai/FinsightLocal/services/orchestrator/observability"
	"github.com/finsightai/FinsightLocal/services/retrieval"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("finsight.agent.graph")

// Graph wires the agent nodes into the two-branch state machine:
//
//	start → classify → {retrieveDocuments → generateResponse | directAnswer} → end
//
// One Graph serves many concurrent requests; all per-request data lives on
// the State, and the collaborators (model client, retriever, classifier)
// must themselves be safe for concurrent use. Within one request execution
// is strictly sequential, a single pass with no cycles and no retries.
type Graph struct {
	llmClient  llm.LLMClient
	classifier RouteClassifier
	retriever  retrieval.Retriever
	params     llm.GenerationParams
}

// NewGraph assembles the agent graph.
//
// # Inputs
//
//   - llmClient: chat-model capability used by every generation node.
//   - classifier: route decision strategy; see NewLLMRouteClassifier.
//   - retriever: document retrieval capability, used only on the
//     retrieve branch.
//   - params: generation parameters applied to every model call in the run.
func NewGraph(llmClient llm.LLMClient, classifier RouteClassifier, retriever retrieval.Retriever, params llm.GenerationParams) *Graph {
	return &Graph{
		llmClient:  llmClient,
		classifier: classifier,
		retriever:  retriever,
		params:     params,
	}
}

// Run executes one pass of the graph over a fresh state for the query.
//
// # Outputs
//
//   - *State: the final state; Messages ends with the user turn followed by
//     exactly one model reply.
//   - error: one of the typed agent errors. The state is not meaningful
//     when err is non-nil.
func (g *Graph) Run(ctx context.Context, query string) (*State, error) {
	ctx, span := tracer.Start(ctx, "agent.Run")
	defer span.End()
	start := time.Now()
	observability.AgentActiveRuns.Inc()
	defer observability.AgentActiveRuns.Dec()

	state := NewState(query)

	route, err := g.classifier.Classify(ctx, query)
	if err != nil {
		return nil, g.fail(span, state, err, start)
	}
	state.Route = route
	span.SetAttributes(attribute.String("agent.route", string(route)))

	// Dispatch on the route variant. No default branch: an unknown route is
	// a fatal state fault, never a silent fallback.
	switch state.Route {
	case RouteDirect:
		err = g.directAnswer(ctx, state)
	case RouteRetrieve:
		if err = g.retrieveDocuments(ctx, state); err == nil {
			err = g.generateResponse(ctx, state)
		}
	default:
		err = &GraphStateError{Route: state.Route}
	}
	if err != nil {
		return nil, g.fail(span, state, err, start)
	}

	observability.AgentRunsTotal.WithLabelValues(string(state.Route), "success").Inc()
	observability.AgentRunDuration.WithLabelValues(string(state.Route)).Observe(time.Since(start).Seconds())
	slog.Info("Agent run complete", "route", state.Route, "documents", len(state.Documents), "duration", time.Since(start))
	return state, nil
}

// fail records a terminal run failure on the span and metrics.
func (g *Graph) fail(span trace.Span, state *State, err error, start time.Time) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	route := string(state.Route)
	if route == "" {
		route = "unrouted"
	}
	observability.AgentRunsTotal.WithLabelValues(route, "error").Inc()
	observability.AgentRunDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	slog.Error("Agent run failed", "route", route, "error", err)
	return err
}
