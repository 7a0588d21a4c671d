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
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finsightai/FinsightLocal/services/llm"
)

// RouteClassifier decides which branch a query takes. The orchestrator only
// depends on this interface, so the classification strategy (LLM-based,
// rule-based) can be swapped without touching the graph.
type RouteClassifier interface {
	Classify(ctx context.Context, query string) (Route, error)
}

// LLMRouteClassifier classifies queries with a structured-output model call
// constrained to the two-member route enum.
type LLMRouteClassifier struct {
	client llm.LLMClient
	params llm.GenerationParams
}

// NewLLMRouteClassifier creates a classifier backed by the given model
// client. Routing uses temperature 0 regardless of the run's generation
// parameters; classification should be deterministic.
func NewLLMRouteClassifier(client llm.LLMClient, params llm.GenerationParams) *LLMRouteClassifier {
	zero := float32(0)
	params.Temperature = &zero
	return &LLMRouteClassifier{client: client, params: params}
}

type routeDecision struct {
	Route     string `json:"route"`
	Reasoning string `json:"reasoning,omitempty"`
}

// Classify implements the RouteClassifier interface. Any model output that
// does not parse into the enum is a RoutingError; there is no default branch
// and no retry here.
func (c *LLMRouteClassifier) Classify(ctx context.Context, query string) (Route, error) {
	output, err := c.client.GenerateStructured(ctx, buildRoutingPrompt(query), llm.StructuredSchema{
		Name:   "route_decision",
		Schema: routeSchema,
	}, c.params)
	if err != nil {
		return "", &RoutingError{Err: err}
	}

	decision, err := parseRouteDecision(output)
	if err != nil {
		return "", &RoutingError{Output: output, Err: err}
	}

	route := Route(decision.Route)
	if !route.Valid() {
		return "", &RoutingError{Output: output}
	}
	slog.Debug("Query routed", "route", route, "reasoning", decision.Reasoning)
	return route, nil
}

// parseRouteDecision extracts the decision JSON from the model output,
// tolerating prose around the object (some local models wrap the JSON in
// explanation text despite the format constraint).
func parseRouteDecision(output string) (routeDecision, error) {
	var decision routeDecision
	trimmed := strings.TrimSpace(output)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end < start {
		return decision, fmt.Errorf("no JSON object in router output")
	}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &decision); err != nil {
		return decision, fmt.Errorf("failed to parse router output: %w", err)
	}
	return decision, nil
}
