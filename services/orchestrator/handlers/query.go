// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers contains the Gin HTTP handlers for the Finsight
// orchestrator: agent queries, report ingestion, full-report extraction,
// and session tracking.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/finsightai/FinsightLocal/services/agent"
	"github.com/finsightai/FinsightLocal/services/llm"
	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/finsightai/FinsightLocal/services/retrieval"
	"github.com/gin-gonic/gin"
)

// AgentRunner executes one agent graph run. The concrete implementation
// builds a graph per request from the request's retriever configuration;
// tests substitute a fake.
type AgentRunner interface {
	Run(ctx context.Context, req *datatypes.QueryRequest) (*agent.State, error)
}

// GraphRunner is the production AgentRunner: it binds the shared model
// client and retriever factory into a fresh graph per request.
type GraphRunner struct {
	llmClient llm.LLMClient
	factory   *retrieval.Factory
}

// NewGraphRunner creates the production runner.
func NewGraphRunner(llmClient llm.LLMClient, factory *retrieval.Factory) *GraphRunner {
	return &GraphRunner{llmClient: llmClient, factory: factory}
}

// Run implements the AgentRunner interface.
func (r *GraphRunner) Run(ctx context.Context, req *datatypes.QueryRequest) (*agent.State, error) {
	// A retriever that cannot be built (no vector store configured, unknown
	// provider) must not fail the run up front: the router may still send
	// the query down the direct path, which needs no retrieval. The error
	// surfaces as a RetrievalError only if the retrieve branch runs.
	retriever, err := r.factory.New(retrieval.Config{
		Provider: req.Provider,
		TopK:     req.TopK,
		Filters:  req.Filters,
	})
	if err != nil {
		retriever = retrieval.Unavailable(err)
	}

	params := llm.GenerationParams{Model: req.Model}
	classifier := agent.NewLLMRouteClassifier(r.llmClient, params)
	graph := agent.NewGraph(r.llmClient, classifier, retriever, params)
	return graph.Run(ctx, req.Query)
}

// HandleQuery runs the agent graph for one user query.
//
// # Description
//
// Validates the request, executes the graph, and maps the typed agent
// errors onto HTTP status codes: routing and model-invocation faults are
// 502 (the upstream model failed or produced unusable output), retrieval
// faults are 503 (the vector store is unavailable), and a graph-state
// fault or anything untyped is 500. The agent itself never retries;
// neither does this handler.
func HandleQuery(runner AgentRunner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.QueryRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		req.EnsureDefaults()
		req.EnsureSessionId()
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		state, err := runner.Run(c.Request.Context(), &req)
		if err != nil {
			slog.Error("Agent run failed", "request_id", req.Id, "error", err)
			c.JSON(statusForAgentError(err), gin.H{"error": err.Error()})
			return
		}

		answer := ""
		if n := len(state.Messages); n > 0 {
			answer = state.Messages[n-1].Content
		}
		resp := datatypes.NewQueryResponse(&req, string(state.Route), answer, state.Messages, len(state.Documents))
		resp.FinancialStatement = state.FinancialStatement
		c.JSON(http.StatusOK, resp)
	}
}

// statusForAgentError maps the agent error taxonomy to HTTP status codes.
func statusForAgentError(err error) int {
	switch {
	case agent.IsRoutingError(err), agent.IsModelInvocationError(err):
		return http.StatusBadGateway
	case agent.IsRetrievalError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
