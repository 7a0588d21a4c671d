// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package agent implements the financial-extraction agent: a two-branch
// state machine that routes a user query either to a direct model answer
// or through a retrieve → format → extract → synthesize pipeline grounded
// in report chunks from the vector store.
package agent

import (
	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
)

// ============================================================================
// Routes
// ============================================================================

// Route is the binary classification made once per request by the router.
type Route string

const (
	// RouteRetrieve sends the query through the retrieval pipeline.
	RouteRetrieve Route = "retrieve"

	// RouteDirect answers from the model's own knowledge, no retrieval.
	RouteDirect Route = "direct"
)

// Valid reports whether the route is one of the two known variants.
func (r Route) Valid() bool {
	return r == RouteRetrieve || r == RouteDirect
}

// ============================================================================
// State
// ============================================================================

// State is the per-request working record threaded through the graph. It is
// created fresh for every run and discarded once the response is produced;
// nothing in it survives across requests.
//
// Route is set exactly once by the router node and is read-only afterward.
// Messages is append-only across the run. Documents is populated only on
// the retrieve route. FinancialStatement and StructuredResponse are each
// fully replaced, never merged, when a node updates them.
type State struct {
	// Query is the user's question.
	Query string

	// Route is the branch selected by the router.
	Route Route

	// Messages is the ordered chat history accumulated during the run.
	Messages []datatypes.Message

	// Documents holds the retrieved report chunks, in store ranking order.
	Documents []datatypes.Document

	// FinancialStatement is the structured extraction result, when the
	// extraction output parsed into the ACRA schema.
	FinancialStatement *datatypes.FinancialStatement

	// StructuredResponse is the raw text of the extraction stage output.
	StructuredResponse string
}

// NewState creates a run state for the given query.
func NewState(query string) *State {
	return &State{Query: query}
}

// AppendMessage appends one turn to the run's chat history.
func (s *State) AppendMessage(msg datatypes.Message) {
	s.Messages = append(s.Messages, msg)
}
