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
	"errors"
	"log/slog"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================================
// Direct answer node
// ============================================================================

// directAnswer answers the query from the model's own knowledge. It appends
// the user turn and the model reply to the state, in that order, and touches
// nothing else.
func (g *Graph) directAnswer(ctx context.Context, state *State) error {
	ctx, span := tracer.Start(ctx, "agent.directAnswer")
	defer span.End()

	turns := make([]datatypes.Message, 0, len(state.Messages)+2)
	turns = append(turns, datatypes.SystemMessage(directSystemPrompt))
	turns = append(turns, state.Messages...)
	userTurn := datatypes.UserMessage(state.Query)
	turns = append(turns, userTurn)

	reply, err := g.llmClient.Chat(ctx, turns, g.params)
	if err != nil {
		span.RecordError(err)
		return &ModelInvocationError{Stage: "direct_answer", Err: err}
	}

	state.AppendMessage(userTurn)
	state.AppendMessage(datatypes.AssistantMessage(reply))
	return nil
}

// ============================================================================
// Retrieve-and-answer pipeline
// ============================================================================

// retrieveDocuments calls the retriever with the raw query and stores the
// results on the state in the store's ranking order.
func (g *Graph) retrieveDocuments(ctx context.Context, state *State) error {
	ctx, span := tracer.Start(ctx, "agent.retrieveDocuments")
	defer span.End()

	if g.retriever == nil {
		err := errors.New("no retriever configured")
		span.RecordError(err)
		return &RetrievalError{Err: err}
	}
	docs, err := g.retriever.Retrieve(ctx, state.Query)
	if err != nil {
		span.RecordError(err)
		return &RetrievalError{Err: err}
	}
	state.Documents = docs
	span.SetAttributes(attribute.Int("agent.documents", len(docs)))
	slog.Debug("Documents retrieved", "count", len(docs))
	return nil
}

// generateResponse runs the two-stage prompt transformation: structured
// extraction over the formatted context, then answer synthesis from the
// extraction output. Splitting "find and normalize the facts" from "answer
// the question using the facts" keeps large filings from drowning the
// answer in document noise.
func (g *Graph) generateResponse(ctx context.Context, state *State) error {
	ctx, span := tracer.Start(ctx, "agent.generateResponse")
	defer span.End()

	contextBlock := FormatDocuments(state.Documents)

	extraction, err := g.extractOnce(ctx, contextBlock)
	if err != nil {
		span.RecordError(err)
		return err
	}
	state.StructuredResponse = extraction

	// Best effort: keep the parsed statement when the output conforms to
	// the ACRA schema, but never fail the run over a malformed
	// intermediate. The synthesis stage consumes the raw text either way.
	if statement := tryParseStatement(extraction); statement != nil {
		state.FinancialStatement = statement
	}

	answer, err := g.llmClient.Generate(ctx, buildSynthesisPrompt(state.Query, extraction), g.params)
	if err != nil {
		span.RecordError(err)
		return &ModelInvocationError{Stage: "synthesis", Err: err}
	}

	state.AppendMessage(datatypes.UserMessage(state.Query))
	state.AppendMessage(datatypes.AssistantMessage(answer))
	return nil
}

// extractOnce performs one structured-extraction call over a formatted
// context block.
func (g *Graph) extractOnce(ctx context.Context, contextBlock string) (string, error) {
	system, user := buildExtractionMessages(contextBlock)
	output, err := g.llmClient.GenerateStructured(ctx,
		system+"\n\n"+user,
		llmStatementSchema(),
		g.params,
	)
	if err != nil {
		return "", &ModelInvocationError{Stage: "extraction", Err: err}
	}
	return output, nil
}

// tryParseStatement parses extraction output into a FinancialStatement.
// Returns nil when the output is not valid statement JSON.
func tryParseStatement(output string) *datatypes.FinancialStatement {
	var statement datatypes.FinancialStatement
	if err := json.Unmarshal([]byte(output), &statement); err != nil {
		slog.Debug("Extraction output is not statement JSON", "error", err)
		return nil
	}
	if statement.IsEmpty() {
		return nil
	}
	return &statement
}
