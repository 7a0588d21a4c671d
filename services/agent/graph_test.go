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
	"errors"
	"testing"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphRun_DirectPath(t *testing.T) {
	mock := &fakeLLM{chatReply: "4"}
	retriever := &fakeRetriever{docs: []datatypes.Document{doc("x", "unused")}}
	graph := NewGraph(mock, &fakeClassifier{route: RouteDirect}, retriever, defaultParams())

	state, err := graph.Run(context.Background(), "What is 2+2?")
	require.NoError(t, err)

	assert.Equal(t, RouteDirect, state.Route)
	// No retrieval call is made on the direct path and documents stay empty.
	assert.Zero(t, retriever.calls)
	assert.Empty(t, state.Documents)

	// Exactly the user turn then one model reply.
	require.Len(t, state.Messages, 2)
	assert.Equal(t, datatypes.RoleUser, state.Messages[0].Role)
	assert.Equal(t, "What is 2+2?", state.Messages[0].Content)
	assert.Equal(t, datatypes.RoleAssistant, state.Messages[1].Role)
	assert.Equal(t, "4", state.Messages[1].Content)

	// The model call is framed with a system turn, which never lands on
	// the state.
	require.Len(t, mock.chatCalls, 1)
	sent := mock.chatCalls[0]
	require.NotEmpty(t, sent)
	assert.Equal(t, datatypes.RoleSystem, sent[0].Role)
	assert.Equal(t, datatypes.RoleUser, sent[len(sent)-1].Role)
}

func TestGraphRun_RetrieveWithoutRetrieverIsRetrievalError(t *testing.T) {
	mock := &fakeLLM{chatReply: "unused"}
	graph := NewGraph(mock, &fakeClassifier{route: RouteRetrieve}, nil, defaultParams())

	_, err := graph.Run(context.Background(), "What was revenue?")
	require.Error(t, err)
	assert.True(t, IsRetrievalError(err))
	// The pipeline stops before any model call.
	assert.Empty(t, mock.structuredCall)
	assert.Empty(t, mock.generateCalls)
}

func TestGraphRun_RetrievePath(t *testing.T) {
	docs := []datatypes.Document{
		doc("c1", "Revenue was S$4.2m."),
		doc("c2", "Profit before tax was S$0.8m."),
		doc("c3", "Total assets were S$10m."),
	}
	mock := &fakeLLM{
		structuredOut: map[string]string{
			"financial_statement": `{"company_name":"Acme Pte Ltd","uen":"201812345A","currency":"SGD","fiscal_period":"FY2024","revenue":4200000}`,
		},
		generateReply: "Revenue was S$4.2m in FY2024.",
	}
	retriever := &fakeRetriever{docs: docs}
	graph := NewGraph(mock, &fakeClassifier{route: RouteRetrieve}, retriever, defaultParams())

	state, err := graph.Run(context.Background(), "What was revenue in the filing?")
	require.NoError(t, err)

	assert.Equal(t, RouteRetrieve, state.Route)
	assert.Equal(t, 1, retriever.calls)
	assert.Len(t, state.Documents, 3)

	// Extraction invoked once with all three documents in one context block.
	require.Len(t, mock.structuredCall, 1)
	extractionPrompt := mock.structuredCall[0]
	assert.Contains(t, extractionPrompt, "Revenue was S$4.2m.")
	assert.Contains(t, extractionPrompt, "Profit before tax was S$0.8m.")
	assert.Contains(t, extractionPrompt, "Total assets were S$10m.")

	// Synthesis invoked once with the extraction output.
	require.Len(t, mock.generateCalls, 1)
	assert.Contains(t, mock.generateCalls[0], `"company_name":"Acme Pte Ltd"`)
	assert.Contains(t, mock.generateCalls[0], "What was revenue in the filing?")

	// The parsed statement is kept on the state.
	require.NotNil(t, state.FinancialStatement)
	assert.Equal(t, "Acme Pte Ltd", state.FinancialStatement.CompanyName)
	require.NotNil(t, state.FinancialStatement.Revenue)
	assert.Equal(t, float64(4200000), *state.FinancialStatement.Revenue)

	// Message history ends with exactly the user turn and one reply.
	require.Len(t, state.Messages, 2)
	assert.Equal(t, datatypes.RoleUser, state.Messages[0].Role)
	assert.Equal(t, "Revenue was S$4.2m in FY2024.", state.Messages[1].Content)
}

func TestGraphRun_MalformedExtractionIsBestEffort(t *testing.T) {
	// Extraction output that is not statement JSON still feeds synthesis.
	mock := &fakeLLM{
		structuredOut: map[string]string{
			"financial_statement": "revenue is around four million",
		},
		generateReply: "About four million.",
	}
	retriever := &fakeRetriever{docs: []datatypes.Document{doc("c1", "body")}}
	graph := NewGraph(mock, &fakeClassifier{route: RouteRetrieve}, retriever, defaultParams())

	state, err := graph.Run(context.Background(), "revenue?")
	require.NoError(t, err)
	assert.Nil(t, state.FinancialStatement)
	assert.Equal(t, "revenue is around four million", state.StructuredResponse)
	require.Len(t, mock.generateCalls, 1)
	assert.Contains(t, mock.generateCalls[0], "revenue is around four million")
}

func TestGraphRun_UnknownRouteFailsRequest(t *testing.T) {
	mock := &fakeLLM{chatReply: "should never be called"}
	retriever := &fakeRetriever{}
	graph := NewGraph(mock, &fakeClassifier{route: Route("hybrid")}, retriever, defaultParams())

	_, err := graph.Run(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, IsGraphStateError(err))

	// Neither branch executed.
	assert.Zero(t, retriever.calls)
	assert.Empty(t, mock.chatCalls)
	assert.Empty(t, mock.structuredCall)
}

func TestGraphRun_RoutingFailureAborts(t *testing.T) {
	classifier := &fakeClassifier{err: &RoutingError{Output: "garbage"}}
	graph := NewGraph(&fakeLLM{}, classifier, &fakeRetriever{}, defaultParams())

	_, err := graph.Run(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, IsRoutingError(err))
}

func TestGraphRun_RetrievalFailureAborts(t *testing.T) {
	mock := &fakeLLM{}
	retriever := &fakeRetriever{err: errors.New("weaviate unreachable")}
	graph := NewGraph(mock, &fakeClassifier{route: RouteRetrieve}, retriever, defaultParams())

	_, err := graph.Run(context.Background(), "revenue?")
	require.Error(t, err)
	assert.True(t, IsRetrievalError(err))
	// Pipeline aborted before any model call.
	assert.Empty(t, mock.structuredCall)
	assert.Empty(t, mock.generateCalls)
}

func TestGraphRun_SynthesisFailureAborts(t *testing.T) {
	mock := &fakeLLM{
		structuredOut: map[string]string{"financial_statement": `{}`},
		generateErr:   errors.New("model timeout"),
	}
	graph := NewGraph(mock, &fakeClassifier{route: RouteRetrieve},
		&fakeRetriever{docs: []datatypes.Document{doc("c1", "body")}}, defaultParams())

	_, err := graph.Run(context.Background(), "revenue?")
	require.Error(t, err)
	assert.True(t, IsModelInvocationError(err))

	var mie *ModelInvocationError
	require.ErrorAs(t, err, &mie)
	assert.Equal(t, "synthesis", mie.Stage)
}

func TestGraphRun_DirectModelFailureAborts(t *testing.T) {
	mock := &fakeLLM{chatErr: errors.New("connection reset")}
	graph := NewGraph(mock, &fakeClassifier{route: RouteDirect}, &fakeRetriever{}, defaultParams())

	_, err := graph.Run(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, IsModelInvocationError(err))

	var mie *ModelInvocationError
	require.ErrorAs(t, err, &mie)
	assert.Equal(t, "direct_answer", mie.Stage)
}
