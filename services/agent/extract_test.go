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
	"strings"
	"testing"

	"github.com/finsightai/FinsightLocal/services/llm"
	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM returns a different structured reply per call, in order.
type scriptedLLM struct {
	fakeLLM
	replies []string
	call    int
}

func (s *scriptedLLM) GenerateStructured(_ context.Context, prompt string, _ llm.StructuredSchema, _ llm.GenerationParams) (string, error) {
	s.structuredCall = append(s.structuredCall, prompt)
	if s.call >= len(s.replies) {
		return "", errors.New("unscripted call")
	}
	reply := s.replies[s.call]
	s.call++
	return reply, nil
}

func TestExtractReport_SingleBatch(t *testing.T) {
	mock := &scriptedLLM{replies: []string{
		`{"company_name":"Acme Pte Ltd","uen":"201812345A","currency":"SGD","fiscal_period":"FY2024","revenue":4200000}`,
	}}
	graph := NewGraph(mock, &fakeClassifier{}, &fakeRetriever{}, defaultParams())

	result, err := graph.ExtractReport(context.Background(),
		[]datatypes.Document{doc("c1", "Revenue was S$4.2m.")}, 1000)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Batches)
	require.NotNil(t, result.Statement)
	assert.Equal(t, "Acme Pte Ltd", result.Statement.CompanyName)
}

func TestExtractReport_SequentialBatchesMergeEarlierWins(t *testing.T) {
	// Two batches disagree on revenue; the earlier batch wins because the
	// primary statements come before the notes in a filing.
	mock := &scriptedLLM{replies: []string{
		`{"company_name":"Acme Pte Ltd","currency":"SGD","revenue":4200000}`,
		`{"uen":"201812345A","revenue":9999999,"total_assets":10000000}`,
	}}
	graph := NewGraph(mock, &fakeClassifier{}, &fakeRetriever{}, defaultParams())

	docs := []datatypes.Document{
		doc("c1", strings.Repeat("a", 400)),
		doc("c2", strings.Repeat("b", 400)),
	}
	// Budget fits one document per batch.
	result, err := graph.ExtractReport(context.Background(), docs, 110)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Batches)
	require.Len(t, mock.structuredCall, 2)
	// Strictly sequential: first batch's context precedes the second's.
	assert.Contains(t, mock.structuredCall[0], "aaa")
	assert.Contains(t, mock.structuredCall[1], "bbb")

	require.NotNil(t, result.Statement)
	assert.Equal(t, "Acme Pte Ltd", result.Statement.CompanyName)
	assert.Equal(t, "201812345A", result.Statement.UEN)
	require.NotNil(t, result.Statement.Revenue)
	assert.Equal(t, float64(4200000), *result.Statement.Revenue)
	require.NotNil(t, result.Statement.TotalAssets)
	assert.Equal(t, float64(10000000), *result.Statement.TotalAssets)
}

func TestExtractReport_UnparsedBatchSkipped(t *testing.T) {
	mock := &scriptedLLM{replies: []string{
		"not json at all",
		`{"company_name":"Acme Pte Ltd"}`,
	}}
	graph := NewGraph(mock, &fakeClassifier{}, &fakeRetriever{}, defaultParams())

	docs := []datatypes.Document{
		doc("c1", strings.Repeat("a", 400)),
		doc("c2", strings.Repeat("b", 400)),
	}
	result, err := graph.ExtractReport(context.Background(), docs, 110)
	require.NoError(t, err)
	require.NotNil(t, result.Statement)
	assert.Equal(t, "Acme Pte Ltd", result.Statement.CompanyName)
}

func TestExtractReport_ModelFailureAborts(t *testing.T) {
	mock := &scriptedLLM{} // no scripted replies: first call errors
	graph := NewGraph(mock, &fakeClassifier{}, &fakeRetriever{}, defaultParams())

	_, err := graph.ExtractReport(context.Background(),
		[]datatypes.Document{doc("c1", "body")}, 1000)
	require.Error(t, err)
	assert.True(t, IsModelInvocationError(err))
}

func TestExtractReport_NoDocuments(t *testing.T) {
	graph := NewGraph(&fakeLLM{}, &fakeClassifier{}, &fakeRetriever{}, defaultParams())

	result, err := graph.ExtractReport(context.Background(), nil, 1000)
	require.NoError(t, err)
	assert.Zero(t, result.Batches)
	assert.Nil(t, result.Statement)
}
