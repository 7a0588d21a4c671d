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
	"strings"
	"testing"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sized builds a document whose estimated weight is exactly tokens
// (content only, no metadata).
func sized(id string, tokens int) datatypes.Document {
	return datatypes.Document{
		Content:  strings.Repeat("x", tokens*4),
		Metadata: nil,
	}
}

func TestEstimateTokens(t *testing.T) {
	d := datatypes.Document{
		Content:  strings.Repeat("a", 400),
		Metadata: map[string]any{"id": "c1"}, // "id" + "c1" = 4 chars
	}
	assert.Equal(t, 101, EstimateTokens(d))
}

func TestSplitIntoBatches_Empty(t *testing.T) {
	assert.Nil(t, SplitIntoBatches(nil, 100))
}

func TestSplitIntoBatches_RespectsBudget(t *testing.T) {
	docs := []datatypes.Document{
		sized("a", 40), sized("b", 40), sized("c", 40), sized("d", 40),
	}
	batches := SplitIntoBatches(docs, 100)
	require.Len(t, batches, 2)

	for _, batch := range batches {
		require.NotEmpty(t, batch)
		total := 0
		for _, d := range batch {
			total += EstimateTokens(d)
		}
		assert.LessOrEqual(t, total, 100)
	}
}

func TestSplitIntoBatches_PreservesOrder(t *testing.T) {
	docs := []datatypes.Document{
		doc("1", strings.Repeat("x", 200)),
		doc("2", strings.Repeat("y", 200)),
		doc("3", strings.Repeat("z", 200)),
	}
	batches := SplitIntoBatches(docs, 60)

	var flattened []datatypes.Document
	for _, batch := range batches {
		require.NotEmpty(t, batch)
		flattened = append(flattened, batch...)
	}
	require.Len(t, flattened, len(docs))
	for i := range docs {
		assert.Equal(t, docs[i].Content, flattened[i].Content)
	}
}

func TestSplitIntoBatches_OversizedDocumentOwnBatch(t *testing.T) {
	docs := []datatypes.Document{
		sized("small-1", 10),
		sized("huge", 500), // alone exceeds the budget
		sized("small-2", 10),
	}
	batches := SplitIntoBatches(docs, 100)
	require.Len(t, batches, 3)

	assert.Len(t, batches[1], 1)
	assert.Greater(t, EstimateTokens(batches[1][0]), 100)
}

func TestSplitIntoBatches_DefaultBudget(t *testing.T) {
	docs := []datatypes.Document{sized("a", 10)}
	batches := SplitIntoBatches(docs, 0)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 1)
}
