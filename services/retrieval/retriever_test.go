// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate/entities/models"
)

func TestFactoryNew_UnknownProvider(t *testing.T) {
	f := NewFactory(nil)
	_, err := f.New(Config{Provider: "pinecone"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown retriever provider")
}

func TestFactoryNew_WeaviateWithoutClient(t *testing.T) {
	f := NewFactory(nil)
	_, err := f.New(Config{Provider: ProviderWeaviate})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Weaviate client")
}

func TestUnavailable_FailsOnlyWhenUsed(t *testing.T) {
	cause := errors.New("no Weaviate client is configured")
	r := Unavailable(cause)
	require.NotNil(t, r)

	_, err := r.Retrieve(context.Background(), "What was revenue?")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestBuildWhere_Empty(t *testing.T) {
	assert.Nil(t, buildWhere(nil))
	assert.Nil(t, buildWhere(map[string]string{}))
}

func TestBuildWhere_SingleAndMultiple(t *testing.T) {
	single := buildWhere(map[string]string{"uen": "201812345A"})
	require.NotNil(t, single)

	assert.Contains(t, single.String(), "201812345A")

	multi := buildWhere(map[string]string{
		"uen":           "201812345A",
		"fiscal_period": "FY2024",
	})
	require.NotNil(t, multi)
	// Multiple filters compose into an And clause, operands sorted by key.
	rendered := multi.String()
	assert.Contains(t, rendered, "And")
	assert.Contains(t, rendered, "fiscal_period")
	assert.Contains(t, rendered, "uen")
}

func TestParseChunks_OrderedWithMetadata(t *testing.T) {
	data := map[string]models.JSONObject{
		"Get": map[string]interface{}{
			datatypes.ClassReportChunk: []interface{}{
				map[string]interface{}{
					"content":       "Revenue was S$4.2m in FY2024.",
					"source":        "acme_fy2024.pdf#3",
					"parent_source": "acme_fy2024.pdf",
					"chunk_index":   float64(3),
					"_additional": map[string]interface{}{
						"id":       "11111111-1111-1111-1111-111111111111",
						"distance": 0.12,
					},
				},
				map[string]interface{}{
					"content": "Profit before tax rose 8%.",
					"_additional": map[string]interface{}{
						"id": "22222222-2222-2222-2222-222222222222",
					},
				},
			},
		},
	}

	docs := parseChunks(data)
	require.Len(t, docs, 2)

	assert.Equal(t, "Revenue was S$4.2m in FY2024.", docs[0].Content)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", docs[0].ID())
	assert.Equal(t, "acme_fy2024.pdf", docs[0].Metadata["parent_source"])
	assert.Equal(t, 0.12, docs[0].Metadata["distance"])

	// Ranking order from the store is preserved.
	assert.Equal(t, "Profit before tax rose 8%.", docs[1].Content)
}

func TestParseChunks_MalformedPayload(t *testing.T) {
	assert.Nil(t, parseChunks(map[string]models.JSONObject{}))
	assert.Nil(t, parseChunks(map[string]models.JSONObject{"Get": "garbage"}))

	// A malformed object is skipped, not fatal.
	data := map[string]models.JSONObject{
		"Get": map[string]interface{}{
			datatypes.ClassReportChunk: []interface{}{
				"not an object",
				map[string]interface{}{"content": "kept"},
			},
		},
	}
	docs := parseChunks(data)
	require.Len(t, docs, 1)
	assert.Equal(t, "kept", docs[0].Content)
}
