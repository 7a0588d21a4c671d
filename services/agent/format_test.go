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

func TestFormatDocuments_EmptyInput(t *testing.T) {
	assert.Equal(t, "", FormatDocuments(nil))
	assert.Equal(t, "", FormatDocuments([]datatypes.Document{}))
}

func TestFormatDocuments_SingleDocument(t *testing.T) {
	docs := []datatypes.Document{
		{
			Content:  "hello",
			Metadata: map[string]any{"a": "1"},
		},
	}
	formatted := FormatDocuments(docs)

	assert.Contains(t, formatted, `content>hello<`)
	assert.Contains(t, formatted, `a="1"`)
	// No identifier metadata falls back to the unknown literal.
	assert.Contains(t, formatted, `id="unknown"`)
}

func TestFormatDocuments_IdentifierFromMetadata(t *testing.T) {
	formatted := FormatDocuments([]datatypes.Document{doc("chunk-7", "text")})
	assert.Contains(t, formatted, `id="chunk-7"`)
	// The id key is carried in the id attribute, not duplicated.
	assert.Equal(t, 1, strings.Count(formatted, "chunk-7"))
}

func TestFormatDocuments_MetadataAttributes(t *testing.T) {
	docs := []datatypes.Document{
		{
			Content: "body",
			Metadata: map[string]any{
				"id":          "c1",
				"chunk_index": 3,
				"scores":      []int{1, 2},
				"nested":      map[string]string{"k": "v"},
			},
		},
	}
	formatted := FormatDocuments(docs)

	assert.Contains(t, formatted, `chunk_index="3"`)
	// Non-scalar values are JSON-encoded.
	assert.Contains(t, formatted, `scores="[1,2]"`)
	assert.Contains(t, formatted, `nested="{"k":"v"}"`)
}

func TestFormatDocuments_MultipleDocumentsOrdered(t *testing.T) {
	docs := []datatypes.Document{
		doc("first", "alpha"),
		doc("second", "beta"),
	}
	formatted := FormatDocuments(docs)

	firstIdx := strings.Index(formatted, "alpha")
	secondIdx := strings.Index(formatted, "beta")
	require.NotEqual(t, -1, firstIdx)
	require.NotEqual(t, -1, secondIdx)
	assert.Less(t, firstIdx, secondIdx)
	assert.Equal(t, 2, strings.Count(formatted, "<document"))
}
