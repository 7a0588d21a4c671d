// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRequest_EnsureDefaults(t *testing.T) {
	req := QueryRequest{Query: "What was revenue?"}
	req.EnsureDefaults()

	assert.NotEmpty(t, req.Id)
	assert.NotZero(t, req.Timestamp)
	assert.Equal(t, "weaviate", req.Provider)
	assert.Equal(t, DefaultTopK, req.TopK)
}

func TestQueryRequest_EnsureDefaultsKeepsExplicitValues(t *testing.T) {
	req := QueryRequest{Query: "q", Id: "fixed", TopK: 12}
	req.EnsureDefaults()

	assert.Equal(t, "fixed", req.Id)
	assert.Equal(t, 12, req.TopK)
}

func TestQueryRequest_EnsureSessionId(t *testing.T) {
	req := QueryRequest{Query: "q"}
	first := req.EnsureSessionId()
	assert.NotEmpty(t, first)
	assert.Equal(t, first, req.EnsureSessionId())
}

func TestQueryRequest_Validate(t *testing.T) {
	valid := QueryRequest{Query: "What was revenue?", Provider: "weaviate", TopK: 5}
	require.NoError(t, valid.Validate())

	missing := QueryRequest{}
	assert.Error(t, missing.Validate())

	oversized := QueryRequest{Query: strings.Repeat("x", MaxQueryBytes+1)}
	assert.Error(t, oversized.Validate())

	badProvider := QueryRequest{Query: "q", Provider: "pinecone"}
	assert.Error(t, badProvider.Validate())
}

func TestIngestReportRequest_Validate(t *testing.T) {
	valid := IngestReportRequest{Content: "Revenue was S$4.2m.", Source: "acme_fy2024.pdf"}
	require.NoError(t, valid.Validate())

	assert.Error(t, (&IngestReportRequest{Source: "a.pdf"}).Validate())
	assert.Error(t, (&IngestReportRequest{Content: "text"}).Validate())
}

func TestExtractRequest_Validate(t *testing.T) {
	require.NoError(t, (&ExtractRequest{Source: "acme_fy2024.pdf"}).Validate())
	assert.Error(t, (&ExtractRequest{}).Validate())
	assert.Error(t, (&ExtractRequest{Source: "a.pdf", BatchTokenBudget: -1}).Validate())
}
