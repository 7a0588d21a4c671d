// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/finsightai/FinsightLocal/services/agent"
	"github.com/finsightai/FinsightLocal/services/llm"
	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/gin-gonic/gin"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
)

// maxReportChunks bounds a full-report read. 16 MB of ingest at 1 KB chunks
// stays well under this.
const maxReportChunks = 20000

// HandleExtract runs a structured extraction pass over every chunk of one
// ingested report and returns the merged statement.
//
// # Description
//
// Loads all chunks for the requested parent_source in chunk order, splits
// them into budgeted batches, and processes the batches strictly
// sequentially through the extraction model. Earlier batches win on merge
// conflicts, matching document order in the filing.
func HandleExtract(client *weaviate.Client, llmClient llm.LLMClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.ExtractRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		docs, err := loadReportChunks(c.Request.Context(), client, req.Source)
		if err != nil {
			slog.Error("Failed to load report chunks", "source", req.Source, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report"})
			return
		}
		if len(docs) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no ingested report named %q", req.Source)})
			return
		}

		params := llm.GenerationParams{Model: req.Model}
		graph := agent.NewGraph(llmClient, agent.NewLLMRouteClassifier(llmClient, params), nil, params)
		result, err := graph.ExtractReport(c.Request.Context(), docs, req.BatchTokenBudget)
		if err != nil {
			slog.Error("Full-report extraction failed", "source", req.Source, "error", err)
			c.JSON(statusForAgentError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, datatypes.ExtractResponse{
			Source:     req.Source,
			Batches:    result.Batches,
			ChunkCount: len(docs),
			Statement:  result.Statement,
			Timestamp:  time.Now().UnixMilli(),
		})
	}
}

// loadReportChunks reads every chunk of one report in chunk_index order.
func loadReportChunks(ctx context.Context, client *weaviate.Client, source string) ([]datatypes.Document, error) {
	whereFilter := filters.Where().
		WithPath([]string{"parent_source"}).
		WithOperator(filters.Equal).
		WithValueString(source)

	sortBy := graphql.Sort{
		Path:  []string{"chunk_index"},
		Order: graphql.Asc,
	}

	result, err := client.GraphQL().Get().
		WithClassName(datatypes.ClassReportChunk).
		WithWhere(whereFilter).
		WithSort(sortBy).
		WithLimit(maxReportChunks).
		WithFields(
			graphql.Field{Name: "content"},
			graphql.Field{Name: "source"},
			graphql.Field{Name: "parent_source"},
			graphql.Field{Name: "chunk_index"},
			graphql.Field{Name: "_additional { id }"},
		).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("query report chunks: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("query report chunks: %s", result.Errors[0].Message)
	}

	get, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	objects, ok := get[datatypes.ClassReportChunk].([]interface{})
	if !ok {
		return nil, nil
	}

	docs := make([]datatypes.Document, 0, len(objects))
	for _, obj := range objects {
		props, ok := obj.(map[string]interface{})
		if !ok {
			continue
		}
		content, _ := props["content"].(string)
		metadata := map[string]any{
			"source":        props["source"],
			"parent_source": props["parent_source"],
			"chunk_index":   props["chunk_index"],
		}
		if additional, ok := props["_additional"].(map[string]interface{}); ok {
			if id, ok := additional["id"].(string); ok {
				metadata["id"] = id
			}
		}
		docs = append(docs, datatypes.Document{Content: content, Metadata: metadata})
	}
	return docs, nil
}
