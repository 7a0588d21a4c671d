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
	"fmt"
	"log/slog"
	"sort"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("finsight.retrieval.weaviate")

// chunkProperties are the ReportChunk properties surfaced as document
// metadata alongside the content.
var chunkProperties = []string{
	"source",
	"parent_source",
	"company_name",
	"uen",
	"fiscal_period",
	"chunk_index",
}

// WeaviateRetriever retrieves report chunks via nearText semantic search.
//
// # Thread Safety
//
// Safe for concurrent use; the underlying Weaviate client handles
// connection pooling.
type WeaviateRetriever struct {
	client *weaviate.Client
	topK   int
	where  map[string]string
}

// NewWeaviateRetriever creates a retriever over the ReportChunk class.
func NewWeaviateRetriever(client *weaviate.Client, cfg Config) *WeaviateRetriever {
	topK := cfg.TopK
	if topK <= 0 {
		topK = datatypes.DefaultTopK
	}
	return &WeaviateRetriever{
		client: client,
		topK:   topK,
		where:  cfg.Filters,
	}
}

// Retrieve implements the Retriever interface.
//
// Results come back in Weaviate's ranking order (ascending distance); this
// layer imposes no reordering of its own.
func (r *WeaviateRetriever) Retrieve(ctx context.Context, query string) ([]datatypes.Document, error) {
	ctx, span := tracer.Start(ctx, "WeaviateRetriever.Retrieve")
	defer span.End()
	span.SetAttributes(
		attribute.Int("retrieval.top_k", r.topK),
		attribute.Int("retrieval.filters", len(r.where)),
	)

	nearText := r.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	fields := make([]graphql.Field, 0, len(chunkProperties)+2)
	fields = append(fields, graphql.Field{Name: "content"})
	for _, p := range chunkProperties {
		fields = append(fields, graphql.Field{Name: p})
	}
	fields = append(fields, graphql.Field{Name: "_additional { id distance }"})

	builder := r.client.GraphQL().Get().
		WithClassName(datatypes.ClassReportChunk).
		WithFields(fields...).
		WithNearText(nearText).
		WithLimit(r.topK)

	if whereFilter := buildWhere(r.where); whereFilter != nil {
		builder = builder.WithWhere(whereFilter)
	}

	result, err := builder.Do(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "weaviate query failed")
		return nil, fmt.Errorf("weaviate nearText query: %w", err)
	}
	if len(result.Errors) > 0 {
		err := fmt.Errorf("weaviate query error: %s", result.Errors[0].Message)
		span.RecordError(err)
		span.SetStatus(codes.Error, "weaviate query error")
		return nil, err
	}

	docs := parseChunks(result.Data)
	span.SetAttributes(attribute.Int("retrieval.count", len(docs)))
	slog.Debug("Retrieved report chunks", "count", len(docs), "top_k", r.topK)
	return docs, nil
}

// buildWhere converts equality filters into a Weaviate where clause.
// Returns nil when there is nothing to filter on.
func buildWhere(where map[string]string) *filters.WhereBuilder {
	if len(where) == 0 {
		return nil
	}

	// Deterministic operand order keeps queries reproducible in tests.
	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	operands := make([]*filters.WhereBuilder, 0, len(keys))
	for _, k := range keys {
		operands = append(operands, filters.Where().
			WithPath([]string{k}).
			WithOperator(filters.Equal).
			WithValueString(where[k]))
	}
	if len(operands) == 1 {
		return operands[0]
	}
	return filters.Where().
		WithOperator(filters.And).
		WithOperands(operands)
}

// parseChunks converts the GraphQL response payload into documents.
// Malformed objects are skipped rather than failing the whole retrieval.
func parseChunks(data map[string]models.JSONObject) []datatypes.Document {
	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		slog.Warn("Unexpected Weaviate response structure: missing Get")
		return nil
	}
	objects, ok := get[datatypes.ClassReportChunk].([]interface{})
	if !ok {
		return nil
	}

	docs := make([]datatypes.Document, 0, len(objects))
	for _, obj := range objects {
		props, ok := obj.(map[string]interface{})
		if !ok {
			slog.Warn("Skipping malformed retrieval object")
			continue
		}
		content, _ := props["content"].(string)

		metadata := make(map[string]any, len(chunkProperties)+2)
		for _, p := range chunkProperties {
			if v, exists := props[p]; exists && v != nil {
				metadata[p] = v
			}
		}
		if additional, ok := props["_additional"].(map[string]interface{}); ok {
			if id, ok := additional["id"].(string); ok {
				metadata["id"] = id
			}
			if distance, ok := additional["distance"].(float64); ok {
				metadata["distance"] = distance
			}
		}

		docs = append(docs, datatypes.Document{
			Content:  content,
			Metadata: metadata,
		})
	}
	return docs
}
