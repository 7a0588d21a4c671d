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
	"context"
	"log/slog"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate/entities/models"
)

// Weaviate class names used by this service.
const (
	ClassReportChunk       = "ReportChunk"
	ClassExtractionSession = "ExtractionSession"
)

// GetReportChunkSchema returns the class definition for ingested report
// chunks. Chunks are vectorized by the configured text2vec module so the
// retriever can run nearText queries against them.
func GetReportChunkSchema() *models.Class {
	indexFilterable := new(bool)
	*indexFilterable = true

	return &models.Class{
		Class:       ClassReportChunk,
		Description: "A chunk of annual-report text with filing metadata.",
		Properties: []*models.Property{
			{
				Name:         "content",
				DataType:     []string{"text"},
				Description:  "The chunk text.",
				Tokenization: "word",
			},
			{
				Name:            "source",
				DataType:        []string{"text"},
				Description:     "Identifier of this chunk (source#index).",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "parent_source",
				DataType:        []string{"text"},
				Description:     "The original report file this chunk came from.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "company_name",
				DataType:        []string{"text"},
				Description:     "Reporting entity name, as filed.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "uen",
				DataType:        []string{"text"},
				Description:     "ACRA Unique Entity Number of the reporting entity.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "fiscal_period",
				DataType:        []string{"text"},
				Description:     "Fiscal period label, e.g. FY2024.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "data_space",
				DataType:        []string{"text"},
				Description:     "Logical data space for segmentation.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "chunk_index",
				DataType:        []string{"int"},
				Description:     "Position of the chunk within the report, for ordered reads.",
				IndexFilterable: indexFilterable,
			},
			{
				Name:            "ingested_at",
				DataType:        []string{"number"},
				Description:     "Unix ms timestamp of ingestion.",
				IndexFilterable: indexFilterable,
			},
		},
	}
}

// GetExtractionSessionSchema returns the class definition for extraction
// sessions. Sessions track a sequence of queries against one or more filings.
func GetExtractionSessionSchema() *models.Class {
	indexFilterable := new(bool)
	*indexFilterable = true

	return &models.Class{
		Class:       ClassExtractionSession,
		Description: "Metadata for one extraction session.",
		Vectorizer:  "none",
		Properties: []*models.Property{
			{
				Name:            "session_id",
				DataType:        []string{"text"},
				Description:     "Unique session identifier.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:        "summary",
				DataType:    []string{"text"},
				Description: "Short description of what the session is about.",
			},
			{
				Name:            "query_count",
				DataType:        []string{"int"},
				Description:     "Number of agent runs recorded against this session.",
				IndexFilterable: indexFilterable,
			},
			{
				Name:            "timestamp",
				DataType:        []string{"number"},
				Description:     "Unix ms timestamp of session creation.",
				IndexFilterable: indexFilterable,
			},
		},
	}
}

// EnsureWeaviateSchema creates the Finsight classes if they do not exist.
// Existing classes are left untouched; schema migration is out of scope.
func EnsureWeaviateSchema(client *weaviate.Client) {
	ctx := context.Background()
	for _, class := range []*models.Class{
		GetReportChunkSchema(),
		GetExtractionSessionSchema(),
	} {
		exists, err := client.Schema().ClassExistenceChecker().
			WithClassName(class.Class).
			Do(ctx)
		if err != nil {
			slog.Error("Failed to check Weaviate class existence", "class", class.Class, "error", err)
			continue
		}
		if exists {
			slog.Debug("Weaviate class already present", "class", class.Class)
			continue
		}
		if err := client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
			slog.Error("Failed to create Weaviate class", "class", class.Class, "error", err)
			continue
		}
		slog.Info("Created Weaviate class", "class", class.Class)
	}
}
