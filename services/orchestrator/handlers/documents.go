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
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/finsightai/FinsightLocal/pkg/validation"
	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/finsightai/FinsightLocal/services/orchestrator/observability"
	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/textsplitter"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate/entities/models"
)

var (
	CHUNK_SIZE    = 1000
	CHUNK_OVERLAP = int(float64(CHUNK_SIZE) * 0.10) // Chunk_overlap is 10% of the CHUNK_SIZE

	// Annual reports are prose with numbered sections and tabular notes;
	// paragraph-first splitting keeps statement line items together.
	reportSeparators = []string{"\n\n", "\n", " ", ""}
)

// IngestReport receives report text and writes it to Weaviate as chunks.
func IngestReport(client *weaviate.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.IngestReportRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Filing identifiers end up in Weaviate where filters; reject
		// malformed ones at the boundary.
		if req.UEN != "" {
			sanitized, err := validation.SanitizeUEN(req.UEN)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			req.UEN = sanitized
		}
		if req.FiscalPeriod != "" {
			sanitized, err := validation.SanitizeFiscalPeriod(req.FiscalPeriod)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			req.FiscalPeriod = sanitized
		}

		chunksCreated, err := RunIngestion(c.Request.Context(), client, req)
		if err != nil {
			slog.Error("Ingestion failed", "source", req.Source, "error", err)
			observability.IngestedReportsTotal.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		observability.IngestedReportsTotal.WithLabelValues("success").Inc()
		slog.Info("Successfully processed report via API", "source", req.Source, "chunks_processed", chunksCreated)
		c.JSON(http.StatusCreated, gin.H{
			"status":           "success",
			"source":           req.Source,
			"chunks_processed": chunksCreated,
		})
	}
}

// ListReports gets a unique list of all ingested 'parent_source' files
func ListReports(client *weaviate.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		slog.Info("Received request to list ingested reports")

		agg, err := client.GraphQL().Aggregate().
			WithClassName(datatypes.ClassReportChunk).
			WithGroupBy("parent_source").
			Do(c.Request.Context())

		if err != nil {
			slog.Error("Failed to aggregate reports from Weaviate", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query reports"})
			return
		}

		var reportList []string

		// Parse the complex response
		if agg.Data["Aggregate"] != nil {
			aggMap, ok := agg.Data["Aggregate"].(map[string]interface{})
			if ok && aggMap[datatypes.ClassReportChunk] != nil {
				groups, ok := aggMap[datatypes.ClassReportChunk].([]interface{})
				if ok {
					for _, groupItem := range groups {
						groupMap, ok := groupItem.(map[string]interface{})
						if ok && groupMap["groupedBy"] != nil {
							groupedByMap, ok := groupMap["groupedBy"].(map[string]interface{})
							if ok && groupedByMap["value"] != nil {
								if sourceName, ok := groupedByMap["value"].(string); ok {
									reportList = append(reportList, sourceName)
								}
							}
						}
					}
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{"reports": reportList})
	}
}

// RunIngestion is the reusable logic for ingesting one report: split the
// text into chunks and batch-import them. Vectorization happens server-side
// in Weaviate's configured text2vec module, so no embedding call is made
// here.
func RunIngestion(ctx context.Context, client *weaviate.Client, req datatypes.IngestReportRequest) (int, error) {
	slog.Info("Ingestion request received", "source", req.Source, "company", req.CompanyName)

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(CHUNK_SIZE),
		textsplitter.WithChunkOverlap(CHUNK_OVERLAP),
		textsplitter.WithSeparators(reportSeparators),
	)

	chunks, err := splitter.SplitText(req.Content)
	if err != nil {
		slog.Error("Failed to split text", "source", req.Source, "error", err)
		return 0, fmt.Errorf("Failed to split content: %w", err)
	}
	if len(chunks) == 0 {
		slog.Warn("No chunks produced after splitting", "source", req.Source)
		return 0, nil
	}
	slog.Info("Split report into chunks", "source", req.Source, "chunk_count", len(chunks))

	// Deterministic IDs from the chunk content make re-ingestion idempotent.
	batcher := client.Batch().ObjectsBatcher()
	objects := make([]*models.Object, len(chunks))
	for i, chunk := range chunks {
		chunkSource := fmt.Sprintf("%s#%d", req.Source, i)
		hash := sha256.Sum256([]byte(req.Source + chunk))
		docUUID, _ := uuid.FromBytes(hash[:16])

		objects[i] = &models.Object{
			Class: datatypes.ClassReportChunk,
			ID:    strfmt.UUID(docUUID.String()),
			Properties: map[string]interface{}{
				"content":       chunk,
				"source":        chunkSource,
				"parent_source": req.Source,
				"company_name":  req.CompanyName,
				"uen":           req.UEN,
				"fiscal_period": req.FiscalPeriod,
				"data_space":    req.DataSpace,
				"chunk_index":   i,
				"ingested_at":   time.Now().UnixMilli(),
			},
		}
	}
	batcher.WithObjects(objects...)

	resp, err := batcher.Do(ctx)
	if err != nil {
		slog.Error("Failed to perform batch import to Weaviate", "error", err)
		return 0, fmt.Errorf("failed to save objects to Weaviate: %w", err)
	}

	chunksCreated := 0
	hasErrors := false
	for _, item := range resp {
		if item.Result != nil && item.Result.Status != nil && *item.Result.Status == "SUCCESS" {
			chunksCreated++
			continue
		}
		hasErrors = true
		if item.Result != nil && item.Result.Errors != nil && len(item.Result.Errors.Error) > 0 {
			for _, errItem := range item.Result.Errors.Error {
				slog.Warn("Error in Weaviate batch item", "source", req.Source, "error", errItem.Message)
			}
		} else {
			slog.Warn("Failed Weaviate batch item, no error provided", "source", req.Source)
		}
	}
	if hasErrors {
		slog.Warn("Errors encountered during Weaviate batch import", "source", req.Source, "successful_chunks", chunksCreated)
	}

	observability.IngestedChunksTotal.Add(float64(chunksCreated))
	slog.Info("Successfully processed report", "source", req.Source, "chunks_processed", chunksCreated)
	return chunksCreated, nil
}
