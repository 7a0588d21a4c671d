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
	"log/slog"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/finsightai/FinsightLocal/services/orchestrator/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ExtractionResult is the outcome of a full-report extraction.
type ExtractionResult struct {
	// Statement is the merged statement across all batches. Nil when no
	// batch produced parseable statement JSON.
	Statement *datatypes.FinancialStatement

	// Batches is the number of batches processed.
	Batches int
}

// ExtractReport runs structured extraction over an entire document set,
// splitting it into budgeted batches and folding the partial statements
// together. Batches are processed strictly sequentially, one at a time, to
// respect downstream rate and context limits; this is a deliberate
// serialization point, not an oversight.
//
// Earlier batches take precedence in the merge, matching document order in
// the filing. A batch whose output fails to parse contributes nothing but
// does not abort the run; a failed model call does.
func (g *Graph) ExtractReport(ctx context.Context, docs []datatypes.Document, budget int) (*ExtractionResult, error) {
	ctx, span := tracer.Start(ctx, "agent.ExtractReport")
	defer span.End()

	batches := SplitIntoBatches(docs, budget)
	span.SetAttributes(
		attribute.Int("agent.documents", len(docs)),
		attribute.Int("agent.batches", len(batches)),
	)

	merged := &datatypes.FinancialStatement{}
	for i, batch := range batches {
		output, err := g.extractOnce(ctx, FormatDocuments(batch))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "batch extraction failed")
			observability.ExtractionBatchesTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		partial := tryParseStatement(output)
		if partial == nil {
			slog.Warn("Batch extraction output did not parse, skipping", "batch", i)
			observability.ExtractionBatchesTotal.WithLabelValues("unparsed").Inc()
			continue
		}
		observability.ExtractionBatchesTotal.WithLabelValues("parsed").Inc()
		merged.Merge(partial)
	}

	result := &ExtractionResult{Batches: len(batches)}
	if !merged.IsEmpty() {
		result.Statement = merged
	}
	slog.Info("Report extraction complete", "batches", len(batches), "parsed", result.Statement != nil)
	return result, nil
}
