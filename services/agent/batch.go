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
	"fmt"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
)

// DefaultBatchTokenBudget caps the estimated token weight of one extraction
// batch. Sized for models with a 32k context window, leaving headroom for
// the instruction prompt and the response.
const DefaultBatchTokenBudget = 24000

// EstimateTokens approximates the token count of one document as the
// combined character length of its content and metadata divided by four.
// Rough, but cheap and model-agnostic.
func EstimateTokens(doc datatypes.Document) int {
	chars := len(doc.Content)
	for k, v := range doc.Metadata {
		chars += len(k) + len(fmt.Sprintf("%v", v))
	}
	return chars / 4
}

// SplitIntoBatches partitions documents into ordered batches whose estimated
// weight does not exceed budget, except when a single document alone exceeds
// it: that document forms its own oversized batch rather than being split or
// dropped. Document order is preserved across the concatenation of all
// batches; no batch is empty.
func SplitIntoBatches(docs []datatypes.Document, budget int) [][]datatypes.Document {
	if budget <= 0 {
		budget = DefaultBatchTokenBudget
	}
	if len(docs) == 0 {
		return nil
	}

	var batches [][]datatypes.Document
	var current []datatypes.Document
	currentWeight := 0

	for _, doc := range docs {
		weight := EstimateTokens(doc)
		if len(current) > 0 && currentWeight+weight > budget {
			batches = append(batches, current)
			current = nil
			currentWeight = 0
		}
		current = append(current, doc)
		currentWeight += weight
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}
