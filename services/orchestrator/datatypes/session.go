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
	"fmt"
	"log/slog"
	"time"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
)

// ExtractionSession tracks a sequence of agent runs. Sessions persist in
// Weaviate; the agent itself is stateless and never reads them.
type ExtractionSession struct {
	SessionId  string `json:"session_id"`
	Summary    string `json:"summary"`
	QueryCount int    `json:"query_count"`
	Timestamp  int64  `json:"timestamp"`
}

// Save writes the session metadata object to Weaviate.
func (s *ExtractionSession) Save(ctx context.Context, client *weaviate.Client) error {
	if s.Timestamp == 0 {
		s.Timestamp = time.Now().UnixMilli()
	}
	properties := map[string]interface{}{
		"session_id":  s.SessionId,
		"summary":     s.Summary,
		"query_count": s.QueryCount,
		"timestamp":   s.Timestamp,
	}

	_, err := client.Data().Creator().
		WithClassName(ClassExtractionSession).
		WithProperties(properties).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to save ExtractionSession object to Weaviate: %w", err)
	}

	slog.Info("Saved session metadata", "sessionId", s.SessionId, "summary", s.Summary)
	return nil
}
