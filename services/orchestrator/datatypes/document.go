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

// UnknownDocumentID is the identifier used when a retrieved chunk carries
// no identifier metadata.
const UnknownDocumentID = "unknown"

// Document is one retrieved unit of report text plus its metadata.
//
// # Description
//
// Documents are produced by the retrieval layer and consumed by the
// extraction agent as grounding context. They are immutable once retrieved:
// the agent never rewrites content or metadata, it only formats them into
// prompts.
//
// # Fields
//
//   - Content: the chunk text, as ingested.
//   - Metadata: string-keyed attributes (id, source, parent_source,
//     fiscal_period, ...). Values may be scalars or nested structures;
//     nested values are JSON-encoded when rendered into a prompt.
type Document struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ID returns the document's identifier metadata, or UnknownDocumentID when
// no "id" key is present or it is not a string.
func (d Document) ID() string {
	if d.Metadata == nil {
		return UnknownDocumentID
	}
	if id, ok := d.Metadata["id"].(string); ok && id != "" {
		return id
	}
	return UnknownDocumentID
}
