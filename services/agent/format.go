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
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
)

// FormatDocuments renders retrieved documents as a single delimited text
// block for inclusion in a model prompt. Each document becomes a tagged
// block carrying its identifier and metadata as key="value" attributes,
// with non-scalar values JSON-encoded. Zero documents format to the empty
// string, not an empty wrapper.
func FormatDocuments(docs []datatypes.Document) string {
	if len(docs) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(docs))
	for _, doc := range docs {
		blocks = append(blocks, formatDocument(doc))
	}
	return strings.Join(blocks, "\n\n")
}

func formatDocument(doc datatypes.Document) string {
	var b strings.Builder
	b.WriteString(`<document id="`)
	b.WriteString(doc.ID())
	b.WriteString(`"`)

	// Sorted attribute order keeps prompts stable across runs.
	keys := make([]string, 0, len(doc.Metadata))
	for k := range doc.Metadata {
		if k == "id" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(attributeValue(doc.Metadata[k]))
		b.WriteString(`"`)
	}

	b.WriteString(">\n<content>")
	b.WriteString(doc.Content)
	b.WriteString("</content>\n</document>")
	return b.String()
}

// attributeValue renders a metadata value for an attribute position.
// Scalars print directly; nested values are JSON-encoded.
func attributeValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool, int, int32, int64, float32, float64:
		return fmt.Sprintf("%v", val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	}
}
