// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package retrieval provides the document-retriever capability consumed by
// the extraction agent, plus the factory that binds a retriever to the
// configured vector-store provider.
package retrieval

import (
	"context"
	"fmt"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
)

// ProviderWeaviate is the only vector-store provider currently supported.
const ProviderWeaviate = "weaviate"

// Config selects and parameterizes a retriever. It is read per request and
// never mutated by the retrieval layer.
type Config struct {
	// Provider names the vector-store backend.
	Provider string

	// TopK is the number of chunks to return.
	TopK int

	// Filters are equality filters on chunk metadata properties, e.g.
	// {"parent_source": "acme_fy2024.pdf", "data_space": "work"}.
	Filters map[string]string
}

// Retriever returns the chunks most relevant to a query, in provider
// ranking order. Implementations must be safe for concurrent use; the
// orchestrator does not serialize across requests.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]datatypes.Document, error)
}

// Factory constructs retrievers bound to shared backend clients.
type Factory struct {
	weaviateClient *weaviate.Client
}

// NewFactory creates a retriever factory.
//
// # Inputs
//
//   - weaviateClient: shared Weaviate client. May be nil when the service
//     runs without a vector store; constructing a weaviate retriever then
//     fails.
func NewFactory(weaviateClient *weaviate.Client) *Factory {
	return &Factory{weaviateClient: weaviateClient}
}

// New constructs a retriever for the given configuration.
//
// # Outputs
//
//   - Retriever: bound to the configured provider.
//   - error: non-nil for an unknown provider or a missing backend client.
func (f *Factory) New(cfg Config) (Retriever, error) {
	switch cfg.Provider {
	case ProviderWeaviate, "":
		if f.weaviateClient == nil {
			return nil, fmt.Errorf("weaviate retriever requested but no Weaviate client is configured")
		}
		return NewWeaviateRetriever(f.weaviateClient, cfg), nil
	default:
		return nil, fmt.Errorf("unknown retriever provider %q", cfg.Provider)
	}
}

// Unavailable returns a Retriever whose Retrieve always fails with err.
//
// It lets callers wire a retriever into the agent graph before knowing
// whether the query will take the retrieve branch: a missing vector store
// only matters if retrieval is actually attempted, and then it fails with
// the construction error.
func Unavailable(err error) Retriever {
	return unavailableRetriever{err: err}
}

type unavailableRetriever struct {
	err error
}

func (r unavailableRetriever) Retrieve(context.Context, string) ([]datatypes.Document, error) {
	return nil, r.err
}
