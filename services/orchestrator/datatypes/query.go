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
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxQueryBytes caps the user query size. Byte length (not rune count)
	// is checked to prevent memory exhaustion with large payloads.
	MaxQueryBytes = 32 * 1024 // 32 KB

	// MaxIngestBytes caps a single ingested report body.
	MaxIngestBytes = 16 * 1024 * 1024 // 16 MB

	// DefaultTopK is the retriever result count when the request does not
	// specify one.
	DefaultTopK = 5
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

// queryValidate is the validator instance for query datatypes.
// Initialized in init() with custom validators.
var queryValidate *validator.Validate

func init() {
	queryValidate = validator.New()
	_ = queryValidate.RegisterValidation("maxquerybytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxQueryBytes
	})
	_ = queryValidate.RegisterValidation("maxingestbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxIngestBytes
	})
}

// =============================================================================
// Query
// =============================================================================

// QueryRequest is the payload for POST /v1/query.
//
// The request carries both the user's question and the per-request agent
// configuration (model, retriever provider, result count, filters). The agent
// only reads this configuration; it never mutates it.
type QueryRequest struct {
	Id        string `json:"id,omitempty"`
	Query     string `json:"query" validate:"required,maxquerybytes"`
	SessionId string `json:"session_id,omitempty"`

	// Model selects the chat model identifier (provider default when empty).
	Model string `json:"model,omitempty"`

	// Provider selects the retriever backend. Currently only "weaviate".
	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=weaviate"`

	// TopK is the retriever result count. Defaulted when <= 0.
	TopK int `json:"top_k,omitempty" validate:"omitempty,gte=0,lte=50"`

	// Filters are provider-specific equality filters, e.g.
	// {"parent_source": "acme_fy2024.pdf"}.
	Filters map[string]string `json:"filters,omitempty"`

	Timestamp int64 `json:"timestamp,omitempty"`
}

// EnsureDefaults populates Id, Timestamp, Provider, and TopK when unset.
func (r *QueryRequest) EnsureDefaults() {
	if r.Id == "" {
		r.Id = uuid.New().String()
	}
	if r.Timestamp == 0 {
		r.Timestamp = time.Now().UnixMilli()
	}
	if r.Provider == "" {
		r.Provider = "weaviate"
	}
	if r.TopK <= 0 {
		r.TopK = DefaultTopK
	}
}

// EnsureSessionId returns the request's session id, creating one when absent.
func (r *QueryRequest) EnsureSessionId() string {
	if r.SessionId == "" {
		r.SessionId = uuid.New().String()
	}
	return r.SessionId
}

// Validate checks the request against its validation tags.
func (r *QueryRequest) Validate() error {
	if err := queryValidate.Struct(r); err != nil {
		return fmt.Errorf("invalid query request: %w", err)
	}
	return nil
}

// QueryResponse is the result of one agent run.
type QueryResponse struct {
	Id        string `json:"id"`
	SessionId string `json:"session_id"`

	// Route taken by the agent: "retrieve" or "direct".
	Route string `json:"route"`

	// Answer is the final assistant reply.
	Answer string `json:"answer"`

	// Messages is the full message history of the run, ending with the user
	// turn and the assistant reply, in that order.
	Messages []Message `json:"messages"`

	// DocumentCount is the number of chunks retrieved (0 on the direct path).
	DocumentCount int `json:"document_count"`

	// FinancialStatement is the structured payload parsed from the
	// extraction stage, when one could be parsed. Best-effort.
	FinancialStatement *FinancialStatement `json:"financial_statement,omitempty"`

	Timestamp int64 `json:"timestamp"`
}

// NewQueryResponse assembles a response with a fresh timestamp.
func NewQueryResponse(req *QueryRequest, route string, answer string, messages []Message, docCount int) *QueryResponse {
	return &QueryResponse{
		Id:            req.Id,
		SessionId:     req.SessionId,
		Route:         route,
		Answer:        answer,
		Messages:      messages,
		DocumentCount: docCount,
		Timestamp:     time.Now().UnixMilli(),
	}
}

// =============================================================================
// Ingestion
// =============================================================================

// IngestReportRequest is the payload for POST /v1/documents.
//
// Content is pre-extracted report text; PDF binary parsing happens upstream
// and is out of scope for this service.
type IngestReportRequest struct {
	Content      string `json:"content" validate:"required,maxingestbytes"`
	Source       string `json:"source" validate:"required"`
	CompanyName  string `json:"company_name,omitempty"`
	UEN          string `json:"uen,omitempty"`
	FiscalPeriod string `json:"fiscal_period,omitempty"`
	DataSpace    string `json:"data_space,omitempty"`
}

// Validate checks the request against its validation tags.
func (r *IngestReportRequest) Validate() error {
	if err := queryValidate.Struct(r); err != nil {
		return fmt.Errorf("invalid ingest request: %w", err)
	}
	return nil
}

// =============================================================================
// Full-report extraction
// =============================================================================

// ExtractRequest is the payload for POST /v1/extract. It asks for a
// structured extraction pass over every chunk of one ingested report.
type ExtractRequest struct {
	// Source identifies the ingested report (parent_source).
	Source string `json:"source" validate:"required"`

	Model string `json:"model,omitempty"`

	// BatchTokenBudget bounds the estimated token weight per extraction
	// batch. Defaulted by the agent when <= 0.
	BatchTokenBudget int `json:"batch_token_budget,omitempty" validate:"omitempty,gte=0"`
}

// Validate checks the request against its validation tags.
func (r *ExtractRequest) Validate() error {
	if err := queryValidate.Struct(r); err != nil {
		return fmt.Errorf("invalid extract request: %w", err)
	}
	return nil
}

// ExtractResponse is the merged result of a full-report extraction.
type ExtractResponse struct {
	Source     string              `json:"source"`
	Batches    int                 `json:"batches"`
	ChunkCount int                 `json:"chunk_count"`
	Statement  *FinancialStatement `json:"statement"`
	Timestamp  int64               `json:"timestamp"`
}
