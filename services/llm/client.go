// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package llm provides the chat-model capability consumed by the extraction
// agent. Implementations (OpenAI, Ollama) are selected by configuration;
// all implementations are safe for concurrent use.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
)

// GenerationParams tunes a single model invocation. Nil fields use the
// backend's defaults.
type GenerationParams struct {
	// Model overrides the client's default model identifier for this call.
	Model       string   `json:"model,omitempty"`
	Temperature *float32 `json:"temperature"`
	TopK        *int     `json:"top_k"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
}

// StructuredSchema names a JSON schema the model output must conform to.
type StructuredSchema struct {
	Name   string
	Schema json.RawMessage
}

// LLMClient defines the standard interface for any LLM backend.
type LLMClient interface {
	// Generate completes a single prompt and returns the model text.
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)

	// Chat completes a multi-turn conversation and returns the reply text.
	Chat(ctx context.Context, messages []datatypes.Message, params GenerationParams) (string, error)

	// GenerateStructured completes a prompt with the output constrained to
	// the given JSON schema, returning the raw JSON text. Backends without
	// native schema enforcement fall back to JSON mode plus the schema
	// embedded in the prompt; callers must still validate the result.
	GenerateStructured(ctx context.Context, prompt string, schema StructuredSchema, params GenerationParams) (string, error)
}

// NewClientFromEnv constructs the configured LLM client.
//
// FINSIGHT_LLM_PROVIDER selects the backend: "openai" or "ollama"
// (default "ollama", matching local-first deployments).
func NewClientFromEnv() (LLMClient, error) {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("FINSIGHT_LLM_PROVIDER")))
	switch provider {
	case "openai":
		return NewOpenAIClient()
	case "ollama", "":
		return NewOllamaClient()
	default:
		return nil, fmt.Errorf("unknown FINSIGHT_LLM_PROVIDER %q (want openai or ollama)", provider)
	}
}
