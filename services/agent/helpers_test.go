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
	"fmt"

	"github.com/finsightai/FinsightLocal/services/llm"
	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
)

// fakeLLM scripts the model calls a graph run makes. Each call kind records
// the prompts it saw so tests can assert on invocation counts and content.
type fakeLLM struct {
	chatReply      string
	chatErr        error
	generateReply  string
	generateErr    error
	structuredOut  map[string]string // schema name -> reply
	structuredErr  error
	chatCalls      [][]datatypes.Message
	generateCalls  []string
	structuredCall []string // prompts, in call order
}

func (f *fakeLLM) Chat(_ context.Context, messages []datatypes.Message, _ llm.GenerationParams) (string, error) {
	f.chatCalls = append(f.chatCalls, messages)
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.chatReply, nil
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ llm.GenerationParams) (string, error) {
	f.generateCalls = append(f.generateCalls, prompt)
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.generateReply, nil
}

func (f *fakeLLM) GenerateStructured(_ context.Context, prompt string, schema llm.StructuredSchema, _ llm.GenerationParams) (string, error) {
	f.structuredCall = append(f.structuredCall, prompt)
	if f.structuredErr != nil {
		return "", f.structuredErr
	}
	if reply, ok := f.structuredOut[schema.Name]; ok {
		return reply, nil
	}
	return "", fmt.Errorf("no scripted reply for schema %q", schema.Name)
}

// fakeClassifier returns a fixed route or error without a model call.
type fakeClassifier struct {
	route Route
	err   error
	calls int
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (Route, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.route, nil
}

// fakeRetriever returns fixed documents or an error.
type fakeRetriever struct {
	docs  []datatypes.Document
	err   error
	calls int
}

func (f *fakeRetriever) Retrieve(_ context.Context, _ string) ([]datatypes.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func defaultParams() llm.GenerationParams {
	return llm.GenerationParams{}
}

func llmParamsWithTemperature(temp *float32) llm.GenerationParams {
	return llm.GenerationParams{Temperature: temp}
}

func doc(id, content string) datatypes.Document {
	return datatypes.Document{
		Content:  content,
		Metadata: map[string]any{"id": id},
	}
}
