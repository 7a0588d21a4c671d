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
	"errors"
	"fmt"
)

// The agent never recovers from these internally: each aborts the current
// run and surfaces to the caller, which maps them to HTTP status codes.
// There is no retry, backoff, or partial-result salvage at this layer.

// ============================================================================
// RoutingError
// ============================================================================

// RoutingError indicates the router model produced output that could not be
// parsed into the route enum.
type RoutingError struct {
	// Output is the raw model text that failed to parse.
	Output string

	// Err is the underlying parse or invocation error, if any.
	Err error
}

func (e *RoutingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("routing failed: %v (output: %q)", e.Err, e.Output)
	}
	return fmt.Sprintf("routing failed: unrecognized route in output %q", e.Output)
}

func (e *RoutingError) Unwrap() error { return e.Err }

// IsRoutingError checks if an error is a RoutingError.
func IsRoutingError(err error) bool {
	var re *RoutingError
	return errors.As(err, &re)
}

// ============================================================================
// ModelInvocationError
// ============================================================================

// ModelInvocationError indicates the underlying model call failed at some
// stage of the pipeline.
type ModelInvocationError struct {
	// Stage names the pipeline stage that issued the call, e.g.
	// "direct_answer", "extraction", "synthesis".
	Stage string

	// Err is the model client's error.
	Err error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed at stage %q: %v", e.Stage, e.Err)
}

func (e *ModelInvocationError) Unwrap() error { return e.Err }

// IsModelInvocationError checks if an error is a ModelInvocationError.
func IsModelInvocationError(err error) bool {
	var me *ModelInvocationError
	return errors.As(err, &me)
}

// ============================================================================
// RetrievalError
// ============================================================================

// RetrievalError indicates the retriever call failed.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// IsRetrievalError checks if an error is a RetrievalError.
func IsRetrievalError(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}

// ============================================================================
// GraphStateError
// ============================================================================

// GraphStateError indicates the run state was invalid at a graph transition,
// most commonly a missing or unknown route at the conditional branch.
type GraphStateError struct {
	// Route is the offending route value.
	Route Route
}

func (e *GraphStateError) Error() string {
	if e.Route == "" {
		return "graph state invalid: route not set at conditional branch"
	}
	return fmt.Sprintf("graph state invalid: unknown route %q", e.Route)
}

// IsGraphStateError checks if an error is a GraphStateError.
func IsGraphStateError(err error) bool {
	var ge *GraphStateError
	return errors.As(err, &ge)
}
