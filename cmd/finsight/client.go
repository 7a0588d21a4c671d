// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// httpClient is shared by all commands. Extraction over a large filing can
// take minutes, so the timeout is generous.
var httpClient = &http.Client{Timeout: 10 * time.Minute}

// postJSON sends a JSON payload to the orchestrator and decodes the reply
// into out (skipped when out is nil).
func postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not encode request: %w", err)
	}

	resp, err := httpClient.Post(config.Orchestrator+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("could not reach orchestrator at %s: %w", config.Orchestrator, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read orchestrator response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("orchestrator returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("could not decode orchestrator response: %w", err)
	}
	return nil
}

// getJSON fetches a JSON document from the orchestrator.
func getJSON(path string, out any) error {
	resp, err := httpClient.Get(config.Orchestrator + path)
	if err != nil {
		return fmt.Errorf("could not reach orchestrator at %s: %w", config.Orchestrator, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read orchestrator response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("orchestrator returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return json.Unmarshal(respBody, out)
}

// deleteJSON issues a DELETE and discards the reply body.
func deleteJSON(path string) error {
	req, err := http.NewRequest(http.MethodDelete, config.Orchestrator+path, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach orchestrator at %s: %w", config.Orchestrator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("orchestrator returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
