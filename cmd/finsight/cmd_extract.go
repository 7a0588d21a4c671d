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
	"encoding/json"
	"fmt"
	"log"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/spf13/cobra"
)

func runExtract(cmd *cobra.Command, args []string) {
	source := args[0]

	req := datatypes.ExtractRequest{
		Source:           source,
		Model:            config.Model,
		BatchTokenBudget: batchBudget,
	}

	logger.Info("Starting full-report extraction", "source", source)
	var resp datatypes.ExtractResponse
	if err := postJSON("/v1/extract", req, &resp); err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	fmt.Printf("Extracted %s: %d chunks in %d batch(es)\n", resp.Source, resp.ChunkCount, resp.Batches)
	if resp.Statement == nil {
		fmt.Println("No structured statement could be parsed from the report.")
		return
	}
	pretty, err := json.MarshalIndent(resp.Statement, "", "  ")
	if err != nil {
		log.Fatalf("Could not render statement: %v", err)
	}
	fmt.Println(string(pretty))
}
