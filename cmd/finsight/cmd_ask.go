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
	"strings"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/spf13/cobra"
)

func runAsk(cmd *cobra.Command, args []string) {
	question := strings.Join(args, " ")

	req := datatypes.QueryRequest{
		Query:     question,
		SessionId: sessionId,
		Model:     config.Model,
		TopK:      topK,
	}
	if filterSource != "" {
		req.Filters = map[string]string{"parent_source": filterSource}
	}

	logger.Info("Sending query", "question", question)
	var resp datatypes.QueryResponse
	if err := postJSON("/v1/query", req, &resp); err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	fmt.Printf("[route: %s", resp.Route)
	if resp.DocumentCount > 0 {
		fmt.Printf(", %d chunks", resp.DocumentCount)
	}
	fmt.Println("]")
	fmt.Println(resp.Answer)

	if resp.FinancialStatement != nil {
		pretty, err := json.MarshalIndent(resp.FinancialStatement, "", "  ")
		if err == nil {
			fmt.Println("\nExtracted statement:")
			fmt.Println(string(pretty))
		}
	}
}
