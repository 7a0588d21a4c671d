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
	"fmt"
	"os"
	"path/filepath"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/spf13/cobra"
)

// runIngest uploads one or more report text files. Files are processed one
// at a time; a failed file is reported and skipped rather than aborting the
// rest of the batch.
func runIngest(cmd *cobra.Command, args []string) {
	failures := 0
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Error("Could not read file", "path", path, "error", err)
			failures++
			continue
		}

		req := datatypes.IngestReportRequest{
			Content:      string(content),
			Source:       filepath.Base(path),
			CompanyName:  companyName,
			UEN:          uen,
			FiscalPeriod: fiscalPeriod,
			DataSpace:    config.DataSpace,
		}

		var resp map[string]any
		if err := postJSON("/v1/documents", req, &resp); err != nil {
			logger.Error("Ingestion failed", "path", path, "error", err)
			failures++
			continue
		}
		fmt.Printf("Ingested %s (chunks: %v)\n", req.Source, resp["chunks_processed"])
	}

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d file(s) failed to ingest\n", failures)
		os.Exit(1)
	}
}

// runListReports prints the parent sources of all ingested reports.
func runListReports(cmd *cobra.Command, args []string) {
	var resp struct {
		Reports []string `json:"reports"`
	}
	if err := getJSON("/v1/documents", &resp); err != nil {
		logger.Error("Could not list reports", "error", err)
		os.Exit(1)
	}
	if len(resp.Reports) == 0 {
		fmt.Println("No reports ingested yet.")
		return
	}
	for _, source := range resp.Reports {
		fmt.Println(source)
	}
}
