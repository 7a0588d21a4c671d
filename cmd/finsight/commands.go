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
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	companyName  string
	uen          string
	fiscalPeriod string
	topK         int
	filterSource string
	batchBudget  int
	sessionId    string

	rootCmd = &cobra.Command{
		Use:   "finsight",
		Short: "A cli for the Finsight financial-report extraction service",
		Long: `Finsight extracts structured financial data (ACRA/XBRL schema)
				from annual reports and answers questions grounded in them.`,
	}

	// --- Ask ---
	askCmd = &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question; the agent routes it to retrieval or a direct answer",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAsk,
	}

	// --- Ingest ---
	ingestCmd = &cobra.Command{
		Use:     "ingest [path...]",
		Short:   "Ingest report text files into the knowledge base",
		Aliases: []string{"i"},
		Args:    cobra.MinimumNArgs(1),
		Run:     runIngest,
	}

	// --- Extract ---
	extractCmd = &cobra.Command{
		Use:   "extract [source]",
		Short: "Run a full structured extraction over one ingested report",
		Args:  cobra.ExactArgs(1),
		Run:   runExtract,
	}

	// --- Reports ---
	reportsCmd = &cobra.Command{
		Use:   "reports",
		Short: "List ingested reports",
		Run:   runListReports,
	}

	// --- Sessions ---
	sessionsCmd = &cobra.Command{
		Use:   "sessions",
		Short: "Manage extraction sessions",
	}
	sessionsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List extraction sessions",
		Run:   runListSessions,
	}
	sessionsDeleteCmd = &cobra.Command{
		Use:   "delete [sessionId]",
		Short: "Delete one extraction session",
		Args:  cobra.ExactArgs(1),
		Run:   runDeleteSession,
	}
)

func init() {
	askCmd.Flags().IntVar(&topK, "top-k", 0, "Number of chunks to retrieve (server default when 0)")
	askCmd.Flags().StringVar(&filterSource, "source", "", "Restrict retrieval to one ingested report")
	askCmd.Flags().StringVar(&sessionId, "session", "", "Session id to record the run under")

	ingestCmd.Flags().StringVar(&companyName, "company", "", "Reporting entity name")
	ingestCmd.Flags().StringVar(&uen, "uen", "", "ACRA Unique Entity Number")
	ingestCmd.Flags().StringVar(&fiscalPeriod, "period", "", "Fiscal period label, e.g. FY2024")

	extractCmd.Flags().IntVar(&batchBudget, "batch-budget", 0, "Token budget per extraction batch (server default when 0)")

	sessionsCmd.AddCommand(sessionsListCmd, sessionsDeleteCmd)
	rootCmd.AddCommand(askCmd, ingestCmd, extractCmd, reportsCmd, sessionsCmd)
}
