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
	"time"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/spf13/cobra"
)

func runListSessions(cmd *cobra.Command, args []string) {
	var resp struct {
		Sessions []datatypes.ExtractionSession `json:"sessions"`
	}
	if err := getJSON("/v1/sessions", &resp); err != nil {
		logger.Error("Could not list sessions", "error", err)
		os.Exit(1)
	}
	if len(resp.Sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}
	for _, s := range resp.Sessions {
		created := time.UnixMilli(s.Timestamp).Format(time.RFC3339)
		fmt.Printf("%s  %s  queries=%d  %s\n", s.SessionId, created, s.QueryCount, s.Summary)
	}
}

func runDeleteSession(cmd *cobra.Command, args []string) {
	id := args[0]
	if err := deleteJSON("/v1/sessions/" + id); err != nil {
		logger.Error("Could not delete session", "sessionId", id, "error", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted session %s\n", id)
}
