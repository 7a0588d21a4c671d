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
	"log"
	"os"

	"github.com/finsightai/FinsightLocal/pkg/logging"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	config Config
	logger *logging.Logger
)

func main() {
	// Execute the root command. Cobra handles parsing the arguments.
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
	if logger != nil {
		_ = logger.Close()
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// config.yaml is optional for the CLI; every field has a default.
		configPath := "config.yaml"
		if yamlFile, err := os.ReadFile(configPath); err == nil {
			if err := yaml.Unmarshal(yamlFile, &config); err != nil {
				log.Fatalf("Error parsing config.yaml: %v", err)
			}
		}
		config.ApplyDefaults()

		logger = logging.New(logging.Config{
			Service: "cli",
			Level:   config.Level(),
			LogDir:  config.LogDir,
		})
	}
}
