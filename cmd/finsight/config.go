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
	"os"
	"strings"

	"github.com/finsightai/FinsightLocal/pkg/logging"
)

// Config is the CLI configuration, loaded from config.yaml when present.
type Config struct {
	// Orchestrator is the base URL of the Finsight orchestrator service.
	Orchestrator string `yaml:"orchestrator"`

	// Model overrides the orchestrator's default chat model per request.
	Model string `yaml:"model,omitempty"`

	// DataSpace tags ingested reports for segmentation.
	DataSpace string `yaml:"data_space,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	// LogDir enables file logging when set.
	LogDir string `yaml:"log_dir,omitempty"`
}

// ApplyDefaults fills unset fields from the environment or built-ins.
func (c *Config) ApplyDefaults() {
	if c.Orchestrator == "" {
		c.Orchestrator = os.Getenv("FINSIGHT_ORCHESTRATOR_URL")
	}
	if c.Orchestrator == "" {
		c.Orchestrator = "http://localhost:12210"
	}
	c.Orchestrator = strings.TrimSuffix(c.Orchestrator, "/")
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Level maps the configured log level string onto the logging package level.
func (c *Config) Level() logging.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
