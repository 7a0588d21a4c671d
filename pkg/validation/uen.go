// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for security-critical operations.
//
// This package contains validators for user-provided inputs that are used in
// database queries or filter expressions. Using these validators prevents
// injection attacks through filing identifiers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// uenPatterns match the three ACRA UEN formats:
//   - Businesses registered with ACRA: 8 digits + check letter (nnnnnnnnX)
//   - Local companies: 4-digit year + 5 digits + check letter (yyyynnnnnX)
//   - Other entities: T/S/R + 2-digit year + entity type + 4 digits + check
//     letter (TyyPQnnnnX)
var uenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{8}[A-Z]$`),
	regexp.MustCompile(`^(19|20)\d{2}\d{5}[A-Z]$`),
	regexp.MustCompile(`^[TSR]\d{2}[A-Z]{2}\d{4}[A-Z]$`),
}

// fiscalPeriodPattern matches fiscal period labels like FY2024 or FY2024H1.
var fiscalPeriodPattern = regexp.MustCompile(`^FY(19|20)\d{2}(H[12]|Q[1-4])?$`)

// ValidateUEN validates an ACRA Unique Entity Number.
//
// Accepts the three registered formats (business, local company, other
// entity). Returns an error if the UEN matches none of them.
//
// Example:
//
//	if err := validation.ValidateUEN(uen); err != nil {
//	    return nil, fmt.Errorf("invalid uen: %w", err)
//	}
//	// Safe to use in a Weaviate where filter
func ValidateUEN(uen string) error {
	if uen == "" {
		return fmt.Errorf("uen cannot be empty")
	}
	for _, pattern := range uenPatterns {
		if pattern.MatchString(uen) {
			return nil
		}
	}
	return fmt.Errorf("invalid uen format: %q", uen)
}

// SanitizeUEN normalizes and validates a UEN.
// Returns the uppercase UEN if valid, or an error if invalid.
func SanitizeUEN(uen string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(uen))
	if err := ValidateUEN(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// ValidateFiscalPeriod validates a fiscal period label.
//
// Valid labels are FY followed by a four-digit year, optionally suffixed
// with a half (H1, H2) or quarter (Q1-Q4) marker.
func ValidateFiscalPeriod(period string) error {
	if period == "" {
		return fmt.Errorf("fiscal period cannot be empty")
	}
	if !fiscalPeriodPattern.MatchString(period) {
		return fmt.Errorf("invalid fiscal period: %q (expected e.g. FY2024, FY2024H1, FY2024Q3)", period)
	}
	return nil
}

// SanitizeFiscalPeriod normalizes and validates a fiscal period label.
func SanitizeFiscalPeriod(period string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(period))
	if err := ValidateFiscalPeriod(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
