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
	"encoding/json"
	"fmt"

	"github.com/finsightai/FinsightLocal/services/llm"
)

// ============================================================================
// Routing
// ============================================================================

const routingPrompt = `You are a query router for a financial-report assistant.
Classify the user query into exactly one route:

- "retrieve": the query asks about specific figures, disclosures, or facts
  from uploaded financial filings (revenue, profit, assets, directors'
  remuneration, audit opinions, fiscal periods, named companies).
- "direct": the query is general knowledge, arithmetic, definitions, or
  conversation that does not require looking anything up in a filing.

Respond with JSON matching the schema. Do not add commentary outside it.

Query: %s`

// routeSchema constrains the router output to the two-member enum plus an
// optional free-text reasoning field the caller ignores.
var routeSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "route": {"type": "string", "enum": ["retrieve", "direct"]},
    "reasoning": {"type": "string"}
  },
  "required": ["route"],
  "additionalProperties": false
}`)

func buildRoutingPrompt(query string) string {
	return fmt.Sprintf(routingPrompt, query)
}

// ============================================================================
// Direct answers
// ============================================================================

// directSystemPrompt frames direct-path answers. It is sent to the model
// but never stored on the run state; the state keeps only the user turn
// and the reply.
const directSystemPrompt = `You are Finsight, an assistant for financial
filings and general finance questions. Answer concisely. If the question
actually requires facts from a specific filing, say so instead of guessing.`

// ============================================================================
// Extraction
// ============================================================================

const extractionSystemPrompt = `You are a financial data extraction engine for
Singapore ACRA annual filings. Extract every financial fact present in the
provided context: statement line items, monetary amounts with currency,
fiscal periods, company identifiers, and any disclosed ratios or notes.
Extraction must be complete and lossless: never omit, round, or summarize a
figure that appears in the context. If a fact is absent from the context,
leave it out rather than guessing.`

const extractionUserPrompt = `Extract all financial data from the following
report context. Normalize figures into the statement fields where they fit
and keep everything else as verbatim facts.

Context:
%s`

func buildExtractionMessages(context string) (system string, user string) {
	return extractionSystemPrompt, fmt.Sprintf(extractionUserPrompt, context)
}

// financialStatementSchema mirrors datatypes.FinancialStatement for
// backends that enforce structured output.
var financialStatementSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "company_name": {"type": "string"},
    "uen": {"type": "string"},
    "currency": {"type": "string"},
    "fiscal_period": {"type": "string"},
    "period_start": {"type": "string"},
    "period_end": {"type": "string"},
    "revenue": {"type": ["number", "null"]},
    "other_income": {"type": ["number", "null"]},
    "employee_benefits_expense": {"type": ["number", "null"]},
    "depreciation_expense": {"type": ["number", "null"]},
    "finance_costs": {"type": ["number", "null"]},
    "profit_before_tax": {"type": ["number", "null"]},
    "income_tax_expense": {"type": ["number", "null"]},
    "profit_after_tax": {"type": ["number", "null"]},
    "current_assets": {"type": ["number", "null"]},
    "noncurrent_assets": {"type": ["number", "null"]},
    "total_assets": {"type": ["number", "null"]},
    "current_liabilities": {"type": ["number", "null"]},
    "noncurrent_liabilities": {"type": ["number", "null"]},
    "total_liabilities": {"type": ["number", "null"]},
    "share_capital": {"type": ["number", "null"]},
    "retained_earnings": {"type": ["number", "null"]},
    "total_equity": {"type": ["number", "null"]},
    "net_cash_from_operating": {"type": ["number", "null"]},
    "net_cash_from_investing": {"type": ["number", "null"]},
    "net_cash_from_financing": {"type": ["number", "null"]},
    "cash_at_period_end": {"type": ["number", "null"]}
  },
  "required": ["company_name", "uen", "currency", "fiscal_period"],
  "additionalProperties": false
}`)

// llmStatementSchema packages the statement schema for a structured call.
func llmStatementSchema() llm.StructuredSchema {
	return llm.StructuredSchema{
		Name:   "financial_statement",
		Schema: financialStatementSchema,
	}
}

// ============================================================================
// Synthesis
// ============================================================================

const synthesisPrompt = `You are a financial analyst assistant. Answer the
user's question using only the extracted facts below. Cite figures exactly
as extracted; if the facts do not cover the question, say so instead of
speculating.

Question: %s

Extracted facts:
%s`

func buildSynthesisPrompt(query, extraction string) string {
	return fmt.Sprintf(synthesisPrompt, query, extraction)
}
