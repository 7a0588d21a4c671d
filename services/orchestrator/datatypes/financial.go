// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

// FinancialStatement holds the structured financial data extracted from an
// annual report, shaped after the ACRA simplified XBRL filing schema.
//
// All monetary fields are pointers: nil means "not found in the filing",
// which is distinct from an explicit zero. Amounts are in the reporting
// currency of the filing.
type FinancialStatement struct {
	// Filing identity
	CompanyName  string `json:"company_name,omitempty"`
	UEN          string `json:"uen,omitempty"`
	Currency     string `json:"currency,omitempty"`
	FiscalPeriod string `json:"fiscal_period,omitempty"` // e.g. "FY2024"
	PeriodStart  string `json:"period_start,omitempty"`  // ISO date
	PeriodEnd    string `json:"period_end,omitempty"`    // ISO date

	// Income statement
	Revenue          *float64 `json:"revenue,omitempty"`
	OtherIncome      *float64 `json:"other_income,omitempty"`
	EmployeeExpenses *float64 `json:"employee_benefits_expense,omitempty"`
	DepreciationExp  *float64 `json:"depreciation_expense,omitempty"`
	FinanceCosts     *float64 `json:"finance_costs,omitempty"`
	ProfitBeforeTax  *float64 `json:"profit_before_tax,omitempty"`
	IncomeTaxExpense *float64 `json:"income_tax_expense,omitempty"`
	ProfitAfterTax   *float64 `json:"profit_after_tax,omitempty"`

	// Balance sheet
	CurrentAssets         *float64 `json:"current_assets,omitempty"`
	NonCurrentAssets      *float64 `json:"noncurrent_assets,omitempty"`
	TotalAssets           *float64 `json:"total_assets,omitempty"`
	CurrentLiabilities    *float64 `json:"current_liabilities,omitempty"`
	NonCurrentLiabilities *float64 `json:"noncurrent_liabilities,omitempty"`
	TotalLiabilities      *float64 `json:"total_liabilities,omitempty"`
	ShareCapital          *float64 `json:"share_capital,omitempty"`
	RetainedEarnings      *float64 `json:"retained_earnings,omitempty"`
	TotalEquity           *float64 `json:"total_equity,omitempty"`

	// Cash flow
	OperatingCashFlow *float64 `json:"net_cash_from_operating,omitempty"`
	InvestingCashFlow *float64 `json:"net_cash_from_investing,omitempty"`
	FinancingCashFlow *float64 `json:"net_cash_from_financing,omitempty"`
	CashAtPeriodEnd   *float64 `json:"cash_at_period_end,omitempty"`
}

// Merge fills fields that are missing on the receiver from other.
//
// # Description
//
// Merge is used by the full-report extraction path, where a large filing is
// processed as a sequence of budgeted batches: each batch yields a partial
// statement and the partials are folded left-to-right. Earlier batches win;
// a later batch never overwrites a field the receiver already has. This
// matches document order, so values from the primary statements (which
// appear first in a filing) take precedence over repeated mentions in the
// notes.
func (f *FinancialStatement) Merge(other *FinancialStatement) {
	if other == nil {
		return
	}
	if f.CompanyName == "" {
		f.CompanyName = other.CompanyName
	}
	if f.UEN == "" {
		f.UEN = other.UEN
	}
	if f.Currency == "" {
		f.Currency = other.Currency
	}
	if f.FiscalPeriod == "" {
		f.FiscalPeriod = other.FiscalPeriod
	}
	if f.PeriodStart == "" {
		f.PeriodStart = other.PeriodStart
	}
	if f.PeriodEnd == "" {
		f.PeriodEnd = other.PeriodEnd
	}

	for _, pair := range []struct {
		dst **float64
		src *float64
	}{
		{&f.Revenue, other.Revenue},
		{&f.OtherIncome, other.OtherIncome},
		{&f.EmployeeExpenses, other.EmployeeExpenses},
		{&f.DepreciationExp, other.DepreciationExp},
		{&f.FinanceCosts, other.FinanceCosts},
		{&f.ProfitBeforeTax, other.ProfitBeforeTax},
		{&f.IncomeTaxExpense, other.IncomeTaxExpense},
		{&f.ProfitAfterTax, other.ProfitAfterTax},
		{&f.CurrentAssets, other.CurrentAssets},
		{&f.NonCurrentAssets, other.NonCurrentAssets},
		{&f.TotalAssets, other.TotalAssets},
		{&f.CurrentLiabilities, other.CurrentLiabilities},
		{&f.NonCurrentLiabilities, other.NonCurrentLiabilities},
		{&f.TotalLiabilities, other.TotalLiabilities},
		{&f.ShareCapital, other.ShareCapital},
		{&f.RetainedEarnings, other.RetainedEarnings},
		{&f.TotalEquity, other.TotalEquity},
		{&f.OperatingCashFlow, other.OperatingCashFlow},
		{&f.InvestingCashFlow, other.InvestingCashFlow},
		{&f.FinancingCashFlow, other.FinancingCashFlow},
		{&f.CashAtPeriodEnd, other.CashAtPeriodEnd},
	} {
		if *pair.dst == nil && pair.src != nil {
			*pair.dst = pair.src
		}
	}
}

// IsEmpty reports whether no field of the statement is populated.
func (f *FinancialStatement) IsEmpty() bool {
	if f == nil {
		return true
	}
	empty := FinancialStatement{}
	other := *f
	return other == empty
}
