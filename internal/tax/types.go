// Package tax defines the data model returned by the ByeTax analysis backend.
// Everything here is decoded input; nothing in the client mutates it.
package tax

import (
	"encoding/json"
	"fmt"
)

// Taxpayer holds the scalar identity fields of one analyzed document.
type Taxpayer struct {
	ID                    int64  `json:"id,omitempty"`
	TaxYear               *int   `json:"tax_year"`
	Name                  string `json:"name"`
	BirthDate             string `json:"birth_date"`
	GuideType             string `json:"guide_type"`
	BookkeepingObligation string `json:"bookkeeping_obligation"`
	EstimatedExpenseRate  string `json:"estimated_expense_rate"`
	PaymentExtension      string `json:"payment_extension,omitempty"`
	ReligionIncome        string `json:"religion_income,omitempty"`
	UploadedAt            string `json:"uploaded_at,omitempty"`
	PDFFilename           string `json:"pdf_filename,omitempty"`
}

// Business is one row of the per-business revenue table.
type Business struct {
	BusinessRegNo            string   `json:"business_reg_no"`
	BusinessName             string   `json:"business_name"`
	IncomeTypeCode           string   `json:"income_type_code"`
	IndustryCode             string   `json:"industry_code"`
	BusinessType             string   `json:"business_type"`
	BookkeepingObligation    string   `json:"bookkeeping_obligation"`
	ExpenseRateType          string   `json:"expense_rate_type"`
	Revenue                  *int64   `json:"revenue"`
	StdExpenseRateGeneral    *float64 `json:"std_expense_rate_general"`
	StdExpenseRateOwn        *float64 `json:"std_expense_rate_own"`
	SimpleExpenseRateGeneral *float64 `json:"simple_expense_rate_general"`
	SimpleExpenseRateOwn     *float64 `json:"simple_expense_rate_own"`
}

// TaxHistory is one attribution year of the 3-year tax summary.
// Amounts are in thousands of won.
type TaxHistory struct {
	AttributionYear  *int     `json:"attribution_year"`
	TotalIncome      *int64   `json:"total_income"`
	IncomeDeduction  *int64   `json:"income_deduction"`
	TaxableIncome    *int64   `json:"taxable_income"`
	TaxRate          *float64 `json:"tax_rate"`
	CalculatedTax    *int64   `json:"calculated_tax"`
	DeductionTax     *int64   `json:"deduction_tax"`
	DeterminedTax    *int64   `json:"determined_tax"`
	EffectiveTaxRate *float64 `json:"effective_tax_rate"`
}

// IncomeRate is one year of reported revenue, expense and income.
type IncomeRate struct {
	BusinessRegNo     string   `json:"business_reg_no"`
	BusinessName      string   `json:"business_name"`
	AttributionYear   *int     `json:"attribution_year"`
	Revenue           *int64   `json:"revenue"`
	NecessaryExpenses *int64   `json:"necessary_expenses"`
	Income            *int64   `json:"income"`
	IncomeRate        *float64 `json:"income_rate"`
}

// SGExpense compares one selling/general expense account against the industry.
type SGExpense struct {
	AnalysisYear    *int     `json:"analysis_year"`
	AccountCode     string   `json:"account_code"`
	AccountName     string   `json:"account_name"`
	Amount          *int64   `json:"amount"`
	CompanyRate     *float64 `json:"company_rate"`
	IndustryAvgRate *float64 `json:"industry_avg_rate"`
}

// Deduction is a reference deduction or prepaid-tax item.
type Deduction struct {
	Category string `json:"category"`
	ItemName string `json:"item_name"`
	Amount   *int64 `json:"amount"`
}

// CardUsageTotal is the category of the aggregate credit-card row.
const CardUsageTotal = "합계"

// CardUsage is one category of business credit-card spending.
type CardUsage struct {
	UsageYear *int   `json:"usage_year"`
	Category  string `json:"category"`
	Count     *int64 `json:"count"`
	Amount    *int64 `json:"amount"`
}

// IsTotal reports whether the row is the aggregate row.
func (c CardUsage) IsTotal() bool {
	return c.Category == CardUsageTotal
}

// OtherIncome flags whether data exists for an income type ("O" or "X").
type OtherIncome struct {
	IncomeType string `json:"income_type"`
	HasData    string `json:"has_data"`
}

// Present reports whether the flag is set.
func (o OtherIncome) Present() bool {
	return o.HasData == "O" || o.HasData == "o"
}

// Penalty is one penalty-tax line item.
type Penalty struct {
	PenaltyType string `json:"penalty_type"`
	DetailType  string `json:"detail_type"`
	Count       *int64 `json:"count"`
	Amount      *int64 `json:"amount"`
}

// AnalysisResult is the full decoded analysis of one taxpayer document.
type AnalysisResult struct {
	Taxpayer          Taxpayer      `json:"taxpayer"`
	Businesses        []Business    `json:"businesses"`
	TaxHistory        []TaxHistory  `json:"tax_history"`
	IncomeRateHistory []IncomeRate  `json:"income_rate_history"`
	SGExpenses        []SGExpense   `json:"sg_expenses"`
	Deductions        []Deduction   `json:"deductions"`
	CreditCardUsage   []CardUsage   `json:"credit_card_usage"`
	OtherIncomes      []OtherIncome `json:"other_incomes"`
	PenaltyTaxes      []Penalty     `json:"penalty_taxes"`
}

// UnmarshalJSON accepts both the nested shape returned by the upload endpoint
// ({"taxpayer": {...}, ...}) and the flat shape returned by the detail and
// share endpoints, where taxpayer columns sit at the top level.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	type plain AnalysisResult
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decoding analysis result: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("decoding analysis result: %w", err)
	}
	if _, nested := probe["taxpayer"]; !nested {
		if err := json.Unmarshal(data, &p.Taxpayer); err != nil {
			return fmt.Errorf("decoding taxpayer fields: %w", err)
		}
	}

	*r = AnalysisResult(p)
	return nil
}

// TotalRevenue sums revenue across businesses, treating null as zero.
func (r *AnalysisResult) TotalRevenue() int64 {
	var total int64
	for _, b := range r.Businesses {
		if b.Revenue != nil {
			total += *b.Revenue
		}
	}
	return total
}
