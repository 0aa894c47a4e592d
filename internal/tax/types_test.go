package tax

import (
	"encoding/json"
	"testing"
)

func TestAnalysisResultNestedTaxpayer(t *testing.T) {
	raw := `{"taxpayer":{"tax_year":2024,"name":"김*수"},"businesses":[{"business_name":"가게","revenue":1000}]}`

	var res AnalysisResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if res.Taxpayer.Name != "김*수" {
		t.Errorf("Name = %q, want %q", res.Taxpayer.Name, "김*수")
	}
	if res.Taxpayer.TaxYear == nil || *res.Taxpayer.TaxYear != 2024 {
		t.Errorf("TaxYear = %v, want 2024", res.Taxpayer.TaxYear)
	}
	if len(res.Businesses) != 1 {
		t.Fatalf("len(Businesses) = %d, want 1", len(res.Businesses))
	}
}

func TestAnalysisResultFlatTaxpayer(t *testing.T) {
	raw := `{"id":7,"tax_year":2023,"name":"이*영","guide_type":"F, 기준경비율","uploaded_at":"2025-04-01 09:30:12","penalty_taxes":[]}`

	var res AnalysisResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if res.Taxpayer.ID != 7 {
		t.Errorf("ID = %d, want 7", res.Taxpayer.ID)
	}
	if res.Taxpayer.GuideType != "F, 기준경비율" {
		t.Errorf("GuideType = %q", res.Taxpayer.GuideType)
	}
	if res.PenaltyTaxes == nil {
		t.Error("PenaltyTaxes should decode to an empty slice, got nil")
	}
}

func TestTotalRevenueSkipsNull(t *testing.T) {
	a, b := int64(1500), int64(2500)
	res := AnalysisResult{Businesses: []Business{{Revenue: &a}, {Revenue: nil}, {Revenue: &b}}}
	if got := res.TotalRevenue(); got != 4000 {
		t.Errorf("TotalRevenue() = %d, want 4000", got)
	}
}

func TestRiskLevelRank(t *testing.T) {
	if !(RiskLow.Rank() < RiskMedium.Rank() && RiskMedium.Rank() < RiskHigh.Rank()) {
		t.Error("risk levels should be strictly ordered low < medium < high")
	}
	if RiskLevel("unknown").Rank() != 0 {
		t.Error("unknown risk level should rank 0")
	}
}
