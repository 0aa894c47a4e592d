package render

import (
	"reflect"
	"strings"
	"testing"

	"github.com/byetax/byetax/internal/tax"
)

func sampleResult() *tax.AnalysisResult {
	return &tax.AnalysisResult{
		Taxpayer: tax.Taxpayer{
			TaxYear:               year(2024),
			Name:                  "홍길동",
			GuideType:             "간편장부대상자, 단순경비율",
			BookkeepingObligation: "간편장부대상자",
		},
		Businesses: []tax.Business{
			{BusinessRegNo: "123-45-67890", BusinessName: "길동상회", IndustryCode: "940909", Revenue: i64(30000000)},
			{BusinessRegNo: "987-65-43210", BusinessName: "길동출판", IndustryCode: "221100"},
		},
		TaxHistory: []tax.TaxHistory{
			{AttributionYear: year(2023), TaxableIncome: i64(20000), TaxRate: f64(15), DeterminedTax: i64(1740)},
			{AttributionYear: year(2021), TaxableIncome: i64(12000), TaxRate: f64(15), DeterminedTax: i64(540)},
			{AttributionYear: year(2022), TaxableIncome: i64(15000), TaxRate: f64(15), DeterminedTax: i64(990)},
		},
		IncomeRateHistory: []tax.IncomeRate{
			{AttributionYear: year(2023), BusinessName: "길동상회", Revenue: i64(30000), Income: i64(-1200), IncomeRate: f64(-4)},
		},
		CreditCardUsage: []tax.CardUsage{
			{Category: tax.CardUsageTotal, Count: i64(10), Amount: i64(1000)},
			{Category: "신변잡화구입", Count: i64(3), Amount: i64(250)},
			{Category: "해외사용액", Count: i64(0), Amount: i64(0)},
		},
		OtherIncomes: []tax.OtherIncome{
			{IncomeType: "이자", HasData: "O"},
			{IncomeType: "배당", HasData: "X"},
			{IncomeType: "로열티", HasData: "X"},
		},
		PenaltyTaxes: []tax.Penalty{
			{PenaltyType: "무기장", DetailType: "미기장", Count: i64(2)},
			{PenaltyType: "지급명세서", DetailType: "미제출", Amount: i64(0)},
			{PenaltyType: "영수증", DetailType: "미수취"},
		},
	}
}

func mustFragment(t *testing.T, m *Mount, slot Slot) Fragment {
	t.Helper()
	f, ok := m.Fragment(slot)
	if !ok {
		t.Fatalf("slot %s not rendered", slot.Title())
	}
	return f
}

func TestResultRendersAllNineSlots(t *testing.T) {
	m := NewPrimaryMount()
	Result(sampleResult(), m)
	for _, slot := range ResultSlots {
		f := mustFragment(t, m, slot)
		if f.Title != slot.Title() {
			t.Errorf("slot %d title: got %q, want %q", slot, f.Title, slot.Title())
		}
	}
	if _, ok := m.Fragment(SlotCalculation); ok {
		t.Error("Result must not touch the calculation panel")
	}
}

func TestEmptyListsRenderSpanningPlaceholder(t *testing.T) {
	for _, m := range []*Mount{NewPrimaryMount(), NewDetailMount()} {
		Result(&tax.AnalysisResult{}, m)

		f := mustFragment(t, m, SlotBusinesses)
		if len(f.Rows) != 1 {
			t.Fatalf("%s: business rows: got %d, want 1", m.Name(), len(f.Rows))
		}
		want := len(businessFullHeaders)
		if m.Density() == DensityCondensed {
			want = len(businessCondensedHeaders)
		}
		if f.Rows[0].Span != want {
			t.Errorf("%s: placeholder span: got %d, want %d", m.Name(), f.Rows[0].Span, want)
		}
		if f.Rows[0].Class != ClassPlaceholder {
			t.Errorf("%s: placeholder class: got %q", m.Name(), f.Rows[0].Class)
		}

		for _, slot := range []Slot{SlotTaxHistory, SlotIncomeRates, SlotSGExpenses, SlotDeductions, SlotCardUsage, SlotOtherIncomes, SlotPenalties} {
			f := mustFragment(t, m, slot)
			if len(f.Rows) != 1 || f.Rows[0].Span != len(f.Headers) {
				t.Errorf("%s/%s: want one placeholder row spanning %d columns, got %+v", m.Name(), slot.Title(), len(f.Headers), f.Rows)
			}
		}
	}
}

func TestBusinessDensity(t *testing.T) {
	res := sampleResult()
	full := NewPrimaryMount()
	detail := NewDetailMount()
	Result(res, full)
	Result(res, detail)

	ff := mustFragment(t, full, SlotBusinesses)
	if len(ff.Headers) != 9 || len(ff.Rows[0].Cells) != 9 {
		t.Errorf("full layout: got %d headers, %d cells", len(ff.Headers), len(ff.Rows[0].Cells))
	}
	df := mustFragment(t, detail, SlotBusinesses)
	if len(df.Headers) != 4 || len(df.Rows[0].Cells) != 4 {
		t.Errorf("condensed layout: got %d headers, %d cells", len(df.Headers), len(df.Rows[0].Cells))
	}
	if ff.Summary != "총 수입금액 30,000,000원" {
		t.Errorf("summary: got %q", ff.Summary)
	}
	if got := df.Rows[1].Cells[2].Text; got != "-" {
		t.Errorf("null revenue: got %q, want -", got)
	}
}

func TestTaxHistoryTransposedByYear(t *testing.T) {
	m := NewPrimaryMount()
	Result(sampleResult(), m)
	f := mustFragment(t, m, SlotTaxHistory)

	wantHeaders := []string{"구분(천원)", "2021귀속", "2022귀속", "2023귀속"}
	if !reflect.DeepEqual(f.Headers, wantHeaders) {
		t.Errorf("headers: got %v, want %v", f.Headers, wantHeaders)
	}
	for _, row := range f.Rows {
		label := row.Cells[0].Text
		switch label {
		case "과세표준", "결정세액":
			if row.Class != ClassTotal {
				t.Errorf("%s: want emphasised row", label)
			}
		case "세율":
			if row.Cells[1].Text != "15.00%" {
				t.Errorf("세율 2021: got %q", row.Cells[1].Text)
			}
		}
		if label == "과세표준" && row.Cells[3].Text != "20,000" {
			t.Errorf("과세표준 2023: got %q", row.Cells[3].Text)
		}
	}
}

func TestIncomeRateNegativeKeepsSign(t *testing.T) {
	m := NewPrimaryMount()
	Result(sampleResult(), m)
	f := mustFragment(t, m, SlotIncomeRates)
	cells := f.Rows[0].Cells
	if cells[4].Text != "-1,200" || cells[4].Class != ClassNegative {
		t.Errorf("income cell: got %+v", cells[4])
	}
	if cells[5].Text != "-4.00%" || cells[5].Class != ClassNegative {
		t.Errorf("rate cell: got %+v", cells[5])
	}
}

func TestCardUsageBarsUseAggregateDenominator(t *testing.T) {
	m := NewPrimaryMount()
	Result(sampleResult(), m)
	f := mustFragment(t, m, SlotCardUsage)

	if len(f.Rows) != 3 {
		t.Errorf("rows: got %d, want 3", len(f.Rows))
	}
	if f.Rows[0].Class != ClassAggregate {
		t.Errorf("aggregate row class: got %q", f.Rows[0].Class)
	}
	if len(f.Bars) != 1 {
		t.Fatalf("bars: got %d, want 1", len(f.Bars))
	}
	if f.Bars[0].Percent != 25 {
		t.Errorf("bar percent: got %v, want 25", f.Bars[0].Percent)
	}
}

func TestCardUsageWithoutAggregate(t *testing.T) {
	m := NewPrimaryMount()
	Result(&tax.AnalysisResult{CreditCardUsage: []tax.CardUsage{
		{Category: "개인적치료", Amount: i64(3)},
	}}, m)
	f := mustFragment(t, m, SlotCardUsage)
	if len(f.Bars) != 1 || f.Bars[0].Percent != 300 {
		t.Errorf("denominator should fall back to 1, got bars %+v", f.Bars)
	}
}

func TestOtherIncomeLabelsAndMarkers(t *testing.T) {
	m := NewPrimaryMount()
	Result(sampleResult(), m)
	f := mustFragment(t, m, SlotOtherIncomes)

	want := []struct{ label, marker string }{
		{"이자소득", "●"},
		{"배당소득", "○"},
		{"로열티", "○"},
	}
	for i, w := range want {
		if f.Rows[i].Cells[0].Text != w.label || f.Rows[i].Cells[1].Text != w.marker {
			t.Errorf("row %d: got %q %q, want %q %q", i, f.Rows[i].Cells[0].Text, f.Rows[i].Cells[1].Text, w.label, w.marker)
		}
	}
}

func TestPenaltiesDropEmptyRows(t *testing.T) {
	m := NewPrimaryMount()
	Result(sampleResult(), m)
	f := mustFragment(t, m, SlotPenalties)

	if len(f.Rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(f.Rows))
	}
	if f.Rows[0].Cells[2].Text != "2건" || f.Rows[0].Class != ClassIssue {
		t.Errorf("count row: got %+v", f.Rows[0])
	}
	if f.Rows[1].Cells[2].Text != "0원" || f.Rows[1].Class != ClassNone {
		t.Errorf("zero amount row: got %+v", f.Rows[1])
	}
}

func TestResultIsIdempotent(t *testing.T) {
	res := sampleResult()
	m := NewPrimaryMount()
	Result(res, m)
	first := m.View(80)
	Result(res, m)
	if second := m.View(80); first != second {
		t.Error("rendering the same result twice changed the output")
	}
}

func TestMountsAreIsolated(t *testing.T) {
	primary := NewPrimaryMount()
	detail := NewDetailMount()
	Result(sampleResult(), primary)
	before := primary.View(80)

	other := sampleResult()
	other.Taxpayer.Name = "김철수"
	Result(other, detail)

	if after := primary.View(80); after != before {
		t.Error("rendering into the detail mount changed the primary mount")
	}
	if !strings.Contains(detail.View(80), "김철수") {
		t.Error("detail mount missing its own content")
	}
}

func TestSharedMountSkipsPanels(t *testing.T) {
	m := NewSharedMount()
	if _, ok := m.Begin(SlotCalculation); ok {
		t.Error("shared mount must not start panel loads")
	}
	Calculation(&tax.CalculationResult{}, m)
	if _, ok := m.Fragment(SlotCalculation); ok {
		t.Error("shared mount rendered a calculation panel")
	}
}
