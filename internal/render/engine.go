package render

import (
	"fmt"
	"sort"

	"github.com/byetax/byetax/internal/tax"
)

const emptyText = "데이터 없음"

// Result rebuilds the nine result fragments of m from res. It reads only
// res and writes only m, so rendering the same input twice yields the same
// fragments, and rendering one mount never disturbs another.
func Result(res *tax.AnalysisResult, m *Mount) {
	if res == nil || m == nil {
		return
	}
	renderTaxpayer(res.Taxpayer, m)
	renderBusinesses(res, m)
	renderTaxHistory(res.TaxHistory, m)
	renderIncomeRates(res.IncomeRateHistory, m)
	renderSGExpenses(res.SGExpenses, m)
	renderDeductions(res.Deductions, m)
	renderCardUsage(res.CreditCardUsage, m)
	renderOtherIncomes(res.OtherIncomes, m)
	renderPenalties(res.PenaltyTaxes, m)
}

func renderTaxpayer(tp tax.Taxpayer, m *Mount) {
	if !m.Has(SlotTaxpayer) {
		return
	}
	pairs := [][2]string{
		{"귀속연도", Year(tp.TaxYear)},
		{"성명", Text(tp.Name)},
		{"생년월일", Text(tp.BirthDate)},
		{"기장의무", Text(tp.BookkeepingObligation)},
		{"추계시 적용경비율", Text(tp.EstimatedExpenseRate)},
		{"안내유형", Text(tp.GuideType)},
	}
	rows := make([]Row, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, Row{Cells: []Cell{{Text: p[0], Class: ClassEmphasis}, plain(p[1])}})
	}
	m.set(SlotTaxpayer, Fragment{Rows: rows})
}

var (
	businessFullHeaders = []string{
		"사업자번호", "상호", "수입종류", "업종코드", "기장의무",
		"경비율", "수입금액", "기준경비율", "단순경비율",
	}
	businessCondensedHeaders = []string{"상호", "업종코드", "수입금액", "경비율"}
)

func renderBusinesses(res *tax.AnalysisResult, m *Mount) {
	if !m.Has(SlotBusinesses) {
		return
	}
	headers := businessFullHeaders
	if m.Density() == DensityCondensed {
		headers = businessCondensedHeaders
	}

	f := Fragment{
		Headers: headers,
		Summary: "총 수입금액 " + MoneyValue(res.TotalRevenue()),
	}
	if len(res.Businesses) == 0 {
		f.Rows = []Row{placeholderRow(len(headers), emptyText)}
		m.set(SlotBusinesses, f)
		return
	}

	for _, b := range res.Businesses {
		var cells []Cell
		if m.Density() == DensityCondensed {
			cells = []Cell{
				plain(Text(b.BusinessName)),
				plain(Text(b.IndustryCode)),
				right(Money(b.Revenue)),
				plain(Text(b.ExpenseRateType)),
			}
		} else {
			cells = []Cell{
				plain(Text(b.BusinessRegNo)),
				plain(Text(b.BusinessName)),
				plain(Text(b.IncomeTypeCode)),
				plain(Text(b.IndustryCode)),
				plain(Text(b.BookkeepingObligation)),
				plain(Text(b.ExpenseRateType)),
				right(Money(b.Revenue)),
				right(Pct(b.StdExpenseRateGeneral)),
				right(Pct(b.SimpleExpenseRateGeneral)),
			}
		}
		f.Rows = append(f.Rows, Row{Cells: cells})
	}
	m.set(SlotBusinesses, f)
}

type historyMetric struct {
	label    string
	emphasis bool
	amount   func(tax.TaxHistory) *int64
	rate     func(tax.TaxHistory) *float64
}

var taxHistoryMetrics = []historyMetric{
	{label: "종합소득금액", amount: func(h tax.TaxHistory) *int64 { return h.TotalIncome }},
	{label: "소득공제", amount: func(h tax.TaxHistory) *int64 { return h.IncomeDeduction }},
	{label: "과세표준", emphasis: true, amount: func(h tax.TaxHistory) *int64 { return h.TaxableIncome }},
	{label: "세율", rate: func(h tax.TaxHistory) *float64 { return h.TaxRate }},
	{label: "산출세액", amount: func(h tax.TaxHistory) *int64 { return h.CalculatedTax }},
	{label: "공제·감면세액", amount: func(h tax.TaxHistory) *int64 { return h.DeductionTax }},
	{label: "결정세액", emphasis: true, amount: func(h tax.TaxHistory) *int64 { return h.DeterminedTax }},
	{label: "실효세율", rate: func(h tax.TaxHistory) *float64 { return h.EffectiveTaxRate }},
}

func yearKey(y *int) int {
	if y == nil {
		return 0
	}
	return *y
}

func renderTaxHistory(history []tax.TaxHistory, m *Mount) {
	if !m.Has(SlotTaxHistory) {
		return
	}
	years := append([]tax.TaxHistory(nil), history...)
	sort.SliceStable(years, func(i, j int) bool {
		return yearKey(years[i].AttributionYear) < yearKey(years[j].AttributionYear)
	})

	headers := []string{"구분(천원)"}
	for _, h := range years {
		headers = append(headers, Year(h.AttributionYear)+"귀속")
	}
	f := Fragment{Headers: headers}
	if len(years) == 0 {
		f.Rows = []Row{placeholderRow(len(headers), emptyText)}
		m.set(SlotTaxHistory, f)
		return
	}

	for _, metric := range taxHistoryMetrics {
		row := Row{Cells: []Cell{{Text: metric.label, Class: ClassEmphasis}}}
		if metric.emphasis {
			row.Class = ClassTotal
		}
		for _, h := range years {
			if metric.rate != nil {
				row.Cells = append(row.Cells, right(Pct(metric.rate(h))))
			} else {
				row.Cells = append(row.Cells, right(Number(metric.amount(h))))
			}
		}
		f.Rows = append(f.Rows, row)
	}
	m.set(SlotTaxHistory, f)
}

var incomeRateHeaders = []string{"귀속연도", "상호", "수입금액(천원)", "필요경비(천원)", "소득금액(천원)", "소득률"}

func renderIncomeRates(rates []tax.IncomeRate, m *Mount) {
	if !m.Has(SlotIncomeRates) {
		return
	}
	f := Fragment{Headers: incomeRateHeaders}
	if len(rates) == 0 {
		f.Rows = []Row{placeholderRow(len(incomeRateHeaders), emptyText)}
		m.set(SlotIncomeRates, f)
		return
	}

	sorted := append([]tax.IncomeRate(nil), rates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return yearKey(sorted[i].AttributionYear) < yearKey(sorted[j].AttributionYear)
	})
	for _, r := range sorted {
		incomeClass := ClassNone
		if r.Income != nil && *r.Income < 0 {
			incomeClass = ClassNegative
		}
		rateClass := ClassNone
		if r.IncomeRate != nil && *r.IncomeRate < 0 {
			rateClass = ClassNegative
		}
		f.Rows = append(f.Rows, Row{Cells: []Cell{
			plain(Year(r.AttributionYear)),
			plain(Text(r.BusinessName)),
			right(Number(r.Revenue)),
			right(Number(r.NecessaryExpenses)),
			rightClass(Number(r.Income), incomeClass),
			rightClass(Pct(r.IncomeRate), rateClass),
		}})
	}
	m.set(SlotIncomeRates, f)
}

var sgExpenseHeaders = []string{"계정코드", "계정과목", "금액(천원)", "당해업체", "업종평균"}

func renderSGExpenses(expenses []tax.SGExpense, m *Mount) {
	if !m.Has(SlotSGExpenses) {
		return
	}
	f := Fragment{Headers: sgExpenseHeaders}
	if len(expenses) == 0 {
		f.Rows = []Row{placeholderRow(len(sgExpenseHeaders), emptyText)}
		m.set(SlotSGExpenses, f)
		return
	}
	for _, e := range expenses {
		f.Rows = append(f.Rows, Row{Cells: []Cell{
			plain(Text(e.AccountCode)),
			plain(Text(e.AccountName)),
			right(Number(e.Amount)),
			right(Pct(e.CompanyRate)),
			right(Pct(e.IndustryAvgRate)),
		}})
	}
	m.set(SlotSGExpenses, f)
}

var deductionHeaders = []string{"구분", "항목", "금액"}

func renderDeductions(deductions []tax.Deduction, m *Mount) {
	if !m.Has(SlotDeductions) {
		return
	}
	f := Fragment{Headers: deductionHeaders}
	if len(deductions) == 0 {
		f.Rows = []Row{placeholderRow(len(deductionHeaders), emptyText)}
		m.set(SlotDeductions, f)
		return
	}
	for _, d := range deductions {
		amountClass := ClassNone
		if d.Amount != nil && *d.Amount > 0 {
			amountClass = ClassEmphasis
		}
		f.Rows = append(f.Rows, Row{Cells: []Cell{
			plain(Text(d.Category)),
			plain(Text(d.ItemName)),
			rightClass(Money(d.Amount), amountClass),
		}})
	}
	m.set(SlotDeductions, f)
}

var cardUsageHeaders = []string{"구분", "건수", "금액"}

// cardUsageDenominator returns the aggregate row's amount, or 1 when the
// aggregate is missing or not positive.
func cardUsageDenominator(usage []tax.CardUsage) float64 {
	for _, u := range usage {
		if u.IsTotal() && u.Amount != nil && *u.Amount > 0 {
			return float64(*u.Amount)
		}
	}
	return 1
}

func renderCardUsage(usage []tax.CardUsage, m *Mount) {
	if !m.Has(SlotCardUsage) {
		return
	}
	f := Fragment{Headers: cardUsageHeaders}
	if len(usage) == 0 {
		f.Rows = []Row{placeholderRow(len(cardUsageHeaders), emptyText)}
		m.set(SlotCardUsage, f)
		return
	}

	denom := cardUsageDenominator(usage)
	for _, u := range usage {
		row := Row{Cells: []Cell{
			plain(Text(u.Category)),
			right(Number(u.Count)),
			right(Money(u.Amount)),
		}}
		if u.IsTotal() {
			row.Class = ClassAggregate
			f.Rows = append(f.Rows, row)
			continue
		}
		f.Rows = append(f.Rows, row)
		if u.Amount != nil && *u.Amount > 0 {
			f.Bars = append(f.Bars, Bar{
				Label:   u.Category,
				Percent: float64(*u.Amount) / denom * 100,
			})
		}
	}
	m.set(SlotCardUsage, f)
}

var otherIncomeLabels = map[string]string{
	"이자":   "이자소득",
	"배당":   "배당소득",
	"근로단일": "근로소득(단일)",
	"근로복수": "근로소득(복수)",
	"연금":   "연금소득",
	"기타":   "기타소득",
}

// OtherIncomeLabel maps an income-type code to its display label; unknown
// codes pass through unchanged.
func OtherIncomeLabel(code string) string {
	if label, ok := otherIncomeLabels[code]; ok {
		return label
	}
	return code
}

var otherIncomeHeaders = []string{"소득구분", "자료유무"}

func renderOtherIncomes(incomes []tax.OtherIncome, m *Mount) {
	if !m.Has(SlotOtherIncomes) {
		return
	}
	f := Fragment{Headers: otherIncomeHeaders}
	if len(incomes) == 0 {
		f.Rows = []Row{placeholderRow(len(otherIncomeHeaders), emptyText)}
		m.set(SlotOtherIncomes, f)
		return
	}
	for _, oi := range incomes {
		marker := Cell{Text: "○"}
		if oi.Present() {
			marker = Cell{Text: "●", Class: ClassPresent}
		}
		f.Rows = append(f.Rows, Row{Cells: []Cell{plain(OtherIncomeLabel(oi.IncomeType)), marker}})
	}
	m.set(SlotOtherIncomes, f)
}

var penaltyHeaders = []string{"가산세 항목", "세부 구분", "건수/금액"}

func positive(v *int64) bool {
	return v != nil && *v > 0
}

func renderPenalties(penalties []tax.Penalty, m *Mount) {
	if !m.Has(SlotPenalties) {
		return
	}
	f := Fragment{Headers: penaltyHeaders}
	for _, p := range penalties {
		if p.Count == nil && p.Amount == nil {
			continue
		}
		value := Money(p.Amount)
		if p.Count != nil {
			value = fmt.Sprintf("%d건", *p.Count)
		}
		row := Row{Cells: []Cell{
			plain(Text(p.PenaltyType)),
			plain(Text(p.DetailType)),
			right(value),
		}}
		if positive(p.Count) || positive(p.Amount) {
			row.Class = ClassIssue
		}
		f.Rows = append(f.Rows, row)
	}
	if len(f.Rows) == 0 {
		f.Rows = []Row{placeholderRow(len(penaltyHeaders), "해당 사항 없음")}
	}
	m.set(SlotPenalties, f)
}
