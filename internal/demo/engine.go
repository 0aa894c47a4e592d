package demo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/byetax/byetax/internal/tax"
)

type bracket struct {
	limit     float64
	rate      float64
	deduction int64
}

// brackets are the 2024 progressive income-tax brackets.
var brackets = []bracket{
	{14_000_000, 0.06, 0},
	{50_000_000, 0.15, 1_260_000},
	{88_000_000, 0.24, 5_760_000},
	{150_000_000, 0.35, 15_440_000},
	{300_000_000, 0.38, 19_940_000},
	{500_000_000, 0.40, 25_940_000},
	{1_000_000_000, 0.42, 35_940_000},
	{math.Inf(1), 0.45, 65_940_000},
}

func applyRate(taxable int64) (rate float64, deduction, calculated int64) {
	if taxable <= 0 {
		return 0, 0, 0
	}
	for _, b := range brackets {
		if float64(taxable) <= b.limit {
			calc := int64(float64(taxable)*b.rate) - b.deduction
			return b.rate, b.deduction, max(calc, 0)
		}
	}
	return 0, 0, 0
}

// mainBusiness picks the highest-revenue VAT business, falling back to the
// highest-revenue business of any kind.
func mainBusiness(bs []tax.Business) *tax.Business {
	var best *tax.Business
	for _, vatOnly := range []bool{true, false} {
		for i := range bs {
			b := &bs[i]
			if vatOnly && !strings.Contains(b.IncomeTypeCode, "부가가치세") {
				continue
			}
			if best == nil || revenue(b) > revenue(best) {
				best = b
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

func revenue(b *tax.Business) int64 {
	if b.Revenue == nil {
		return 0
	}
	return *b.Revenue
}

func sumDeductions(ds []tax.Deduction, category string) int64 {
	var total int64
	for _, d := range ds {
		if d.Category == category && d.Amount != nil {
			total += *d.Amount
		}
	}
	return total
}

func step(label string, value int64, op string) tax.CalcStep {
	return tax.CalcStep{Label: label, Value: &value, Op: op}
}

// Calculate runs the demo tax engine over res.
func Calculate(id int64, res *tax.AnalysisResult) tax.CalculationResult {
	var (
		rev         int64
		expenseRate float64
		rateType    = "-"
	)
	if b := mainBusiness(res.Businesses); b != nil {
		rev = revenue(b)
		rateType = b.ExpenseRateType
		if rateType == "" {
			rateType = "기준"
		}
		src := b.StdExpenseRateGeneral
		if rateType == "단순" {
			src = b.SimpleExpenseRateGeneral
		}
		if src != nil {
			expenseRate = *src / 100
		}
	}
	businessIncome := max(int64(float64(rev)*(1-expenseRate)), 0)
	incomeDeduction := sumDeductions(res.Deductions, "소득공제")
	taxable := max(businessIncome-incomeDeduction, 0)
	rate, progressive, calculated := applyRate(taxable)
	credit := sumDeductions(res.Deductions, "세액공제")
	determined := max(calculated-credit, 0)
	prepaid := sumDeductions(res.Deductions, "기납부세액")
	final := determined - prepaid

	ratePct := math.Round(rate * 100)
	expensePct := math.Round(expenseRate*1000) / 10

	steps := []tax.CalcStep{
		step("수입금액", rev, ""),
		step(fmt.Sprintf("(-) 필요경비 (%s경비율 %.1f%%)", rateType, expensePct), rev-businessIncome, "-"),
		step("= 사업소득금액", businessIncome, "="),
		step("(-) 소득공제", incomeDeduction, "-"),
		step("= 과세표준", taxable, "="),
		{Label: fmt.Sprintf("× 세율 (%d%%)", int(ratePct)), Op: "×"},
		step("(-) 누진공제", progressive, "-"),
		step("= 산출세액", calculated, "="),
		step("(-) 세액공제", credit, "-"),
		step("= 결정세액", determined, "="),
		step("(-) 기납부세액", prepaid, "-"),
		step("최종 납부할 세액", final, "="),
	}
	for _, i := range []int{2, 4, 7, 9} {
		steps[i].Bold = true
	}
	steps[len(steps)-1].Final = true

	return tax.CalculationResult{
		TaxpayerID:      id,
		Revenue:         rev,
		ExpenseRateType: rateType,
		ExpenseRate:     expensePct,
		TaxableIncome:   taxable,
		TaxRate:         ratePct,
		DeterminedTax:   determined,
		PrepaidTax:      prepaid,
		FinalTax:        final,
		Steps:           steps,
	}
}

const industryAvgRate = 5.84

func cardAmount(usage []tax.CardUsage, category string) int64 {
	for _, u := range usage {
		if u.Category == category && u.Amount != nil {
			return *u.Amount
		}
	}
	return 0
}

func deductionMatching(ds []tax.Deduction, needles ...string) int64 {
	for _, d := range ds {
		for _, n := range needles {
			if strings.Contains(d.ItemName, n) && d.Amount != nil {
				return *d.Amount
			}
		}
	}
	return 0
}

// Analyze produces the template-based risk commentary for res.
func Analyze(id int64, res *tax.AnalysisResult) tax.AIAnalysisResult {
	var comments []tax.Comment
	score := 0

	rates := append([]tax.IncomeRate(nil), res.IncomeRateHistory...)
	sort.SliceStable(rates, func(i, j int) bool {
		return yearOf(rates[i].AttributionYear) > yearOf(rates[j].AttributionYear)
	})
	if len(rates) > 0 {
		latest := rates[0]
		rate := 0.0
		if latest.IncomeRate != nil {
			rate = *latest.IncomeRate
		}
		y := yearOf(latest.AttributionYear)
		switch {
		case rate < 0:
			score += 3
			comments = append(comments, tax.Comment{Type: "danger", Title: "소득금액 음수",
				Body: fmt.Sprintf("%d년 소득금액이 %.2f%%로 마이너스입니다. 과다 필요경비 신고 가능성이 있어 세무조사 대상이 될 수 있습니다.", y, rate)})
		case rate < industryAvgRate*0.8:
			score += 2
			comments = append(comments, tax.Comment{Type: "warning", Title: "소득률 저조",
				Body: fmt.Sprintf("%d년 신고소득률 %.2f%%로 업종평균(%.2f%%) 대비 80%% 미만입니다.", y, rate, industryAvgRate)})
		default:
			comments = append(comments, tax.Comment{Type: "success", Title: "소득률 양호",
				Body: fmt.Sprintf("%d년 신고소득률 %.2f%%로 업종평균 수준을 유지하고 있습니다.", y, rate)})
		}
		if len(rates) >= 2 {
			change := valueOf(rates[0].Revenue) - valueOf(rates[1].Revenue)
			if change > 0 {
				comments = append(comments, tax.Comment{Type: "info", Title: "매출 증가 추세",
					Body: fmt.Sprintf("전년 대비 수입금액이 %d천원 증가했습니다. 수입금액 증가에 따른 세부담 변화를 확인하세요.", change)})
			}
		}
	}

	if total := cardAmount(res.CreditCardUsage, tax.CardUsageTotal); total > 0 {
		unrelated := cardAmount(res.CreditCardUsage, "업무무관업소이용")
		if pct := float64(unrelated) / float64(total) * 100; pct > 30 {
			score += 2
			comments = append(comments, tax.Comment{Type: "warning", Title: "업무무관 신용카드 사용 多",
				Body: fmt.Sprintf("사업용 신용카드 중 업무무관 사용 비율이 %.1f%%입니다. 해당 금액은 필요경비로 인정받기 어렵습니다.", pct)})
		}
		if personal := cardAmount(res.CreditCardUsage, "개인적치료"); personal > 0 {
			comments = append(comments, tax.Comment{Type: "info", Title: "개인적 치료비 사용",
				Body: fmt.Sprintf("개인적 치료비 %d원이 사업용 카드로 결제되었습니다. 의료비 세액공제 항목으로 분류하여 신고하세요.", personal)})
		}
	}

	if pension := deductionMatching(res.Deductions, "국민연금"); pension > 0 {
		comments = append(comments, tax.Comment{Type: "success", Title: "국민연금 공제 적용",
			Body: fmt.Sprintf("국민연금 %d원 전액이 소득공제로 적용됩니다.", pension)})
	}
	if umbrella := deductionMatching(res.Deductions, "노란우산", "소기업"); umbrella > 0 {
		comments = append(comments, tax.Comment{Type: "success", Title: "노란우산공제 적용",
			Body: fmt.Sprintf("노란우산공제 %d원이 소득공제에 반영됩니다.", umbrella)})
	}

	out := tax.AIAnalysisResult{
		TaxpayerID: id,
		RiskScore:  score,
		Comments:   comments,
		Note:       "템플릿 기반 데모 분석입니다.",
	}
	switch {
	case score == 0:
		out.RiskLevel, out.RiskLabel = tax.RiskLow, "낮음"
	case score <= 2:
		out.RiskLevel, out.RiskLabel = tax.RiskMedium, "주의"
	default:
		out.RiskLevel, out.RiskLabel = tax.RiskHigh, "높음"
	}
	return out
}

func yearOf(y *int) int {
	if y == nil {
		return 0
	}
	return *y
}

func valueOf(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
