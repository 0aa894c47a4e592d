package demo

import "github.com/byetax/byetax/internal/tax"

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }
func yr(v int) *int          { return &v }

// SampleAnalysis returns a complete analysis for a sole proprietor filing
// under the simple expense rate.
func SampleAnalysis() tax.AnalysisResult {
	return tax.AnalysisResult{
		Taxpayer: tax.Taxpayer{
			TaxYear:               yr(2024),
			Name:                  "홍길동",
			BirthDate:             "1985-03-12",
			GuideType:             "단순경비율, 일반",
			BookkeepingObligation: "간편장부대상자",
			EstimatedExpenseRate:  "단순경비율",
			PaymentExtension:      "X",
			ReligionIncome:        "X",
		},
		Businesses: []tax.Business{
			{
				BusinessRegNo:            "123-45-67890",
				BusinessName:             "길동디자인",
				IncomeTypeCode:           "부가가치세 과세",
				IndustryCode:             "940909",
				BusinessType:             "인적용역",
				BookkeepingObligation:    "간편장부대상자",
				ExpenseRateType:          "단순",
				Revenue:                  i64(42000000),
				StdExpenseRateGeneral:    f64(17.9),
				StdExpenseRateOwn:        f64(17.9),
				SimpleExpenseRateGeneral: f64(64.1),
				SimpleExpenseRateOwn:     f64(64.1),
			},
			{
				BusinessRegNo:            "123-45-67890",
				BusinessName:             "길동디자인",
				IncomeTypeCode:           "사업소득 원천징수",
				IndustryCode:             "940909",
				BusinessType:             "인적용역",
				BookkeepingObligation:    "간편장부대상자",
				ExpenseRateType:          "단순",
				Revenue:                  i64(3500000),
				StdExpenseRateGeneral:    f64(17.9),
				SimpleExpenseRateGeneral: f64(64.1),
			},
		},
		TaxHistory: []tax.TaxHistory{
			{AttributionYear: yr(2021), TotalIncome: i64(11200), IncomeDeduction: i64(3900), TaxableIncome: i64(7300), TaxRate: f64(6), CalculatedTax: i64(438), DeductionTax: i64(70), DeterminedTax: i64(368), EffectiveTaxRate: f64(3.29)},
			{AttributionYear: yr(2022), TotalIncome: i64(13800), IncomeDeduction: i64(4200), TaxableIncome: i64(9600), TaxRate: f64(6), CalculatedTax: i64(576), DeductionTax: i64(70), DeterminedTax: i64(506), EffectiveTaxRate: f64(3.67)},
			{AttributionYear: yr(2023), TotalIncome: i64(15100), IncomeDeduction: i64(5400), TaxableIncome: i64(9700), TaxRate: f64(6), CalculatedTax: i64(582), DeductionTax: i64(70), DeterminedTax: i64(512), EffectiveTaxRate: f64(3.39)},
		},
		IncomeRateHistory: []tax.IncomeRate{
			{BusinessRegNo: "123-45-67890", BusinessName: "길동디자인", AttributionYear: yr(2021), Revenue: i64(31000), NecessaryExpenses: i64(19800), Income: i64(11200), IncomeRate: f64(36.13)},
			{BusinessRegNo: "123-45-67890", BusinessName: "길동디자인", AttributionYear: yr(2022), Revenue: i64(38500), NecessaryExpenses: i64(24700), Income: i64(13800), IncomeRate: f64(35.84)},
			{BusinessRegNo: "123-45-67890", BusinessName: "길동디자인", AttributionYear: yr(2023), Revenue: i64(42000), NecessaryExpenses: i64(26900), Income: i64(15100), IncomeRate: f64(35.95)},
		},
		SGExpenses: []tax.SGExpense{
			{AnalysisYear: yr(2023), AccountCode: "811", AccountName: "복리후생비", Amount: i64(1200), CompanyRate: f64(2.86), IndustryAvgRate: f64(1.92)},
			{AnalysisYear: yr(2023), AccountCode: "813", AccountName: "접대비", Amount: i64(2100), CompanyRate: f64(5.00), IndustryAvgRate: f64(1.35)},
			{AnalysisYear: yr(2023), AccountCode: "822", AccountName: "차량유지비", Amount: i64(1800), CompanyRate: f64(4.29), IndustryAvgRate: f64(3.10)},
		},
		Deductions: []tax.Deduction{
			{Category: "소득공제", ItemName: "국민연금보험료", Amount: i64(2400000)},
			{Category: "소득공제", ItemName: "소기업소상공인공제부금(노란우산공제)", Amount: i64(3000000)},
			{Category: "세액공제", ItemName: "표준세액공제", Amount: i64(70000)},
			{Category: "기납부세액", ItemName: "중간예납세액", Amount: i64(500000)},
			{Category: "기납부세액", ItemName: "원천징수세액", Amount: i64(105000)},
			{Category: "소득공제", ItemName: "개인연금저축", Amount: i64(0)},
		},
		CreditCardUsage: []tax.CardUsage{
			{UsageYear: yr(2024), Category: tax.CardUsageTotal, Count: i64(120), Amount: i64(8400000)},
			{UsageYear: yr(2024), Category: "신변잡화구입", Count: i64(3), Amount: i64(210000)},
			{UsageYear: yr(2024), Category: "가정용품구입", Count: i64(2), Amount: i64(95000)},
			{UsageYear: yr(2024), Category: "업무무관업소이용", Count: i64(4), Amount: i64(380000)},
			{UsageYear: yr(2024), Category: "개인적치료", Count: i64(1), Amount: i64(60000)},
			{UsageYear: yr(2024), Category: "해외사용액", Count: i64(0), Amount: i64(0)},
		},
		OtherIncomes: []tax.OtherIncome{
			{IncomeType: "이자", HasData: "O"},
			{IncomeType: "배당", HasData: "X"},
			{IncomeType: "근로단일", HasData: "X"},
			{IncomeType: "근로복수", HasData: "X"},
			{IncomeType: "연금", HasData: "X"},
			{IncomeType: "기타", HasData: "O"},
		},
		PenaltyTaxes: []tax.Penalty{
			{PenaltyType: "무기장가산세", DetailType: "간편장부대상자", Amount: i64(0)},
			{PenaltyType: "지급명세서", DetailType: "미제출", Count: i64(1), Amount: i64(50000)},
			{PenaltyType: "현금영수증", DetailType: "미발급"},
			{PenaltyType: "적격증빙", DetailType: "미수취", Count: i64(0)},
		},
	}
}
