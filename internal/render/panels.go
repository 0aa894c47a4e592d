package render

import (
	"github.com/byetax/byetax/internal/tax"
)

// RefundNote annotates a negative final amount.
const RefundNote = "(환급)"

const panelErrorText = "불러오지 못했습니다. 잠시 후 다시 시도해 주세요."

// Calculation renders the step-by-step tax calculation into m.
func Calculation(res *tax.CalculationResult, m *Mount) {
	if res == nil || !m.Has(SlotCalculation) {
		return
	}
	if res.Error != "" {
		m.set(SlotCalculation, Fragment{Err: res.Error})
		return
	}

	f := Fragment{}
	for _, step := range res.Steps {
		row := Row{Cells: []Cell{plain(step.Label)}}

		switch {
		case step.IsRateMarker():
			row.Cells = append(row.Cells, rightClass(Rate(res.TaxRate), ClassRate))
		case step.Final:
			v := *step.Value
			if v < 0 {
				row.Cells = append(row.Cells, right(MoneyValue(-v)+" "+RefundNote))
				row.Class = ClassRefund
			} else {
				row.Cells = append(row.Cells, right(MoneyValue(v)))
				row.Class = ClassPayable
			}
		default:
			row.Cells = append(row.Cells, right(MoneyValue(*step.Value)))
			if step.Bold {
				row.Class = ClassEmphasis
			}
		}
		f.Rows = append(f.Rows, row)
	}
	if len(f.Rows) == 0 {
		f.Rows = []Row{placeholderRow(2, emptyText)}
	}
	m.set(SlotCalculation, f)
}

// Severity is one entry of the fixed commentary vocabulary.
type Severity struct {
	Tag   string
	Class Class
}

var severities = map[string]Severity{
	"success": {Tag: "양호", Class: ClassFavorable},
	"info":    {Tag: "참고", Class: ClassInfo},
	"warning": {Tag: "주의", Class: ClassCaution},
	"danger":  {Tag: "위험", Class: ClassDanger},
}

// SeverityOf maps a comment type to its tag and class. Unknown types are
// treated as informational.
func SeverityOf(kind string) Severity {
	if s, ok := severities[kind]; ok {
		return s
	}
	return severities["info"]
}

// riskClasses is indexed by tax.RiskLevel.Rank. Unknown levels show as
// medium.
var riskClasses = [...]Class{ClassRiskMedium, ClassRiskLow, ClassRiskMedium, ClassRiskHigh}

func riskClass(level tax.RiskLevel) Class {
	return riskClasses[level.Rank()]
}

// AIAnalysis renders the risk badge and commentary into m.
func AIAnalysis(res *tax.AIAnalysisResult, m *Mount) {
	if res == nil || !m.Has(SlotAIAnalysis) {
		return
	}
	label := res.RiskLabel
	if label == "" {
		label = string(res.RiskLevel)
	}
	f := Fragment{
		Badge: &Badge{Text: label, Class: riskClass(res.RiskLevel)},
		Note:  res.Note,
	}
	for _, c := range res.Comments {
		s := SeverityOf(c.Type)
		f.Comments = append(f.Comments, Comment{Tag: s.Tag, Class: s.Class, Title: c.Title, Body: c.Body})
	}
	if len(f.Comments) == 0 {
		f.Rows = []Row{placeholderRow(1, "분석 코멘트가 없습니다.")}
	}
	m.set(SlotAIAnalysis, f)
}

// ApplyCalculation writes a calculation result if t is still current.
// It reports whether anything was written.
func ApplyCalculation(m *Mount, t Ticket, res *tax.CalculationResult, err error) bool {
	if !m.Accept(t) {
		return false
	}
	if err != nil || res == nil {
		m.set(SlotCalculation, Fragment{Err: panelErrorText})
		return true
	}
	Calculation(res, m)
	return true
}

// ApplyAIAnalysis writes an AI analysis result if t is still current.
func ApplyAIAnalysis(m *Mount, t Ticket, res *tax.AIAnalysisResult, err error) bool {
	if !m.Accept(t) {
		return false
	}
	if err != nil || res == nil {
		m.set(SlotAIAnalysis, Fragment{Err: panelErrorText})
		return true
	}
	AIAnalysis(res, m)
	return true
}
