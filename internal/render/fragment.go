package render

// Slot names one display fragment inside a mount target.
type Slot int

const (
	SlotTaxpayer Slot = iota
	SlotBusinesses
	SlotTaxHistory
	SlotIncomeRates
	SlotSGExpenses
	SlotDeductions
	SlotCardUsage
	SlotOtherIncomes
	SlotPenalties
	SlotCalculation
	SlotAIAnalysis
)

// ResultSlots are the nine fragments built from an AnalysisResult.
var ResultSlots = []Slot{
	SlotTaxpayer,
	SlotBusinesses,
	SlotTaxHistory,
	SlotIncomeRates,
	SlotSGExpenses,
	SlotDeductions,
	SlotCardUsage,
	SlotOtherIncomes,
	SlotPenalties,
}

// PanelSlots are the asynchronously loaded panels.
var PanelSlots = []Slot{SlotCalculation, SlotAIAnalysis}

var slotTitles = map[Slot]string{
	SlotTaxpayer:     "기본 정보",
	SlotBusinesses:   "사업장별 수입금액",
	SlotTaxHistory:   "종합소득세 3년 추이",
	SlotIncomeRates:  "신고소득률",
	SlotSGExpenses:   "판관비 분석",
	SlotDeductions:   "공제 참고자료",
	SlotCardUsage:    "사업용 신용카드",
	SlotOtherIncomes: "타소득 자료 유무",
	SlotPenalties:    "가산세 항목",
	SlotCalculation:  "세금 계산",
	SlotAIAnalysis:   "AI 분석",
}

// Title returns the display title of the slot.
func (s Slot) Title() string {
	return slotTitles[s]
}

// Class is the semantic style of a row or cell. Drawing maps it to a style;
// tests assert on it directly.
type Class string

const (
	ClassNone        Class = ""
	ClassEmphasis    Class = "emphasis"
	ClassTotal       Class = "total"
	ClassNegative    Class = "negative"
	ClassAggregate   Class = "aggregate"
	ClassIssue       Class = "issue"
	ClassPlaceholder Class = "placeholder"
	ClassRate        Class = "rate"
	ClassRefund      Class = "refund"
	ClassPayable     Class = "payable"
	ClassPresent     Class = "present"
	ClassFavorable   Class = "favorable"
	ClassInfo        Class = "info"
	ClassCaution     Class = "caution"
	ClassDanger      Class = "danger"
	ClassRiskLow     Class = "risk-low"
	ClassRiskMedium  Class = "risk-medium"
	ClassRiskHigh    Class = "risk-high"
)

// Cell is one table cell.
type Cell struct {
	Text  string
	Class Class
	Right bool
}

// Row is one table row. A row with Span > 0 has a single cell covering
// Span columns.
type Row struct {
	Cells []Cell
	Class Class
	Span  int
}

// Bar is one entry of a proportional bar chart.
type Bar struct {
	Label   string
	Percent float64
}

// Comment is a severity-tagged commentary line.
type Comment struct {
	Tag   string
	Class Class
	Title string
	Body  string
}

// Badge is a short status label with a style class.
type Badge struct {
	Text  string
	Class Class
}

// Fragment is the rendered content of one slot.
type Fragment struct {
	Title    string
	Headers  []string
	Rows     []Row
	Bars     []Bar
	Comments []Comment
	Badge    *Badge
	Summary  string
	Note     string
	Loading  bool
	Err      string
}

// placeholderRow returns the single row shown when a list is empty.
func placeholderRow(columns int, text string) Row {
	if columns < 1 {
		columns = 1
	}
	return Row{
		Cells: []Cell{{Text: text, Class: ClassPlaceholder}},
		Class: ClassPlaceholder,
		Span:  columns,
	}
}

func right(text string) Cell {
	return Cell{Text: text, Right: true}
}

func rightClass(text string, class Class) Cell {
	return Cell{Text: text, Right: true, Class: class}
}

func plain(text string) Cell {
	return Cell{Text: text}
}
