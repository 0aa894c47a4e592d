package tax

// CalcStep is one line of the step-by-step tax calculation.
// A step without a value is a rate marker; the final step carries the
// signed amount due (negative means refund).
type CalcStep struct {
	Label string `json:"label"`
	Value *int64 `json:"value"`
	Op    string `json:"op"`
	Bold  bool   `json:"bold,omitempty"`
	Final bool   `json:"final,omitempty"`
}

// IsRateMarker reports whether the step has no numeric value.
func (s CalcStep) IsRateMarker() bool {
	return s.Value == nil
}

// CalculationResult is the response of GET /taxpayers/{id}/calculate.
// Error is set when the calculation engine reports a domain-level failure.
type CalculationResult struct {
	TaxpayerID      int64      `json:"taxpayer_id"`
	Revenue         int64      `json:"revenue"`
	ExpenseRateType string     `json:"expense_rate_type"`
	ExpenseRate     float64    `json:"expense_rate"`
	TaxableIncome   int64      `json:"taxable_income"`
	TaxRate         float64    `json:"tax_rate"`
	DeterminedTax   int64      `json:"determined_tax"`
	PrepaidTax      int64      `json:"prepaid_tax"`
	FinalTax        int64      `json:"final_tax"`
	Steps           []CalcStep `json:"steps"`
	Error           string     `json:"error,omitempty"`
}

// RiskLevel is the ordinal AI risk level.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Rank orders risk levels; unknown levels rank below low.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

// Comment is one AI commentary item. Type is one of success, info,
// warning or danger.
type Comment struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AIAnalysisResult is the response of GET /taxpayers/{id}/ai-analysis.
type AIAnalysisResult struct {
	TaxpayerID int64     `json:"taxpayer_id"`
	RiskLevel  RiskLevel `json:"risk_level"`
	RiskLabel  string    `json:"risk_label"`
	RiskScore  int       `json:"risk_score"`
	Comments   []Comment `json:"comments"`
	Note       string    `json:"note,omitempty"`
}

// HistoryEntry is the summary projection of a past analysis.
type HistoryEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TaxYear     *int   `json:"tax_year"`
	GuideType   string `json:"guide_type"`
	UploadedAt  string `json:"uploaded_at"`
	PDFFilename string `json:"pdf_filename"`
}

// Profile is the authenticated user returned by GET /auth/me.
type Profile struct {
	ID           int64  `json:"id"`
	KakaoID      string `json:"kakao_id,omitempty"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profile_image,omitempty"`
	Email        string `json:"email,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// UploadResponse is the response of POST /upload.
type UploadResponse struct {
	Status     string         `json:"status"`
	TaxpayerID int64          `json:"taxpayer_id"`
	Parsed     map[string]int `json:"parsed,omitempty"`
	Data       AnalysisResult `json:"data"`
}

// ShareToken is the response of POST /taxpayers/{id}/share.
type ShareToken struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// LoginResponse is the response of POST /auth/dev-login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Nickname    string `json:"nickname"`
}
