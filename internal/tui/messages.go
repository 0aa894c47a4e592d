package tui

import (
	"github.com/byetax/byetax/internal/history"
	"github.com/byetax/byetax/internal/render"
	"github.com/byetax/byetax/internal/share"
	"github.com/byetax/byetax/internal/tax"
)

// ============================================================================
// Auth Messages
// ============================================================================

// ValidatedMsg reports the outcome of the background credential check
// for Token.
type ValidatedMsg struct {
	Token   string
	Profile *tax.Profile
	Err     error
}

// LoginMsg reports a completed login. Token is already persisted.
type LoginMsg struct {
	Token    string
	Nickname string
	Err      error
}

// BrowserOpenedMsg reports that the Kakao login page was opened.
type BrowserOpenedMsg struct {
	URL string
	Err error
}

// ============================================================================
// Analysis Messages
// ============================================================================

// Results of backend calls made on behalf of the logged-in user carry the
// Model.Session they were started in. A result from an earlier session is
// dropped.

// UploadedMsg carries the analysis of a freshly uploaded PDF.
type UploadedMsg struct {
	Session  int
	Response *tax.UploadResponse
	Err      error
}

// HistoryLoadedMsg carries the history list.
type HistoryLoadedMsg struct {
	Session int
	Cards   []history.Card
	Err     error
}

// DetailLoadedMsg carries one past analysis for the detail view.
type DetailLoadedMsg struct {
	Session int
	ID      int64
	Result  *tax.AnalysisResult
	Err     error
}

// ============================================================================
// Panel Messages
// ============================================================================

// CalculationLoadedMsg carries a calculation panel result for Ticket.
type CalculationLoadedMsg struct {
	Ticket render.Ticket
	Result *tax.CalculationResult
	Err    error
}

// AIAnalysisLoadedMsg carries an AI panel result for Ticket.
type AIAnalysisLoadedMsg struct {
	Ticket render.Ticket
	Result *tax.AIAnalysisResult
	Err    error
}

// ============================================================================
// Share Messages
// ============================================================================

// ShareCreatedMsg carries a freshly created share link.
type ShareCreatedMsg struct {
	Session int
	ID      int64
	Link    string
	Err     error
}

// SharedLoadedMsg carries the analysis behind a share token.
type SharedLoadedMsg struct {
	Result *tax.AnalysisResult
	Err    error
}

// CopiedMsg reports a clipboard attempt.
type CopiedMsg struct {
	Method share.CopyMethod
	Err    error
}

// ChannelOpenedMsg reports that a messenger intent was handed to the OS.
type ChannelOpenedMsg struct {
	Channel share.Channel
	Err     error
}

// ShareCloseMsg closes the share modal.
type ShareCloseMsg struct{}

// ============================================================================
// Export Messages
// ============================================================================

// ExportedMsg reports a saved export file. NotifyErr is set when the
// desktop notification for a saved file failed.
type ExportedMsg struct {
	Session   int
	Path      string
	Err       error
	NotifyErr error
}

// ============================================================================
// UI Control Messages
// ============================================================================

// ToastFadeMsg moves toast Seq into its faded state.
type ToastFadeMsg struct {
	Seq int
}

// ToastClearMsg hides toast Seq.
type ToastClearMsg struct {
	Seq int
}

// CtrlCResetMsg resets the Ctrl+C confirmation state after timeout.
type CtrlCResetMsg struct{}
