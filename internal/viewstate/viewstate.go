// Package viewstate tracks which tab and sub-view of the dashboard is
// visible, and derives the header, back action and action-bar target from it.
//
// State is owned by the UI update loop and is not safe for concurrent use.
package viewstate

// Tab is a top-level dashboard tab.
type Tab string

const (
	TabAnalyze Tab = "analyze"
	TabHistory Tab = "history"
)

// View is a visible sub-view.
type View string

const (
	ViewUpload        View = "upload"
	ViewResult        View = "result"
	ViewHistoryList   View = "history-list"
	ViewHistoryDetail View = "history-detail"
	ViewShare         View = "share"
)

// Header is the header presentation state.
type Header string

const (
	HeaderDefault Header = "default"
	HeaderResult  Header = "result"
	HeaderDetail  Header = "detail"
	HeaderShare   Header = "share"
)

// ActionContext says which entity export and share actions apply to.
type ActionContext string

const (
	ActionNone    ActionContext = ""
	ActionAnalyze ActionContext = "analyze"
	ActionHistory ActionContext = "history"
)

// BackKind identifies the handler in the back-action slot.
type BackKind int

const (
	BackNone BackKind = iota
	BackCloseResult
	BackCloseDetail
)

func (k BackKind) String() string {
	switch k {
	case BackCloseResult:
		return "close-result"
	case BackCloseDetail:
		return "close-detail"
	default:
		return "none"
	}
}

// BackAction is the single registered back handler.
type BackAction struct {
	Kind BackKind
	run  func()
}

// State is the dashboard's view state. The zero value is not usable; call New.
type State struct {
	tab   Tab
	share bool

	uploadID      int64
	detailID      int64
	resultVisible bool
	detailVisible bool

	header Header
	back   BackAction
	action ActionContext

	// OnClose is called after a result or detail view is closed, with the
	// view that was closed.
	OnClose func(View)
}

// New returns the state shown after login: analyze tab, upload form.
func New() *State {
	s := &State{tab: TabAnalyze}
	s.sync()
	return s
}

// Tab returns the active tab.
func (s *State) Tab() Tab { return s.tab }

// Header returns the header state.
func (s *State) Header() Header { return s.header }

// Action returns the action-bar context.
func (s *State) Action() ActionContext { return s.action }

// BackAction returns the registered back handler. Kind is BackNone when the
// slot is empty.
func (s *State) BackAction() BackAction { return s.back }

// UploadID returns the id of the mounted upload result, 0 if none.
func (s *State) UploadID() int64 { return s.uploadID }

// DetailID returns the id of the open history detail, 0 if none.
func (s *State) DetailID() int64 { return s.detailID }

// Shared reports whether the state is in read-only share mode.
func (s *State) Shared() bool { return s.share }

// Visible returns the sub-view currently shown.
func (s *State) Visible() View {
	if s.share {
		return ViewShare
	}
	if s.tab == TabHistory {
		if s.detailVisible {
			return ViewHistoryDetail
		}
		return ViewHistoryList
	}
	if s.resultVisible {
		return ViewResult
	}
	return ViewUpload
}

// TargetID resolves the entity id export and share actions apply to.
// ok is false when the action bar is inactive.
func (s *State) TargetID() (id int64, ok bool) {
	switch s.action {
	case ActionAnalyze:
		return s.uploadID, s.uploadID != 0
	case ActionHistory:
		return s.detailID, s.detailID != 0
	default:
		return 0, false
	}
}

// ShowResult mounts a fresh upload result on the analyze tab.
func (s *State) ShowResult(id int64) {
	if s.share {
		return
	}
	s.tab = TabAnalyze
	s.uploadID = id
	s.resultVisible = true
	s.sync()
}

// CloseResult returns the analyze tab to the upload form and clears the
// upload id.
func (s *State) CloseResult() {
	s.uploadID = 0
	s.resultVisible = false
	s.sync()
	s.closed(ViewResult)
}

// OpenDetail shows the history detail for id. The upload id is untouched.
func (s *State) OpenDetail(id int64) {
	if s.share {
		return
	}
	s.tab = TabHistory
	s.detailID = id
	s.detailVisible = true
	s.sync()
}

// CloseDetail returns the history tab to the list and clears the detail id.
func (s *State) CloseDetail() {
	s.detailID = 0
	s.detailVisible = false
	s.sync()
	s.closed(ViewHistoryDetail)
}

// SwitchTab activates tab. It reports whether the history list must be
// re-fetched, which is every time the history tab is entered.
func (s *State) SwitchTab(tab Tab) (reloadHistory bool) {
	if s.share {
		return false
	}
	s.tab = tab
	s.sync()
	return tab == TabHistory
}

// EnterShareMode switches to the exclusive read-only share view.
func (s *State) EnterShareMode() {
	s.share = true
	s.sync()
}

// Back runs the registered back handler and returns its kind. It is a
// no-op returning BackNone when the slot is empty.
func (s *State) Back() BackKind {
	b := s.back
	if b.run == nil {
		return BackNone
	}
	b.run()
	return b.Kind
}

func (s *State) closed(v View) {
	if s.OnClose != nil {
		s.OnClose(v)
	}
}

// sync derives header, back slot and action context from the visible
// sub-view. The back slot is replaced on every call.
func (s *State) sync() {
	switch s.Visible() {
	case ViewResult:
		s.header = HeaderResult
		s.back = BackAction{Kind: BackCloseResult, run: s.CloseResult}
		s.action = ActionAnalyze
	case ViewHistoryDetail:
		s.header = HeaderDetail
		s.back = BackAction{Kind: BackCloseDetail, run: s.CloseDetail}
		s.action = ActionHistory
	case ViewShare:
		s.header = HeaderShare
		s.back = BackAction{}
		s.action = ActionNone
	default:
		s.header = HeaderDefault
		s.back = BackAction{}
		s.action = ActionNone
	}
}
