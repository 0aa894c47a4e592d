// Package app provides the main TUI application that wires all views together.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/byetax/byetax/internal/log"
	"github.com/byetax/byetax/internal/session"
	"github.com/byetax/byetax/internal/tui"
	"github.com/byetax/byetax/internal/tui/commands"
	"github.com/byetax/byetax/internal/tui/views"
	"github.com/byetax/byetax/internal/viewstate"
)

// chromeHeight is the number of lines taken by header, tab bar, action
// bar, toast and footer around the body.
const chromeHeight = 7

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model

	// View models
	loginView   views.LoginModel
	uploadView  views.UploadModel
	resultView  views.ResultModel
	historyView views.HistoryModel
	detailView  views.ResultModel
	sharedView  views.ResultModel

	// Modals, nil when closed
	shareModal *views.ShareModal
	alert      *views.AlertModel
}

// New creates a new App for the resolved session.
func New(deps tui.Deps, res session.Resolution) *App {
	if deps.Client != nil && res.Credential != "" {
		deps.Client = deps.Client.WithCredential(res.Credential)
	}
	model := tui.NewModel(deps, res)

	a := &App{model: model}
	a.loginView = views.NewLoginModel(model.Width, model.Height)
	a.uploadView = views.NewUploadModel(model.Width)
	a.resultView = views.NewResultModel(model.Primary, model.Width, a.bodyHeight())
	a.historyView = views.NewHistoryModel(model.Width, a.bodyHeight())
	a.detailView = views.NewResultModel(model.Detail, model.Width, a.bodyHeight())
	a.sharedView = views.NewResultModel(model.Shared, model.Width, a.bodyHeight())
	return a
}

// Model exposes the shared state. Used by tests.
func (a *App) Model() *tui.Model { return a.model }

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	a.model.Log.Event(log.EventStartup, zap.String("mode", a.model.Resolution.Mode.String()))

	switch a.model.Screen {
	case tui.ScreenShared:
		a.sharedView.SetLoading(true)
		a.model.Log.Event(log.EventShareOpened)
		return commands.LoadSharedCmd(a.model.Client, a.model.Resolution.ShareToken)
	case tui.ScreenDashboard:
		// Optimistic: the dashboard is already up while the credential
		// is checked in the background.
		return tea.Batch(a.uploadView.Init(), commands.ValidateCmd(a.model.Gate, a.model.Client))
	default:
		return a.loginView.Init()
	}
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		a.resize()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.model.CtrlCPending {
				// Second press within timeout - exit
				return a, tea.Quit
			}
			// First press - set pending and start timeout
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(t time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}
		return a.handleKey(msg)

	case tui.CtrlCResetMsg:
		// Reset Ctrl+C confirmation state after timeout
		a.model.CtrlCPending = false
		return a, nil

	case tui.ToastFadeMsg:
		a.model.Toast.Fade(msg.Seq)
		return a, nil

	case tui.ToastClearMsg:
		a.model.Toast.Clear(msg.Seq)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd
	}

	return a.handleMsg(msg)
}

// handleKey routes a key press to the open modal or the active screen.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if a.alert != nil {
		*a.alert, cmd = a.alert.Update(msg)
		return a, cmd
	}
	if a.shareModal != nil {
		*a.shareModal, cmd = a.shareModal.Update(msg)
		return a, cmd
	}

	switch a.model.Screen {
	case tui.ScreenLogin:
		a.loginView, cmd = a.loginView.Update(msg)
		return a, cmd
	case tui.ScreenShared:
		a.sharedView, cmd = a.sharedView.Update(msg)
		return a, cmd
	}
	return a.updateDashboard(msg)
}

// updateDashboard handles keys on the tabbed dashboard.
func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := tui.DefaultKeyMap
	vs := a.model.View
	filtering := vs.Visible() == viewstate.ViewHistoryList && a.historyView.Filtering()
	typing := vs.Visible() == viewstate.ViewUpload || filtering

	switch {
	case key.Matches(msg, km.Tab) && !filtering:
		next := viewstate.TabHistory
		if vs.Tab() == viewstate.TabHistory {
			next = viewstate.TabAnalyze
		}
		return a, a.switchTab(next)

	case key.Matches(msg, km.Logout):
		return a, a.logout("로그아웃되었습니다")

	case key.Matches(msg, km.Escape) && !filtering && vs.BackAction().Kind != viewstate.BackNone:
		a.back()
		return a, nil
	}

	if !typing {
		switch {
		case key.Matches(msg, km.Share):
			return a, a.startShare()
		case key.Matches(msg, km.Export):
			return a, a.startExport()
		case key.Matches(msg, km.Reload) && vs.Visible() == viewstate.ViewHistoryList:
			a.historyView.SetLoading()
			return a, commands.LoadHistoryCmd(a.model.Client, a.model.Session)
		}
	}

	var cmd tea.Cmd
	switch vs.Visible() {
	case viewstate.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case viewstate.ViewResult:
		a.resultView, cmd = a.resultView.Update(msg)
	case viewstate.ViewHistoryList:
		a.historyView, cmd = a.historyView.Update(msg)
	case viewstate.ViewHistoryDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	}
	return a, cmd
}

// ============================================================================
// Layout
// ============================================================================

func (a *App) bodyHeight() int {
	h := a.model.Height - chromeHeight
	if h < 5 {
		h = 5
	}
	return h
}

func (a *App) resize() {
	w, h := a.model.Width, a.bodyHeight()
	size := tea.WindowSizeMsg{Width: a.model.Width, Height: a.model.Height}
	a.loginView, _ = a.loginView.Update(size)
	a.uploadView, _ = a.uploadView.Update(size)
	a.resultView.SetSize(w, h)
	a.historyView.SetSize(w, h)
	a.detailView.SetSize(w, h)
	a.sharedView.SetSize(w, h)
}

// refreshViews redraws every mount-backed view.
func (a *App) refreshViews() {
	a.resultView.Refresh()
	a.detailView.Refresh()
	a.sharedView.Refresh()
}

// View renders the current application state.
func (a *App) View() string {
	a.loginView.SetCtrlCPending(a.model.CtrlCPending)

	if a.alert != nil {
		return a.centerContent(a.alert.View())
	}
	if a.shareModal != nil {
		return a.centerContent(a.shareModal.View())
	}

	switch a.model.Screen {
	case tui.ScreenLogin:
		return a.centerContent(a.loginView.View())
	case tui.ScreenShared:
		return a.renderShared()
	}
	return a.renderDashboard()
}

// centerContent centers content within the terminal dimensions.
func (a *App) centerContent(content string) string {
	return lipgloss.Place(
		a.model.Width,
		a.model.Height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
