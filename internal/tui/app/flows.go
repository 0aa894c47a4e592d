package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/byetax/byetax/internal/api"
	"github.com/byetax/byetax/internal/log"
	"github.com/byetax/byetax/internal/render"
	"github.com/byetax/byetax/internal/tax"
	"github.com/byetax/byetax/internal/tui"
	"github.com/byetax/byetax/internal/tui/commands"
	"github.com/byetax/byetax/internal/tui/views"
	"github.com/byetax/byetax/internal/viewstate"
)

// handleMsg applies the results of commands and requests raised by views.
func (a *App) handleMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Auth

	case tui.ValidatedMsg:
		if msg.Token != a.model.Client.Token() {
			// Checked a credential that has since been replaced.
			return a, nil
		}
		if msg.Err != nil {
			a.model.Log.Event(log.EventAuthFailed, zap.Error(msg.Err))
			return a, a.toLogin("로그인이 만료되었습니다. 다시 로그인해 주세요.")
		}
		a.model.Profile = msg.Profile
		return a, nil

	case views.DevLoginRequestMsg:
		a.loginView.SetBusy(true)
		return a, commands.DevLoginCmd(a.model.Gate, a.model.Client, msg.Nickname)

	case views.LinkLoginRequestMsg:
		a.loginView.SetBusy(true)
		return a, commands.LinkLoginCmd(a.model.Gate, msg.Link)

	case views.KakaoLoginRequestMsg:
		return a, commands.OpenKakaoLoginCmd(a.model.Client)

	case tui.BrowserOpenedMsg:
		if msg.Err != nil {
			a.loginView.SetError("브라우저를 열 수 없습니다. 다음 주소로 접속하세요: " + msg.URL)
			return a, nil
		}
		a.loginView.SetNotice("브라우저에서 로그인한 뒤 이동된 주소를 붙여 넣으세요.")
		return a, nil

	case tui.LoginMsg:
		if msg.Err != nil {
			a.loginView.SetError("로그인 실패: " + api.Message(msg.Err))
			return a, nil
		}
		a.model.Log.Event(log.EventLogin, zap.String("nickname", msg.Nickname))
		a.model.Client = a.model.Client.WithCredential(msg.Token)
		a.model.Screen = tui.ScreenDashboard
		a.loginView = views.NewLoginModel(a.model.Width, a.model.Height)
		a.uploadView.Reset()
		return a, tea.Batch(
			a.uploadView.Init(),
			commands.ValidateCmd(a.model.Gate, a.model.Client),
			a.showToast("로그인되었습니다", tui.ToastSuccess),
		)

	// Upload and history

	case views.UploadRequestMsg:
		a.model.Log.Event(log.EventUpload, zap.String("file", msg.Path))
		return a, tea.Batch(a.uploadView.SetBusy(true), commands.UploadCmd(a.model.Client, a.model.Session, msg.Path))

	case tui.UploadedMsg:
		if a.stale(msg.Session) {
			return a, nil
		}
		if msg.Err != nil {
			if cmd, ok := a.authFailed(msg.Err); ok {
				return a, cmd
			}
			a.model.Log.Error("upload", msg.Err)
			a.uploadView.SetError("분석 실패: " + api.Message(msg.Err))
			return a, nil
		}
		a.uploadView.Reset()
		id := msg.Response.TaxpayerID
		a.model.View.ShowResult(id)
		return a, a.mountResult(a.model.Primary, id, &msg.Response.Data, &a.resultView)

	case tui.HistoryLoadedMsg:
		if a.stale(msg.Session) {
			return a, nil
		}
		if msg.Err != nil {
			if cmd, ok := a.authFailed(msg.Err); ok {
				return a, cmd
			}
			a.model.Log.Error("history", msg.Err)
			a.historyView.SetError("이력을 불러오지 못했습니다: " + api.Message(msg.Err))
			return a, nil
		}
		a.model.Log.Event(log.EventHistoryLoaded, zap.Int("count", len(msg.Cards)))
		a.historyView.SetCards(msg.Cards)
		return a, nil

	case views.OpenDetailRequestMsg:
		a.model.PendingDetail = msg.ID
		return a, commands.OpenHistoryDetailCmd(a.model.Client, a.model.Session, msg.ID)

	case tui.DetailLoadedMsg:
		return a.handleDetailLoaded(msg)

	// Panels

	case tui.CalculationLoadedMsg:
		m := a.model.MountNamed(msg.Ticket.Mount)
		applied := m != nil && render.ApplyCalculation(m, msg.Ticket, msg.Result, msg.Err)
		a.logPanel(msg.Ticket, applied, msg.Err)
		if applied {
			a.refreshViews()
		}
		return a, nil

	case tui.AIAnalysisLoadedMsg:
		m := a.model.MountNamed(msg.Ticket.Mount)
		applied := m != nil && render.ApplyAIAnalysis(m, msg.Ticket, msg.Result, msg.Err)
		a.logPanel(msg.Ticket, applied, msg.Err)
		if applied {
			a.refreshViews()
		}
		return a, nil

	// Share

	case tui.SharedLoadedMsg:
		if msg.Err != nil {
			a.model.Log.Error("share", msg.Err)
			a.sharedView.SetError("공유된 결과를 불러오지 못했습니다: " + api.Message(msg.Err))
			return a, nil
		}
		a.model.Shared.Reset()
		render.Result(msg.Result, a.model.Shared)
		a.sharedView.SetLoading(false)
		a.sharedView.GotoTop()
		return a, nil

	case tui.ShareCreatedMsg:
		if a.stale(msg.Session) {
			return a, nil
		}
		if msg.Err != nil {
			if cmd, ok := a.authFailed(msg.Err); ok {
				return a, cmd
			}
			a.model.Log.Error("share", msg.Err)
			return a, a.showToast("공유 링크를 만들지 못했습니다: "+api.Message(msg.Err), tui.ToastError)
		}
		a.model.Log.Event(log.EventShareCreated, zap.Int64("id", msg.ID))
		modal := views.NewShareModal(msg.Link, a.model.Width)
		a.shareModal = &modal
		return a, nil

	case views.CopyRequestMsg:
		return a, commands.CopyLinkCmd(a.model.Copier, msg.Link)

	case tui.CopiedMsg:
		if msg.Err != nil {
			if a.shareModal != nil {
				a.shareModal.ShowManualCopy()
			}
			return a, nil
		}
		a.shareModal = nil
		return a, a.showToast("링크가 복사되었습니다", tui.ToastSuccess)

	case views.ChannelRequestMsg:
		return a, commands.OpenChannelCmd(msg.Channel, msg.Link)

	case tui.ChannelOpenedMsg:
		if msg.Err != nil {
			if a.shareModal != nil {
				a.shareModal.SetStatus("앱을 열 수 없습니다. 링크를 복사해 주세요.")
			}
			return a, nil
		}
		return a, commands.CloseShareAfterCmd(a.model.Cfg.ShareCloseDelay())

	case tui.ShareCloseMsg, views.CloseShareRequestMsg:
		a.shareModal = nil
		return a, nil

	// Export

	case tui.ExportedMsg:
		if a.stale(msg.Session) {
			return a, nil
		}
		if msg.Err != nil {
			if cmd, ok := a.authFailed(msg.Err); ok {
				return a, cmd
			}
			a.model.Log.Error("export", msg.Err)
			alert := views.NewAlertModel("다운로드 실패", api.Message(msg.Err), a.model.Width)
			a.alert = &alert
			return a, nil
		}
		a.model.Log.Event(log.EventExport, zap.String("path", msg.Path))
		if msg.NotifyErr != nil {
			a.model.Log.Error("notify", msg.NotifyErr, zap.String("path", msg.Path))
		}
		return a, a.showToast("저장됨: "+msg.Path, tui.ToastSuccess)

	case views.AlertDismissedMsg:
		a.alert = nil
		return a, nil
	}

	// Anything else (cursor blink and the like) goes to the focused view.
	return a.forward(msg)
}

func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.model.Screen {
	case tui.ScreenLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case tui.ScreenDashboard:
		switch a.model.View.Visible() {
		case viewstate.ViewUpload:
			a.uploadView, cmd = a.uploadView.Update(msg)
		case viewstate.ViewHistoryList:
			a.historyView, cmd = a.historyView.Update(msg)
		}
	}
	return a, cmd
}

// handleDetailLoaded opens the history detail for a fetch that is still
// wanted: the list must still be showing and no newer card was opened.
func (a *App) handleDetailLoaded(msg tui.DetailLoadedMsg) (tea.Model, tea.Cmd) {
	if a.stale(msg.Session) || msg.ID != a.model.PendingDetail || a.model.View.Visible() != viewstate.ViewHistoryList {
		return a, nil
	}
	a.model.PendingDetail = 0

	if msg.Err != nil {
		if cmd, ok := a.authFailed(msg.Err); ok {
			return a, cmd
		}
		a.model.Log.Error("detail", msg.Err, zap.Int64("id", msg.ID))
		a.historyView.SetError("상세 정보를 불러오지 못했습니다: " + api.Message(msg.Err))
		return a, nil
	}

	a.model.Log.Event(log.EventDetailOpened, zap.Int64("id", msg.ID))
	a.model.View.OpenDetail(msg.ID)
	return a, a.mountResult(a.model.Detail, msg.ID, msg.Result, &a.detailView)
}

// mountResult renders res into mount for id and starts its panels.
func (a *App) mountResult(mount *render.Mount, id int64, res *tax.AnalysisResult, view *views.ResultModel) tea.Cmd {
	mount.Reset()
	mount.Bind(id)
	render.Result(res, mount)
	cmd := commands.LoadPanelsCmd(a.model.Client, mount, id)
	view.SetLoading(false)
	view.GotoTop()
	return cmd
}

func (a *App) logPanel(t render.Ticket, applied bool, err error) {
	fields := []zap.Field{
		zap.String("mount", t.Mount),
		zap.String("panel", t.Slot.Title()),
		zap.Int64("id", t.ID),
	}
	if !applied {
		a.model.Log.Debug(log.EventPanelDropped, fields...)
		return
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	a.model.Log.Event(log.EventPanelLoaded, fields...)
}

// ============================================================================
// Transitions
// ============================================================================

// switchTab activates tab and re-fetches the history list when it is
// entered.
func (a *App) switchTab(tab viewstate.Tab) tea.Cmd {
	if a.model.View.SwitchTab(tab) {
		a.historyView.SetLoading()
		return commands.LoadHistoryCmd(a.model.Client, a.model.Session)
	}
	return nil
}

// back runs the header's back action.
func (a *App) back() {
	if a.model.View.Back() == viewstate.BackCloseResult {
		a.uploadView.Reset()
	}
	a.refreshViews()
}

// startShare creates a share link for the action-bar target.
func (a *App) startShare() tea.Cmd {
	id, ok := a.model.View.TargetID()
	if !ok {
		return nil
	}
	return commands.CreateShareLinkCmd(a.model.Client, a.model.Session, a.model.Cfg.SharePageURL(), id)
}

// startExport downloads the export for the action-bar target.
func (a *App) startExport() tea.Cmd {
	id, ok := a.model.View.TargetID()
	if !ok {
		return nil
	}
	cfg := a.model.Cfg
	return tea.Batch(
		a.showToast("엑셀 파일을 내려받는 중...", tui.ToastInfo),
		commands.ExportCmd(a.model.Client, a.model.Session, id, cfg.Export.Dir, cfg.Export.Notify),
	)
}

// authFailed turns a rejected credential into a return to the login
// screen.
func (a *App) authFailed(err error) (tea.Cmd, bool) {
	if !errors.Is(err, api.ErrUnauthorized) {
		return nil, false
	}
	a.model.Log.Event(log.EventAuthFailed, zap.Error(err))
	return a.logout("로그인이 만료되었습니다. 다시 로그인해 주세요."), true
}

// logout forgets the credential and shows the login screen.
func (a *App) logout(notice string) tea.Cmd {
	if err := a.model.Gate.Logout(); err != nil {
		a.model.Log.Error("logout", err)
	}
	a.model.Log.Event(log.EventLogout)
	return a.toLogin(notice)
}

// toLogin resets the dashboard and shows the login screen. The credential
// is already gone.
func (a *App) toLogin(notice string) tea.Cmd {
	vs := a.model.View
	if vs.Shared() {
		return nil
	}
	vs.CloseResult()
	vs.CloseDetail()
	vs.SwitchTab(viewstate.TabAnalyze)

	a.model.Session++
	a.model.Profile = nil
	a.model.PendingDetail = 0
	a.model.Client = a.model.Client.WithCredential("")
	a.model.Screen = tui.ScreenLogin
	a.shareModal = nil
	a.alert = nil
	a.uploadView.Reset()
	a.historyView.SetCards(nil)
	a.refreshViews()

	a.loginView = views.NewLoginModel(a.model.Width, a.model.Height)
	a.loginView.SetNotice(notice)
	return a.loginView.Init()
}

// stale reports whether a result belongs to an earlier login session.
func (a *App) stale(sess int) bool {
	return sess != a.model.Session
}

// showToast shows text and schedules its fade and removal.
func (a *App) showToast(text string, kind tui.ToastKind) tea.Cmd {
	seq := a.model.Toast.Show(text, kind)
	return commands.ToastCmd(seq, a.model.Cfg.ToastDuration(), a.model.Cfg.ToastFade())
}
