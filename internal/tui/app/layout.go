package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/byetax/byetax/internal/tui"
	"github.com/byetax/byetax/internal/tui/views"
	"github.com/byetax/byetax/internal/viewstate"
)

// renderDashboard draws header, tab bar, the visible sub-view, action bar,
// toast and footer.
func (a *App) renderDashboard() string {
	vs := a.model.View

	var body string
	switch vs.Visible() {
	case viewstate.ViewUpload:
		body = lipgloss.Place(a.model.Width, a.bodyHeight(), lipgloss.Center, lipgloss.Top, a.uploadView.View())
	case viewstate.ViewResult:
		body = a.resultView.View()
	case viewstate.ViewHistoryList:
		body = a.historyView.View()
	case viewstate.ViewHistoryDetail:
		body = a.detailView.View()
	}
	body = lipgloss.NewStyle().Height(a.bodyHeight()).MaxHeight(a.bodyHeight()).Render(body)

	return strings.Join([]string{
		a.renderHeader(),
		a.renderTabBar(vs.Tab()),
		body,
		a.renderActionBar(),
		a.model.Toast.Render(),
		a.renderFooter(),
	}, "\n")
}

// renderShared draws the read-only share screen. It has no tabs, no back
// action and no action bar.
func (a *App) renderShared() string {
	body := lipgloss.NewStyle().Height(a.bodyHeight() + 2).MaxHeight(a.bodyHeight() + 2).Render(a.sharedView.View())
	return strings.Join([]string{
		a.renderHeader(),
		"",
		body,
		a.model.Toast.Render(),
		a.renderFooter(),
	}, "\n")
}

// renderHeader draws the header for the current header state.
func (a *App) renderHeader() string {
	var left string
	switch a.model.View.Header() {
	case viewstate.HeaderShare:
		return tui.TitleStyle.Render("공유된 종합소득세 분석 결과")
	case viewstate.HeaderResult:
		left = tui.DimStyle.Render("← esc 새 분석") + "  " + tui.TitleStyle.Render("분석 결과")
	case viewstate.HeaderDetail:
		left = tui.DimStyle.Render("← esc 목록") + "  " + tui.TitleStyle.Render("분석 이력 상세")
	default:
		left = tui.LogoStyle.Render("ByeTax")
	}

	right := a.renderUser()
	gap := a.model.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderUser draws the user area. It is empty until validation succeeds.
func (a *App) renderUser() string {
	p := a.model.Profile
	if p == nil {
		return tui.DimStyle.Render("확인 중...")
	}
	if p.Email != "" {
		return p.Nickname + tui.DimStyle.Render(" "+p.Email)
	}
	return p.Nickname
}

// renderTabBar renders the tab bar with the active tab highlighted.
func (a *App) renderTabBar(activeTab viewstate.Tab) string {
	tabs := []struct {
		name string
		tab  viewstate.Tab
	}{
		{"분석하기", viewstate.TabAnalyze},
		{"분석 이력", viewstate.TabHistory},
	}

	var rendered []string
	for _, t := range tabs {
		if t.tab == activeTab {
			rendered = append(rendered, tui.ActiveTabStyle.Render(t.name))
		} else {
			rendered = append(rendered, tui.InactiveTabStyle.Render(t.name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderActionBar shows share and export while a result is on screen.
func (a *App) renderActionBar() string {
	id, ok := a.model.View.TargetID()
	if !ok {
		return ""
	}
	return tui.StatusBarStyle.Render(fmt.Sprintf("#%d  s: 공유하기 · e: 엑셀 다운로드", id))
}

func (a *App) renderFooter() string {
	var hints string
	switch a.model.View.Visible() {
	case viewstate.ViewShare:
		hints = "↑/↓: 스크롤"
	case viewstate.ViewUpload:
		hints = "Tab: 탭 전환 · Ctrl+L: 로그아웃"
	case viewstate.ViewHistoryList:
		hints = "Enter: 열기 · /: 검색 · r: 새로고침 · Tab: 탭 전환"
	default:
		hints = "↑/↓: 스크롤 · Esc: 뒤로 · Tab: 탭 전환"
	}
	return tui.DimStyle.Render(hints) + " · " + views.ExitHint(a.model.CtrlCPending)
}
