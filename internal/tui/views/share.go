package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/byetax/byetax/internal/share"
	"github.com/byetax/byetax/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// CopyRequestMsg asks to copy the share link.
type CopyRequestMsg struct {
	Link string
}

// ChannelRequestMsg asks to open the share link in a messenger.
type ChannelRequestMsg struct {
	Channel share.Channel
	Link    string
}

// CloseShareRequestMsg dismisses the share modal.
type CloseShareRequestMsg struct{}

// ============================================================================
// ShareModal
// ============================================================================

// ShareModal shows a created share link and the ways to send it.
type ShareModal struct {
	link   string
	status string
	manual bool
	width  int
}

// NewShareModal creates the modal for link.
func NewShareModal(link string, width int) ShareModal {
	return ShareModal{link: link, width: width}
}

// Update handles messages for the share modal.
func (m ShareModal) Update(msg tea.Msg) (ShareModal, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	link := m.link
	switch {
	case key.Matches(k, tui.DefaultKeyMap.Copy):
		return m, func() tea.Msg { return CopyRequestMsg{Link: link} }
	case key.Matches(k, tui.DefaultKeyMap.Kakao):
		return m, func() tea.Msg { return ChannelRequestMsg{Channel: share.ChannelKakao, Link: link} }
	case key.Matches(k, tui.DefaultKeyMap.SMS):
		return m, func() tea.Msg { return ChannelRequestMsg{Channel: share.ChannelSMS, Link: link} }
	case key.Matches(k, tui.DefaultKeyMap.Escape), k.String() == "q":
		return m, func() tea.Msg { return CloseShareRequestMsg{} }
	}
	return m, nil
}

// Link returns the link shown in the modal.
func (m ShareModal) Link() string { return m.link }

// SetStatus shows a line under the link.
func (m *ShareModal) SetStatus(s string) {
	m.status = s
}

// ShowManualCopy marks the link for manual copying after the clipboard
// could not be reached.
func (m *ShareModal) ShowManualCopy() {
	m.manual = true
	m.status = "클립보드를 사용할 수 없습니다. 아래 링크를 직접 복사해 주세요."
}

// View renders the share modal.
func (m ShareModal) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("분석 결과 공유"))
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("링크는 7일 동안 유효합니다."))
	b.WriteString("\n\n")
	if m.manual {
		b.WriteString(tui.SelectedStyle.Render(m.link))
	} else {
		b.WriteString(m.link)
	}
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(tui.WarningStyle.Render(m.status))
		b.WriteString("\n\n")
	}
	b.WriteString(tui.DimStyle.Render("c: 링크 복사 · k: 카카오톡 · m: 문자 · esc: 닫기"))

	return tui.ModalStyle.
		Width(boxWidth(m.width, 80)).
		Render(b.String())
}
