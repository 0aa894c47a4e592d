package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/byetax/byetax/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// DevLoginRequestMsg asks for a development login.
type DevLoginRequestMsg struct {
	Nickname string
}

// LinkLoginRequestMsg submits a pasted OAuth callback link.
type LinkLoginRequestMsg struct {
	Link string
}

// KakaoLoginRequestMsg asks to open the Kakao login page.
type KakaoLoginRequestMsg struct{}

// ============================================================================
// LoginModel
// ============================================================================

const (
	fieldNickname = iota
	fieldLink
)

// LoginModel is the login screen: a development nickname form and a field
// for the link the Kakao flow redirects to.
type LoginModel struct {
	inputs []textinput.Model
	focus  int
	busy   bool
	err    string
	notice string
	width  int
	height int

	// Ctrl+C confirmation state
	ctrlCPending bool
}

// NewLoginModel creates the login screen.
func NewLoginModel(width, height int) LoginModel {
	nick := textinput.New()
	nick.Placeholder = "닉네임"
	nick.CharLimit = 40
	nick.Prompt = "개발용 로그인 › "
	nick.Focus()

	link := textinput.New()
	link.Placeholder = "http://localhost:8000/?token=..."
	link.CharLimit = 2000
	link.Prompt = "로그인 링크 › "

	m := LoginModel{
		inputs: []textinput.Model{nick, link},
		width:  width,
		height: height,
	}
	m.resize()
	return m
}

// Init returns the initial command for the login view.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login view.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case tui.KeyTab, tui.KeyUp, tui.KeyDown:
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			return m, m.inputs[m.focus].Focus()

		case "ctrl+k":
			return m, func() tea.Msg { return KakaoLoginRequestMsg{} }

		case tui.KeyEnter:
			value := strings.TrimSpace(m.inputs[m.focus].Value())
			if value == "" {
				return m, nil
			}
			if m.focus == fieldNickname {
				return m, func() tea.Msg { return DevLoginRequestMsg{Nickname: value} }
			}
			return m, func() tea.Msg { return LinkLoginRequestMsg{Link: value} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) resize() {
	for i := range m.inputs {
		m.inputs[i].Width = boxWidth(m.width, 70) - 24
	}
}

// SetBusy toggles the in-flight state.
func (m *LoginModel) SetBusy(busy bool) {
	m.busy = busy
	if busy {
		m.err = ""
	}
}

// SetError shows err under the form and ends the in-flight state.
func (m *LoginModel) SetError(err string) {
	m.busy = false
	m.err = err
}

// SetNotice shows an informational line, e.g. after the browser opened.
func (m *LoginModel) SetNotice(s string) {
	m.notice = s
}

// SetCtrlCPending sets the Ctrl+C pending state for display.
func (m *LoginModel) SetCtrlCPending(pending bool) {
	m.ctrlCPending = pending
}

// View renders the login view.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(tui.LogoStyle.Render("ByeTax"))
	b.WriteString("  ")
	b.WriteString(tui.TitleStyle.Render("종합소득세 안내문 분석"))
	b.WriteString("\n\n")
	b.WriteString("로그인이 필요합니다.\n\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(tui.DimStyle.Render("로그인 중..."))
		b.WriteString("\n")
	case m.err != "":
		b.WriteString(tui.ErrorStyle.Render(m.err))
		b.WriteString("\n")
	case m.notice != "":
		b.WriteString(tui.SuccessStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	footer := tui.DimStyle.Render("Enter: 로그인 · Tab: 입력 전환 · Ctrl+K: 카카오 로그인") + " · " + ExitHint(m.ctrlCPending)
	b.WriteString(footer)

	return tui.BoxStyle.
		Width(boxWidth(m.width, 80)).
		Render(b.String())
}
