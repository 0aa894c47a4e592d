package views

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/byetax/byetax/internal/tui"
)

// UploadRequestMsg asks to upload the PDF at Path.
type UploadRequestMsg struct {
	Path string
}

// UploadModel is the upload form of the analyze tab.
type UploadModel struct {
	input   textinput.Model
	spinner spinner.Model
	busy    bool
	err     string
	width   int
}

// NewUploadModel creates the upload form.
func NewUploadModel(width int) UploadModel {
	ti := textinput.New()
	ti.Placeholder = "~/Downloads/종합소득세_신고안내문.pdf"
	ti.CharLimit = 4096
	ti.Prompt = "PDF 경로 › "
	ti.Width = boxWidth(width, 90) - 16
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return UploadModel{input: ti, spinner: sp, width: width}
}

// Init returns the initial command for the upload view.
func (m UploadModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the upload view.
func (m UploadModel) Update(msg tea.Msg) (UploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if msg.String() == tui.KeyEnter {
			path := expandHome(strings.TrimSpace(m.input.Value()))
			if path == "" {
				return m, nil
			}
			return m, func() tea.Msg { return UploadRequestMsg{Path: path} }
		}

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = boxWidth(msg.Width, 90) - 16
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// SetBusy toggles the upload-in-progress state and returns the spinner
// command when it starts.
func (m *UploadModel) SetBusy(busy bool) tea.Cmd {
	m.busy = busy
	if !busy {
		return nil
	}
	m.err = ""
	return m.spinner.Tick
}

// SetError shows an inline error below the form.
func (m *UploadModel) SetError(err string) {
	m.busy = false
	m.err = err
}

// Reset clears the form for the next upload.
func (m *UploadModel) Reset() {
	m.busy = false
	m.err = ""
	m.input.SetValue("")
}

// Busy reports whether an upload is in flight.
func (m UploadModel) Busy() bool { return m.busy }

// View renders the upload view.
func (m UploadModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("종합소득세 신고안내문 분석"))
	b.WriteString("\n\n")
	b.WriteString("홈택스에서 내려받은 신고안내문 PDF 경로를 입력하세요.\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + " 분석 중...")
	case m.err != "":
		b.WriteString(tui.ErrorStyle.Render(m.err))
	default:
		b.WriteString(tui.DimStyle.Render("Enter: 업로드"))
	}

	return tui.BoxStyle.
		Width(boxWidth(m.width, 90)).
		Render(b.String())
}

var userHome = os.UserHomeDir

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := userHome(); err == nil {
			return home + path[1:]
		}
	}
	return path
}
