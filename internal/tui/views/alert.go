package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/byetax/byetax/internal/tui"
)

// AlertDismissedMsg is sent when the alert is acknowledged.
type AlertDismissedMsg struct{}

// AlertModel is a blocking message box.
type AlertModel struct {
	title string
	body  string
	width int
}

// NewAlertModel creates an alert.
func NewAlertModel(title, body string, width int) AlertModel {
	return AlertModel{title: title, body: body, width: width}
}

// Update dismisses the alert on enter or esc.
func (m AlertModel) Update(msg tea.Msg) (AlertModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case tui.KeyEnter, tui.KeyEsc:
			return m, func() tea.Msg { return AlertDismissedMsg{} }
		}
	}
	return m, nil
}

// View renders the alert.
func (m AlertModel) View() string {
	var b strings.Builder
	b.WriteString(tui.ErrorStyle.Bold(true).Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.body)
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("Enter: 확인"))
	return tui.ModalStyle.
		Width(boxWidth(m.width, 60)).
		Render(b.String())
}
