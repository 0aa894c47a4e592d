package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/byetax/byetax/internal/history"
	"github.com/byetax/byetax/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// OpenDetailRequestMsg is sent when the user opens a history card.
type OpenDetailRequestMsg struct {
	ID int64
}

// ============================================================================
// HistoryItem
// ============================================================================

// HistoryItem implements list.Item for the history list.
type HistoryItem struct {
	card history.Card
}

// Title returns the card title.
func (i HistoryItem) Title() string {
	return i.card.Title
}

// Description returns the guide label and upload time.
func (i HistoryItem) Description() string {
	parts := make([]string, 0, 3)
	if i.card.Guide != "" {
		parts = append(parts, i.card.Guide)
	}
	if i.card.Uploaded != "" {
		parts = append(parts, i.card.Uploaded)
	}
	if i.card.Filename != "" {
		parts = append(parts, i.card.Filename)
	}
	return strings.Join(parts, " · ")
}

// FilterValue returns the value used for filtering in the list.
func (i HistoryItem) FilterValue() string {
	return i.card.String()
}

// ============================================================================
// HistoryModel
// ============================================================================

// HistoryModel is the history list of the history tab.
type HistoryModel struct {
	cards     []history.Card
	list      list.Model
	filter    textinput.Model
	filtering bool
	loading   bool
	err       string
	width     int
	height    int
}

// NewHistoryModel creates an empty history list.
func NewHistoryModel(width, height int) HistoryModel {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("#2563EB")).
		BorderForeground(lipgloss.Color("#2563EB"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("#9CA3AF"))

	l := list.New(nil, delegate, width, height)
	l.Title = "분석 이력"
	l.SetShowStatusBar(false)
	// Filtering goes through history.Filter so the CLI and the list agree.
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "이름, 연도, 안내유형"
	fi.CharLimit = 100

	m := HistoryModel{list: l, filter: fi}
	m.SetSize(width, height)
	return m
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)

	if m.filtering && isKey {
		switch key.String() {
		case tui.KeyEsc:
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		case tui.KeyEnter:
			m.filtering = false
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	if isKey {
		switch key.String() {
		case "/":
			if len(m.cards) == 0 {
				return m, nil
			}
			m.filtering = true
			return m, m.filter.Focus()
		case tui.KeyEnter:
			if item, ok := m.list.SelectedItem().(HistoryItem); ok {
				id := item.card.ID
				return m, func() tea.Msg { return OpenDetailRequestMsg{ID: id} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *HistoryModel) applyFilter() {
	cards := history.Filter(m.cards, m.filter.Value())
	items := make([]list.Item, len(cards))
	for i, c := range cards {
		items[i] = HistoryItem{card: c}
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

// SetSize resizes the list.
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.filter.Width = width - 4
}

// SetLoading shows the loading state.
func (m *HistoryModel) SetLoading() {
	m.loading = true
	m.err = ""
}

// SetCards replaces the list content.
func (m *HistoryModel) SetCards(cards []history.Card) {
	m.loading = false
	m.err = ""
	m.cards = cards
	m.applyFilter()
}

// SetError shows an inline error above the list.
func (m *HistoryModel) SetError(err string) {
	m.loading = false
	m.err = err
}

// Filtering reports whether the filter input has focus.
func (m HistoryModel) Filtering() bool { return m.filtering }

// View renders the history view.
func (m HistoryModel) View() string {
	var b strings.Builder

	if m.err != "" {
		b.WriteString(tui.ErrorStyle.Render(m.err))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading && len(m.cards) == 0:
		b.WriteString(tui.DimStyle.Render("불러오는 중..."))
	case len(m.cards) == 0 && m.err == "":
		b.WriteString(tui.TitleStyle.Render("분석 이력"))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("아직 분석한 안내문이 없습니다. 분석 탭에서 PDF를 업로드해 보세요."))
	default:
		if m.filtering || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString(tui.DimStyle.Render(fmt.Sprintf("  (%d/%d)", len(m.list.Items()), len(m.cards))))
			b.WriteString("\n")
		}
		b.WriteString(m.list.View())
	}
	return b.String()
}
