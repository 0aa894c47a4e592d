package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/byetax/byetax/internal/render"
	"github.com/byetax/byetax/internal/tui"
)

// ResultModel scrolls the drawn content of one mount target. The mount is
// the only state; Refresh redraws it after anything was written into it.
type ResultModel struct {
	mount    *render.Mount
	viewport viewport.Model
	loading  bool
	err      string
	width    int
	height   int
}

// NewResultModel creates a result view over mount.
func NewResultModel(mount *render.Mount, width, height int) ResultModel {
	m := ResultModel{
		mount:    mount,
		viewport: viewport.New(width, height),
		width:    width,
		height:   height,
	}
	m.Refresh()
	return m
}

// Update handles scrolling.
func (m ResultModel) Update(msg tea.Msg) (ResultModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetSize resizes the viewport and redraws.
func (m *ResultModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Refresh()
}

// SetLoading shows a loading line instead of the mount.
func (m *ResultModel) SetLoading(loading bool) {
	m.loading = loading
	if loading {
		m.err = ""
	}
	m.Refresh()
}

// SetError shows err instead of the mount.
func (m *ResultModel) SetError(err string) {
	m.loading = false
	m.err = err
	m.Refresh()
}

// Refresh redraws the mount into the viewport, keeping the scroll offset.
func (m *ResultModel) Refresh() {
	var content string
	switch {
	case m.loading:
		content = tui.DimStyle.Render("불러오는 중...")
	case m.err != "":
		content = tui.ErrorStyle.Render(m.err)
	case m.mount == nil || m.mount.Empty():
		content = tui.DimStyle.Render("표시할 결과가 없습니다.")
	default:
		content = m.mount.View(m.width)
	}
	offset := m.viewport.YOffset
	m.viewport.SetContent(strings.TrimRight(content, "\n"))
	m.viewport.SetYOffset(offset)
}

// GotoTop scrolls back to the first line.
func (m *ResultModel) GotoTop() {
	m.viewport.GotoTop()
}

// View renders the viewport.
func (m ResultModel) View() string {
	return m.viewport.View()
}
