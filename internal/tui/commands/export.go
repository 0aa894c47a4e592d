package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/byetax/byetax/internal/api"
	"github.com/byetax/byetax/internal/notify"
	"github.com/byetax/byetax/internal/tui"
)

// ExportCmd downloads the Excel export for id and saves it into dir. A
// desktop notification follows when notifyUser is set; its failure is
// reported in NotifyErr, not as an export failure.
func ExportCmd(client *api.Client, sess int, id int64, dir string, notifyUser bool) tea.Cmd {
	return func() tea.Msg {
		exp, err := client.ExportExcel(context.Background(), id)
		if err != nil {
			return tui.ExportedMsg{Session: sess, Err: err}
		}
		path, err := exp.Save(dir)
		if err != nil {
			return tui.ExportedMsg{Session: sess, Err: err}
		}
		msg := tui.ExportedMsg{Session: sess, Path: path}
		if notifyUser {
			msg.NotifyErr = notify.ExportSaved(path)
		}
		return msg
	}
}

// ToastCmd drives toast seq through its faded state and then hides it.
func ToastCmd(seq int, visible, fade time.Duration) tea.Cmd {
	return tea.Sequence(
		tea.Tick(visible, func(time.Time) tea.Msg { return tui.ToastFadeMsg{Seq: seq} }),
		tea.Tick(fade, func(time.Time) tea.Msg { return tui.ToastClearMsg{Seq: seq} }),
	)
}
