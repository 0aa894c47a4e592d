package commands

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/byetax/byetax/internal/api"
	"github.com/byetax/byetax/internal/history"
	"github.com/byetax/byetax/internal/tui"
)

// ErrNotPDF is returned for an upload that is not a .pdf file.
var ErrNotPDF = errors.New("PDF 파일만 업로드할 수 있습니다")

// UploadCmd sends a PDF for analysis in session sess.
func UploadCmd(client *api.Client, sess int, path string) tea.Cmd {
	return func() tea.Msg {
		if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
			return tui.UploadedMsg{Session: sess, Err: ErrNotPDF}
		}
		resp, err := client.Upload(context.Background(), path)
		return tui.UploadedMsg{Session: sess, Response: resp, Err: err}
	}
}

// LoadHistoryCmd fetches the history list.
func LoadHistoryCmd(client *api.Client, sess int) tea.Cmd {
	return func() tea.Msg {
		entries, err := client.ListTaxpayers(context.Background())
		if err != nil {
			return tui.HistoryLoadedMsg{Session: sess, Err: err}
		}
		return tui.HistoryLoadedMsg{Session: sess, Cards: history.Cards(entries)}
	}
}

// OpenHistoryDetailCmd fetches one past analysis.
func OpenHistoryDetailCmd(client *api.Client, sess int, id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := client.GetTaxpayer(context.Background(), id)
		return tui.DetailLoadedMsg{Session: sess, ID: id, Result: res, Err: err}
	}
}
