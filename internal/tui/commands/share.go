package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/byetax/byetax/internal/api"
	"github.com/byetax/byetax/internal/share"
	"github.com/byetax/byetax/internal/tui"
)

// CreateShareLinkCmd issues a share token for id and builds the link on
// the share page.
func CreateShareLinkCmd(client *api.Client, sess int, pageURL string, id int64) tea.Cmd {
	return func() tea.Msg {
		tok, err := client.CreateShare(context.Background(), id)
		if err != nil {
			return tui.ShareCreatedMsg{Session: sess, ID: id, Err: err}
		}
		link, err := share.BuildURL(pageURL, tok.Token)
		return tui.ShareCreatedMsg{Session: sess, ID: id, Link: link, Err: err}
	}
}

// LoadSharedCmd fetches the analysis behind a share token. No credential
// is sent.
func LoadSharedCmd(client *api.Client, token string) tea.Cmd {
	return func() tea.Msg {
		res, err := client.GetShared(context.Background(), token)
		return tui.SharedLoadedMsg{Result: res, Err: err}
	}
}

// CopyLinkCmd puts link on the clipboard.
func CopyLinkCmd(copier *share.Copier, link string) tea.Cmd {
	return func() tea.Msg {
		if copier == nil {
			return tui.CopiedMsg{Err: share.ErrNoClipboard}
		}
		method, err := copier.Copy(link)
		return tui.CopiedMsg{Method: method, Err: err}
	}
}

// OpenChannelCmd hands link to the messenger behind ch.
func OpenChannelCmd(ch share.Channel, link string) tea.Cmd {
	return func() tea.Msg {
		uri, err := share.Intent(ch, link)
		if err == nil {
			err = share.Open(uri)
		}
		return tui.ChannelOpenedMsg{Channel: ch, Err: err}
	}
}

// CloseShareAfterCmd closes the share modal after d.
func CloseShareAfterCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tui.ShareCloseMsg{}
	})
}
