// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/byetax/byetax/internal/api"
	"github.com/byetax/byetax/internal/session"
	"github.com/byetax/byetax/internal/share"
	"github.com/byetax/byetax/internal/tui"
)

// ErrNoToken is returned when a pasted login link carries no token.
var ErrNoToken = errors.New("login link has no token")

// ValidateCmd checks the client's credential against /auth/me. The gate
// clears the stored credential on failure if it has not changed since.
func ValidateCmd(gate *session.Gate, client *api.Client) tea.Cmd {
	token := client.Token()
	return func() tea.Msg {
		profile, err := gate.Validate(context.Background(), client)
		return tui.ValidatedMsg{Token: token, Profile: profile, Err: err}
	}
}

// DevLoginCmd logs in through the development endpoint and stores the
// issued token.
func DevLoginCmd(gate *session.Gate, client *api.Client, nickname string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.DevLogin(context.Background(), nickname)
		if err != nil {
			return tui.LoginMsg{Err: err}
		}
		if err := gate.Login(resp.AccessToken); err != nil {
			return tui.LoginMsg{Err: err}
		}
		return tui.LoginMsg{Token: resp.AccessToken, Nickname: resp.Nickname}
	}
}

// LinkLoginCmd accepts the callback link the OAuth flow redirected to. The
// token goes through the same persist-and-strip path as a launch link.
func LinkLoginCmd(gate *session.Gate, link string) tea.Cmd {
	return func() tea.Msg {
		nav, err := session.ParseNavigation(link, "", "")
		if err != nil {
			return tui.LoginMsg{Err: err}
		}
		if nav.Token == "" {
			return tui.LoginMsg{Err: ErrNoToken}
		}
		token := nav.Token
		if _, err := gate.Resolve(nav); err != nil {
			return tui.LoginMsg{Err: fmt.Errorf("storing login: %w", err)}
		}
		return tui.LoginMsg{Token: token}
	}
}

// OpenKakaoLoginCmd opens the OAuth start page in the browser.
func OpenKakaoLoginCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		u := client.KakaoLoginURL()
		return tui.BrowserOpenedMsg{URL: u, Err: share.Open(u)}
	}
}
