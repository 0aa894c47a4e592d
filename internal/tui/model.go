// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/byetax/byetax/internal/api"
	"github.com/byetax/byetax/internal/config"
	"github.com/byetax/byetax/internal/log"
	"github.com/byetax/byetax/internal/render"
	"github.com/byetax/byetax/internal/session"
	"github.com/byetax/byetax/internal/share"
	"github.com/byetax/byetax/internal/tax"
	"github.com/byetax/byetax/internal/viewstate"
)

// Screen is the top-level screen of the TUI.
type Screen int

const (
	ScreenLogin Screen = iota // No credential
	ScreenDashboard
	ScreenShared
)

// Deps are the collaborators the TUI needs. Everything except Cfg is
// optional in tests.
type Deps struct {
	Cfg    *config.Config
	Client *api.Client
	Gate   *session.Gate
	Log    *log.Logger
	Copier *share.Copier
}

// Model is the main TUI model that holds all application state.
type Model struct {
	// State management
	Screen     Screen
	View       *viewstate.State
	Resolution session.Resolution

	// Collaborators
	Cfg    *config.Config
	Client *api.Client
	Gate   *session.Gate
	Log    *log.Logger
	Copier *share.Copier

	// Mount targets. Primary backs the analyze tab, Detail the history
	// detail view, Shared the read-only share screen.
	Primary *render.Mount
	Detail  *render.Mount
	Shared  *render.Mount

	// User area, filled once validation succeeds.
	Profile *tax.Profile

	// Session counts logins. Returning to the login screen advances it so
	// results of calls made for the previous user are dropped.
	Session int

	// Detail fetch in flight, 0 if none.
	PendingDetail int64

	// Transient notification
	Toast Toast

	Spinner spinner.Model

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool // True when waiting for second Ctrl+C press
}

// NewModel creates a new Model for the resolved session.
func NewModel(deps Deps, res session.Resolution) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	logger := deps.Log
	if logger == nil {
		logger = log.Nop()
	}
	cfg := deps.Cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		View:       viewstate.New(),
		Resolution: res,
		Cfg:        cfg,
		Client:     deps.Client,
		Gate:       deps.Gate,
		Log:        logger,
		Copier:     deps.Copier,
		Primary:    render.NewPrimaryMount(),
		Detail:     render.NewDetailMount(),
		Shared:     render.NewSharedMount(),
		Spinner:    sp,

		// Default dimensions (will be updated on WindowSizeMsg)
		Width:  80,
		Height: 24,
	}

	switch res.Mode {
	case session.ModeShare:
		m.Screen = ScreenShared
		m.View.EnterShareMode()
	case session.ModeOptimistic:
		m.Screen = ScreenDashboard
	default:
		m.Screen = ScreenLogin
	}

	// Closing a view empties its mount, which also invalidates panel
	// loads still in flight for it.
	m.View.OnClose = func(v viewstate.View) {
		switch v {
		case viewstate.ViewResult:
			m.Primary.Reset()
		case viewstate.ViewHistoryDetail:
			m.Detail.Reset()
		}
	}
	return m
}

// MountNamed returns the panel-carrying mount with the given name.
func (m *Model) MountNamed(name string) *render.Mount {
	switch name {
	case render.MountPrimary:
		return m.Primary
	case render.MountDetail:
		return m.Detail
	}
	return nil
}

// ActiveMount returns the mount that backs the visible view, or nil.
func (m *Model) ActiveMount() *render.Mount {
	switch m.View.Visible() {
	case viewstate.ViewResult:
		return m.Primary
	case viewstate.ViewHistoryDetail:
		return m.Detail
	case viewstate.ViewShare:
		return m.Shared
	}
	return nil
}
