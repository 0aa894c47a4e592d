package tui

import (
	"testing"

	"github.com/byetax/byetax/internal/render"
	"github.com/byetax/byetax/internal/session"
	"github.com/byetax/byetax/internal/viewstate"
)

func TestNewModelPicksScreen(t *testing.T) {
	cases := map[session.Mode]Screen{
		session.ModeLogin:      ScreenLogin,
		session.ModeOptimistic: ScreenDashboard,
		session.ModeShare:      ScreenShared,
	}
	for mode, want := range cases {
		m := NewModel(Deps{}, session.Resolution{Mode: mode})
		if m.Screen != want {
			t.Errorf("mode %v: screen = %v, want %v", mode, m.Screen, want)
		}
	}

	m := NewModel(Deps{}, session.Resolution{Mode: session.ModeShare})
	if !m.View.Shared() {
		t.Error("share mode should put the view state in share mode")
	}
	if m.ActiveMount() != m.Shared {
		t.Error("share mode should show the shared mount")
	}
}

func TestClosingResultResetsPrimaryMount(t *testing.T) {
	m := NewModel(Deps{}, session.Resolution{Mode: session.ModeOptimistic})
	m.View.ShowResult(7)
	m.Primary.Bind(7)
	ticket, ok := m.Primary.Begin(render.SlotCalculation)
	if !ok {
		t.Fatal("primary mount should carry the calculation panel")
	}
	if m.ActiveMount() != m.Primary {
		t.Fatal("result view should show the primary mount")
	}

	if kind := m.View.Back(); kind == viewstate.BackNone {
		t.Fatal("back should close the result")
	}
	if m.Primary.Accept(ticket) {
		t.Error("ticket issued before close should be rejected")
	}
	if !m.Primary.Empty() {
		t.Error("primary mount should be empty after close")
	}
}

func TestMountNamed(t *testing.T) {
	m := NewModel(Deps{}, session.Resolution{})
	if m.MountNamed(render.MountPrimary) != m.Primary {
		t.Error("primary")
	}
	if m.MountNamed(render.MountDetail) != m.Detail {
		t.Error("detail")
	}
	if m.MountNamed(render.MountShared) != nil {
		t.Error("shared mount carries no panels")
	}
}
