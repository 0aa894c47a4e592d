package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/byetax/byetax/internal/api"
	"github.com/byetax/byetax/internal/render"
	"github.com/byetax/byetax/internal/tui"
)

// LoadCalculationCmd starts the calculation panel of mount. It must run on
// the update loop: it marks the slot loading and takes the ticket before
// the fetch is issued. It returns nil when mount has no calculation slot.
func LoadCalculationCmd(client *api.Client, mount *render.Mount, id int64) tea.Cmd {
	ticket, ok := mount.Begin(render.SlotCalculation)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		res, err := client.Calculate(context.Background(), id)
		return tui.CalculationLoadedMsg{Ticket: ticket, Result: res, Err: err}
	}
}

// LoadAIAnalysisCmd starts the AI panel of mount. Same contract as
// LoadCalculationCmd.
func LoadAIAnalysisCmd(client *api.Client, mount *render.Mount, id int64) tea.Cmd {
	ticket, ok := mount.Begin(render.SlotAIAnalysis)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		res, err := client.AIAnalysis(context.Background(), id)
		return tui.AIAnalysisLoadedMsg{Ticket: ticket, Result: res, Err: err}
	}
}

// LoadPanelsCmd starts both panels. They complete in no particular order.
func LoadPanelsCmd(client *api.Client, mount *render.Mount, id int64) tea.Cmd {
	return tea.Batch(
		LoadCalculationCmd(client, mount, id),
		LoadAIAnalysisCmd(client, mount, id),
	)
}
