// analyze.go implements the "byetax upload", "history" and "show" commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/byetax/byetax/internal/api"
	"github.com/byetax/byetax/internal/history"
	"github.com/byetax/byetax/internal/log"
	"github.com/byetax/byetax/internal/render"
	"github.com/byetax/byetax/internal/tax"
	"github.com/byetax/byetax/internal/ui"
)

const defaultWidth = 120

const (
	stepCalculation = "calculation"
	stepAIAnalysis  = "ai_analysis"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Analyze a tax guide PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		client, err := e.authed()
		if err != nil {
			return err
		}

		e.log.Event(log.EventUpload, zap.String("file", args[0]))
		resp, err := client.Upload(context.Background(), args[0])
		if err != nil {
			return e.check(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Analysis #%d\n\n", resp.TaxpayerID)
		return printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), client, resp.TaxpayerID, &resp.Data, render.NewPrimaryMount())
	},
}

var historyFilter string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		client, err := e.authed()
		if err != nil {
			return err
		}

		entries, err := client.ListTaxpayers(context.Background())
		if err != nil {
			return e.check(err)
		}
		e.log.Event(log.EventHistoryLoaded, zap.Int("count", len(entries)))

		out := cmd.OutOrStdout()
		cards := history.Filter(history.Cards(entries), historyFilter)
		if len(cards) == 0 {
			fmt.Fprintln(out, "No analyses yet. Upload one with: byetax upload <file.pdf>")
			return nil
		}
		for _, c := range cards {
			fmt.Fprintf(out, "%6d  %s\n", c.ID, c.String())
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyFilter, "filter", "f", "", "Fuzzy filter on name, year and guide type")
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one past analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		client, err := e.authed()
		if err != nil {
			return err
		}

		res, err := client.GetTaxpayer(context.Background(), id)
		if err != nil {
			return e.check(err)
		}
		e.log.Event(log.EventDetailOpened, zap.Int64("id", id))
		return printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), client, id, res, render.NewPrimaryMount())
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid analysis id %q", s)
	}
	return id, nil
}

// printResult renders res into mount, loads the panels the mount has, and
// writes the drawn mount to w. Panel progress goes to status. client may be
// nil for mounts without panels.
func printResult(w, status io.Writer, client *api.Client, id int64, res *tax.AnalysisResult, mount *render.Mount) error {
	mount.Bind(id)
	render.Result(res, mount)

	if client != nil {
		ctx := context.Background()
		progress := ui.NewProgressTo(status, fmt.Sprintf("Analysis #%d", id), isTerminal(status))
		progress.AddStep(stepCalculation, "세금 계산")
		progress.AddStep(stepAIAnalysis, "AI 분석")
		progress.Start()
		if t, ok := mount.Begin(render.SlotCalculation); ok {
			progress.Begin(stepCalculation)
			calc, err := client.Calculate(ctx, id)
			progress.End(stepCalculation, err)
			render.ApplyCalculation(mount, t, calc, err)
		}
		if t, ok := mount.Begin(render.SlotAIAnalysis); ok {
			progress.Begin(stepAIAnalysis)
			ai, err := client.AIAnalysis(ctx, id)
			progress.End(stepAIAnalysis, err)
			render.ApplyAIAnalysis(mount, t, ai, err)
		}
		progress.Finish()
	}

	_, err := io.WriteString(w, mount.View(terminalWidth()))
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}
