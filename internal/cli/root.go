// Package cli defines Cobra command definitions for the byetax CLI.
// This file contains the root command, which launches the dashboard TUI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/byetax/byetax/internal/session"
	"github.com/byetax/byetax/internal/share"
	"github.com/byetax/byetax/internal/tui"
	"github.com/byetax/byetax/internal/tui/app"
)

var (
	linkFlag  string
	tokenFlag string
	shareFlag string
	version   = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "byetax",
	Short: "Terminal dashboard for ByeTax income-tax guide analysis",
	Long: `byetax uploads a Korean comprehensive income tax guide (종합소득세
신고안내문) PDF to the ByeTax backend and shows the analysis: taxpayer
summary, businesses, three-year tax history, expense ratios, deductions,
card usage, other incomes and penalties, plus a tax calculation and an
AI risk review.

Run without a subcommand to open the interactive dashboard.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	nav, err := session.ParseNavigation(linkFlag, tokenFlag, shareFlag)
	if err != nil {
		return err
	}
	res, err := e.gate.Resolve(nav)
	if err != nil {
		return err
	}

	tuiApp := app.New(tui.Deps{
		Cfg:    e.cfg,
		Client: e.client,
		Gate:   e.gate,
		Log:    e.log,
		// Bubble Tea owns stdout; a failed copy leaves the link on screen.
		Copier: share.NewSystemCopier(),
	}, res)
	return tui.Run(tuiApp, tui.NewFallbackRunner(res))
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&linkFlag, "link", "", "Launch link, e.g. the login callback http://host/?token=...")
	rootCmd.Flags().StringVar(&tokenFlag, "token", "", "One-time access token to store before starting")
	rootCmd.Flags().StringVar(&shareFlag, "share", "", "Open a shared analysis read-only")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(openShareCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(demoServerCmd)
}
