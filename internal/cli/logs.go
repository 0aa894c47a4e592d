// logs.go implements the "byetax logs" command.
package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/byetax/byetax/internal/config"
	"github.com/byetax/byetax/internal/log"
)

var (
	logsEvent string
	logsTail  int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the local event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.StateDir()
		if err != nil {
			return err
		}
		events, err := log.ReadFile(filepath.Join(dir, log.FileName))
		if err != nil {
			return err
		}

		var selected []log.LogEvent
		for _, ev := range events {
			if logsEvent == "" || ev.Event == logsEvent {
				selected = append(selected, ev)
			}
		}
		if logsTail > 0 && len(selected) > logsTail {
			selected = selected[len(selected)-logsTail:]
		}

		out := cmd.OutOrStdout()
		for _, ev := range selected {
			fmt.Fprintf(out, "%s  %-5s  %-15s", ev.Time.Local().Format("2006-01-02 15:04:05"), ev.Level, ev.Event)
			if len(ev.Data) > 0 {
				data, _ := json.Marshal(ev.Data)
				fmt.Fprintf(out, "  %s", data)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().StringVar(&logsEvent, "event", "", "Only show events with this name")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 0, "Only show the last N events")
}
