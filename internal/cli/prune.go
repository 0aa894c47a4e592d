package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/byetax/byetax/internal/cleanup"
	"github.com/byetax/byetax/internal/log"
)

var (
	pruneDir    string
	pruneDays   int
	pruneKeep   int
	pruneDryRun bool
)

var pruneCmd = &cobra.Command{
	Use:   "prune-exports",
	Short: "Delete old export files",
	Long: `Delete ByeTax_* export files from the export directory.

Use --older-than to remove files older than N days, or --keep to keep
only the N most recent. --dry-run lists what would be removed.`,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().StringVarP(&pruneDir, "dir", "d", "", "Export directory (default from config)")
	pruneCmd.Flags().IntVar(&pruneDays, "older-than", 0, "Remove exports older than N days")
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", -1, "Keep only the N most recent exports")
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "List files without deleting")
}

func runPrune(cmd *cobra.Command, args []string) error {
	if (pruneDays > 0) == (pruneKeep >= 0) {
		return errors.New("pass exactly one of --older-than or --keep")
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	dir := pruneDir
	if dir == "" {
		dir = e.cfg.Export.Dir
	}

	var pruned []string
	if pruneDays > 0 {
		pruned, err = cleanup.PruneByAge(dir, pruneDays, pruneDryRun)
	} else {
		pruned, err = cleanup.PruneKeepRecent(dir, pruneKeep, pruneDryRun)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	verb := "Removed"
	if pruneDryRun {
		verb = "Would remove"
	}
	for _, name := range pruned {
		fmt.Fprintf(out, "%s %s\n", verb, name)
	}
	if len(pruned) == 0 {
		fmt.Fprintln(out, "Nothing to prune.")
	}
	if !pruneDryRun {
		e.log.Event(log.EventExportsPruned, zap.String("dir", dir), zap.Int("count", len(pruned)))
	}
	return nil
}
