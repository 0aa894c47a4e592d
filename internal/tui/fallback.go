package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/byetax/byetax/internal/session"
)

// FallbackRunner handles non-TTY execution by guiding users to CLI commands.
type FallbackRunner struct {
	res session.Resolution
	out io.Writer
}

// NewFallbackRunner creates a new FallbackRunner.
func NewFallbackRunner(res session.Resolution) *FallbackRunner {
	return &FallbackRunner{res: res, out: os.Stdout}
}

// Run prints the commands that cover what the TUI would have shown.
func (f *FallbackRunner) Run() error {
	fmt.Fprintln(f.out, "Non-TTY environment detected.")

	switch f.res.Mode {
	case session.ModeShare:
		fmt.Fprintf(f.out, "Use 'byetax open-share %s' to print the shared analysis\n", f.res.ShareToken)
	case session.ModeOptimistic:
		fmt.Fprintln(f.out, "Use 'byetax upload <file.pdf>' to analyze a tax guide")
		fmt.Fprintln(f.out, "Use 'byetax history' and 'byetax show <id>' to browse past analyses")
	default:
		fmt.Fprintln(f.out, "Not logged in. Use 'byetax login --dev --nickname <name>' or 'byetax login --kakao'")
	}
	return nil
}
