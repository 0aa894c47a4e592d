// Package ui provides terminal UI components for the non-interactive
// commands.
// This file implements the step progress shown while an analysis loads.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// StepStatus represents the state of one loading step.
type StepStatus int

const (
	StatusPending StepStatus = iota
	StatusRunning
	StatusDone
	StatusFailed
)

// Step is the display state of one step.
type Step struct {
	ID      string
	Title   string
	Status  StepStatus
	Elapsed time.Duration
	Detail  string // failure reason
}

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Progress manages a live-updating list of steps. On a terminal the list
// is redrawn in place; otherwise one line is printed per transition.
type Progress struct {
	mu          sync.Mutex
	out         io.Writer
	title       string
	steps       []*Step
	index       map[string]int
	started     bool
	isTTY       bool
	linesDrawn  int
	startTimes  map[string]time.Time
	lastPrinted map[string]StepStatus
	now         func() time.Time
}

// NewProgress creates a Progress writing to stderr.
func NewProgress(title string) *Progress {
	return NewProgressTo(os.Stderr, title, term.IsTerminal(int(os.Stderr.Fd())))
}

// NewProgressTo creates a Progress writing to out.
func NewProgressTo(out io.Writer, title string, tty bool) *Progress {
	return &Progress{
		out:         out,
		title:       title,
		index:       make(map[string]int),
		startTimes:  make(map[string]time.Time),
		lastPrinted: make(map[string]StepStatus),
		isTTY:       tty,
		now:         time.Now,
	}
}

// AddStep registers a step.
func (p *Progress) AddStep(id, title string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.index[id] = len(p.steps)
	p.steps = append(p.steps, &Step{ID: id, Title: title})
}

// Start draws the initial display.
func (p *Progress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = true
	p.render()
}

// Begin marks step id running.
func (p *Progress) Begin(id string) {
	p.update(id, StatusRunning, "")
}

// End marks step id done, or failed when err is non-nil.
func (p *Progress) End(id string, err error) {
	if err != nil {
		p.update(id, StatusFailed, err.Error())
		return
	}
	p.update(id, StatusDone, "")
}

func (p *Progress) update(id string, status StepStatus, detail string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx, ok := p.index[id]
	if !ok {
		return
	}
	step := p.steps[idx]
	step.Status = status
	step.Detail = detail

	switch status {
	case StatusRunning:
		p.startTimes[id] = p.now()
	case StatusDone, StatusFailed:
		if start, ok := p.startTimes[id]; ok {
			step.Elapsed = p.now().Sub(start)
		}
	}

	if p.started {
		p.render()
	}
}

// Steps returns a copy of the current step states.
func (p *Progress) Steps() []Step {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Step, len(p.steps))
	for i, s := range p.steps {
		out[i] = *s
	}
	return out
}

// Finish leaves the cursor below the display.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isTTY && p.linesDrawn > 0 {
		fmt.Fprintln(p.out)
	}
}

func (p *Progress) render() {
	if !p.isTTY {
		p.renderPlain()
		return
	}
	p.renderTTY()
}

// renderTTY redraws in place using ANSI cursor movement.
func (p *Progress) renderTTY() {
	if p.linesDrawn > 0 {
		fmt.Fprintf(p.out, "\033[%dA", p.linesDrawn)
	}

	var buf strings.Builder
	buf.WriteString("\033[2K")
	buf.WriteString(lipgloss.NewStyle().Bold(true).Render(p.title))
	buf.WriteString("\n")
	for _, step := range p.steps {
		buf.WriteString("\033[2K")
		buf.WriteString(formatStepLine(step))
		buf.WriteString("\n")
	}

	fmt.Fprint(p.out, buf.String())
	p.linesDrawn = len(p.steps) + 1
}

// renderPlain prints only status transitions.
func (p *Progress) renderPlain() {
	for _, step := range p.steps {
		if step.Status == StatusPending {
			continue
		}
		if prev, seen := p.lastPrinted[step.ID]; seen && prev == step.Status {
			continue
		}
		fmt.Fprintln(p.out, formatStepLinePlain(step))
		p.lastPrinted[step.ID] = step.Status
	}
}

func formatStepLine(step *Step) string {
	switch step.Status {
	case StatusDone:
		return fmt.Sprintf("  %s %s %s", doneStyle.Render("✓"), step.Title, dimStyle.Render("["+formatDuration(step.Elapsed)+"]"))
	case StatusRunning:
		return fmt.Sprintf("  %s %s", runningStyle.Render("▸"), step.Title)
	case StatusFailed:
		return fmt.Sprintf("  %s %s %s", failedStyle.Render("✗"), step.Title, failedStyle.Render(step.Detail))
	default:
		return fmt.Sprintf("  %s %s", dimStyle.Render("○"), dimStyle.Render(step.Title))
	}
}

func formatStepLinePlain(step *Step) string {
	switch step.Status {
	case StatusRunning:
		return fmt.Sprintf("[RUNNING] %s", step.Title)
	case StatusDone:
		return fmt.Sprintf("[DONE %s] %s", formatDuration(step.Elapsed), step.Title)
	case StatusFailed:
		return fmt.Sprintf("[FAILED] %s: %s", step.Title, step.Detail)
	default:
		return fmt.Sprintf("[PENDING] %s", step.Title)
	}
}

// formatDuration formats a duration with sub-second precision below a
// second.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	d = d.Round(100 * time.Millisecond)
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
