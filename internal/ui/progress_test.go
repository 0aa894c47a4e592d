package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestProgress(buf *bytes.Buffer) *Progress {
	p := NewProgressTo(buf, "홍길동 분석", false)
	clock := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time {
		clock = clock.Add(250 * time.Millisecond)
		return clock
	}
	return p
}

func TestPlainOutputPrintsTransitionsOnce(t *testing.T) {
	var buf bytes.Buffer
	p := newTestProgress(&buf)
	p.AddStep("calc", "세금 계산")
	p.AddStep("ai", "AI 분석")
	p.Start()

	if buf.Len() != 0 {
		t.Errorf("pending steps should print nothing, got %q", buf.String())
	}

	p.Begin("calc")
	p.Begin("calc")
	p.End("calc", nil)
	p.Begin("ai")
	p.End("ai", errors.New("timeout"))
	p.Finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"[RUNNING] 세금 계산",
		"[DONE 250ms] 세금 계산",
		"[RUNNING] AI 분석",
		"[FAILED] AI 분석: timeout",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestUnknownStepIgnored(t *testing.T) {
	var buf bytes.Buffer
	p := newTestProgress(&buf)
	p.AddStep("calc", "세금 계산")
	p.Start()
	p.Begin("nope")

	steps := p.Steps()
	if steps[0].Status != StatusPending {
		t.Errorf("status = %v, want pending", steps[0].Status)
	}
}

func TestTTYRedrawsInPlace(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressTo(&buf, "분석", true)
	p.AddStep("calc", "세금 계산")
	p.Start()
	p.Begin("calc")

	if !strings.Contains(buf.String(), "\033[2A") {
		t.Errorf("second draw should move the cursor up two lines: %q", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		120 * time.Millisecond:  "120ms",
		1500 * time.Millisecond: "1.5s",
		75 * time.Second:        "1m15s",
	}
	for d, want := range cases {
		if got := formatDuration(d); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
