package share

import (
	"bytes"
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestBuildURLReplacesQuery(t *testing.T) {
	got, err := BuildURL("http://localhost:8000/dashboard?token=old#top", "abc123")
	if err != nil {
		t.Fatalf("BuildURL failed: %v", err)
	}
	if got != "http://localhost:8000/dashboard?share=abc123" {
		t.Errorf("got %q", got)
	}
}

func TestBuildURLRootPath(t *testing.T) {
	got, err := BuildURL("https://byetax.example", "t")
	if err != nil {
		t.Fatalf("BuildURL failed: %v", err)
	}
	if got != "https://byetax.example/?share=t" {
		t.Errorf("got %q", got)
	}
}

func TestBuildURLRejectsRelative(t *testing.T) {
	if _, err := BuildURL("/dashboard", "t"); err == nil {
		t.Error("expected error for relative base")
	}
	if _, err := BuildURL("http://h/", ""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestSMSSeparatorByPlatform(t *testing.T) {
	mac, _ := IntentFor(ChannelSMS, "http://h/?share=t", "darwin")
	if !strings.HasPrefix(mac, "sms:&body=") {
		t.Errorf("darwin: got %q", mac)
	}
	linux, _ := IntentFor(ChannelSMS, "http://h/?share=t", "linux")
	if !strings.HasPrefix(linux, "sms:?body=") {
		t.Errorf("linux: got %q", linux)
	}
}

func TestKakaoIntentEscapesMessage(t *testing.T) {
	link := "http://h/?share=t"
	got, err := IntentFor(ChannelKakao, link, "linux")
	if err != nil {
		t.Fatalf("IntentFor failed: %v", err)
	}
	rest, ok := strings.CutPrefix(got, "kakaotalk://msg/text/")
	if !ok {
		t.Fatalf("prefix: got %q", got)
	}
	if strings.ContainsAny(rest, " \n?&") {
		t.Errorf("unescaped characters in %q", rest)
	}
	decoded, err := url.PathUnescape(rest)
	if err != nil || decoded != Message(link) {
		t.Errorf("round trip: got %q, %v", decoded, err)
	}
}

func TestUnknownChannel(t *testing.T) {
	if _, err := IntentFor("fax", "x", "linux"); err == nil {
		t.Error("expected error for unknown channel")
	}
	if len(Channels()) != 2 {
		t.Errorf("channels: got %v", Channels())
	}
}

func TestCopierPrefersSystemClipboard(t *testing.T) {
	var got string
	c := &Copier{
		system: func(s string) error { got = s; return nil },
		usable: func() bool { return true },
	}
	method, err := c.Copy("link")
	if err != nil || method != CopySystem || got != "link" {
		t.Errorf("got method %d err %v text %q", method, err, got)
	}
}

func TestCopierFallsBackToTerminal(t *testing.T) {
	var term bytes.Buffer
	c := &Copier{
		term:   &term,
		system: func(string) error { return errors.New("no xclip") },
		usable: func() bool { return true },
	}
	method, err := c.Copy("link")
	if err != nil || method != CopyTerminal {
		t.Fatalf("got method %d err %v", method, err)
	}
	if !strings.HasPrefix(term.String(), "\x1b]52;") {
		t.Errorf("terminal output: %q", term.String())
	}
}

func TestCopierWithoutAnyClipboard(t *testing.T) {
	c := &Copier{
		system: func(string) error { return nil },
		usable: func() bool { return false },
	}
	if _, err := c.Copy("link"); !errors.Is(err, ErrNoClipboard) {
		t.Errorf("got %v, want ErrNoClipboard", err)
	}
}

func TestSystemCopierReportsFailure(t *testing.T) {
	c := NewSystemCopier()
	c.system = func(string) error { return errors.New("no xclip") }
	c.usable = func() bool { return true }

	method, err := c.Copy("link")
	if !errors.Is(err, ErrNoClipboard) || method != CopyNone {
		t.Errorf("got method %d err %v, want ErrNoClipboard", method, err)
	}
}
