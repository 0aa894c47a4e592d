// Package share builds share links and hands them to the clipboard or to
// platform messaging apps.
package share

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"sort"
	"strings"
)

// Param is the query parameter that carries a share token.
const Param = "share"

// BuildURL puts token on the page at base as ?share=<token>. Any existing
// query or fragment on base is dropped.
func BuildURL(base, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("building share link: empty token")
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing share page %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("share page %q is not an absolute URL", base)
	}
	u.RawQuery = url.Values{Param: {token}}.Encode()
	u.Fragment = ""
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

// Channel is a platform share target.
type Channel string

const (
	ChannelKakao Channel = "kakao"
	ChannelSMS   Channel = "sms"
)

// Message is the text sent along with a link.
func Message(link string) string {
	return "[ByeTax] 종합소득세 분석 결과를 확인해 보세요.\n" + link
}

// IntentFunc builds the URI that opens a channel with text, for a host
// running goos.
type IntentFunc func(text, goos string) string

var intents = map[Channel]IntentFunc{
	ChannelKakao: func(text, _ string) string {
		return "kakaotalk://msg/text/" + escapeComponent(text)
	},
	ChannelSMS: func(text, goos string) string {
		return "sms:" + smsSeparator(goos) + "body=" + escapeComponent(text)
	},
}

// smsSeparator is "&" on Apple platforms and "?" elsewhere.
func smsSeparator(goos string) string {
	switch goos {
	case "darwin", "ios":
		return "&"
	default:
		return "?"
	}
}

func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Channels lists the registered channels in name order.
func Channels() []Channel {
	out := make([]Channel, 0, len(intents))
	for ch := range intents {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IntentFor builds the share URI for ch on a goos host.
func IntentFor(ch Channel, link, goos string) (string, error) {
	build, ok := intents[ch]
	if !ok {
		return "", fmt.Errorf("unknown share channel %q", ch)
	}
	return build(Message(link), goos), nil
}

// Intent builds the share URI for ch on the current host.
func Intent(ch Channel, link string) (string, error) {
	return IntentFor(ch, link, runtime.GOOS)
}

// Open hands uri to the platform's URL handler.
func Open(uri string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		cmd = exec.Command("xdg-open", uri)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", uri, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
