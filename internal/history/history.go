// Package history derives the display fields of history cards and filters
// the history list.
package history

import (
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/byetax/byetax/internal/tax"
)

// GuideLabel is the first comma-separated token of a guide type, trimmed.
// It returns "" when the guide type is empty.
func GuideLabel(guideType string) string {
	first, _, _ := strings.Cut(guideType, ",")
	return strings.TrimSpace(first)
}

// TruncateTimestamp keeps date and minute precision of an upload timestamp
// ("2024-05-01 13:45:12" or "2024-05-01T13:45:12" become
// "2024-05-01 13:45").
func TruncateTimestamp(ts string) string {
	ts = strings.Replace(strings.TrimSpace(ts), "T", " ", 1)
	if len(ts) > 16 {
		ts = ts[:16]
	}
	return ts
}

// Card is the display projection of one history entry.
type Card struct {
	ID       int64
	Title    string
	Guide    string
	Uploaded string
	Filename string
}

// NewCard builds the card for e.
func NewCard(e tax.HistoryEntry) Card {
	title := e.Name
	if title == "" {
		title = "이름 없음"
	}
	if e.TaxYear != nil {
		title += " · " + strconv.Itoa(*e.TaxYear) + "년 귀속"
	}
	return Card{
		ID:       e.ID,
		Title:    title,
		Guide:    GuideLabel(e.GuideType),
		Uploaded: TruncateTimestamp(e.UploadedAt),
		Filename: e.PDFFilename,
	}
}

// Cards builds a card per entry, preserving order.
func Cards(entries []tax.HistoryEntry) []Card {
	cards := make([]Card, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, NewCard(e))
	}
	return cards
}

// String is the text a card is matched against when filtering.
func (c Card) String() string {
	return strings.Join([]string{c.Title, c.Guide, c.Filename, c.Uploaded}, " ")
}

type cardSource []Card

func (s cardSource) String(i int) string { return s[i].String() }
func (s cardSource) Len() int            { return len(s) }

// Filter returns the cards fuzzily matching query, best match first.
// An empty query returns cards unchanged.
func Filter(cards []Card, query string) []Card {
	if strings.TrimSpace(query) == "" {
		return cards
	}
	matches := fuzzy.FindFrom(query, cardSource(cards))
	out := make([]Card, 0, len(matches))
	for _, m := range matches {
		out = append(out, cards[m.Index])
	}
	return out
}
