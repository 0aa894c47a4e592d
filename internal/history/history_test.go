package history

import (
	"testing"

	"github.com/byetax/byetax/internal/tax"
)

func TestGuideLabel(t *testing.T) {
	if got := GuideLabel("단순경비율, 일반"); got != "단순경비율" {
		t.Errorf("got %q, want %q", got, "단순경비율")
	}
	if got := GuideLabel("  기준경비율 "); got != "기준경비율" {
		t.Errorf("single token: got %q", got)
	}
	if got := GuideLabel(""); got != "" {
		t.Errorf("empty: got %q", got)
	}
}

func TestTruncateTimestamp(t *testing.T) {
	cases := map[string]string{
		"2024-05-01 13:45:12":        "2024-05-01 13:45",
		"2024-05-01T13:45:12.123456": "2024-05-01 13:45",
		"2024-05-01 13:45":           "2024-05-01 13:45",
		"":                           "",
	}
	for in, want := range cases {
		if got := TruncateTimestamp(in); got != want {
			t.Errorf("TruncateTimestamp(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestNewCard(t *testing.T) {
	y := 2024
	c := NewCard(tax.HistoryEntry{
		ID: 7, Name: "홍길동", TaxYear: &y,
		GuideType: "단순경비율, 일반", UploadedAt: "2024-05-01 13:45:12", PDFFilename: "a.pdf",
	})
	if c.Title != "홍길동 · 2024년 귀속" || c.Guide != "단순경비율" || c.Uploaded != "2024-05-01 13:45" {
		t.Errorf("card: %+v", c)
	}
}

func TestFilter(t *testing.T) {
	cards := Cards([]tax.HistoryEntry{
		{ID: 1, Name: "홍길동", PDFFilename: "2023_guide.pdf"},
		{ID: 2, Name: "김철수", PDFFilename: "2024_guide.pdf"},
	})
	if got := Filter(cards, ""); len(got) != 2 {
		t.Errorf("empty query: got %d cards", len(got))
	}
	got := Filter(cards, "2024")
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("filter 2024: got %+v", got)
	}
	if got := Filter(cards, "zzz"); len(got) != 0 {
		t.Errorf("no match: got %+v", got)
	}
}
