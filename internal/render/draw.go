package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	columnSep = " │ "
	barWidth  = 20
)

// View draws every rendered fragment of the mount in layout order.
func (m *Mount) View(width int) string {
	var b strings.Builder
	for _, slot := range m.order {
		f, ok := m.frags[slot]
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.View(width))
		b.WriteString("\n")
	}
	return b.String()
}

// View draws one fragment.
func (f Fragment) View(width int) string {
	var b strings.Builder
	title := titleStyle.Render(f.Title)
	if f.Badge != nil {
		title += "  " + styled(f.Badge.Class, f.Badge.Text)
	}
	b.WriteString(title + "\n")

	switch {
	case f.Loading:
		b.WriteString(loadingStyle.Render("불러오는 중...") + "\n")
		return b.String()
	case f.Err != "":
		b.WriteString(errStyle.Render(f.Err) + "\n")
		return b.String()
	}

	if f.Summary != "" {
		b.WriteString(summaryStyle.Render(f.Summary) + "\n")
	}
	if len(f.Headers) > 0 || len(f.Rows) > 0 {
		b.WriteString(drawTable(f.Headers, f.Rows))
	}
	for _, bar := range f.Bars {
		b.WriteString(drawBar(bar) + "\n")
	}
	for _, c := range f.Comments {
		b.WriteString(styled(c.Class, "["+c.Tag+"] "+c.Title) + "\n")
		if c.Body != "" {
			b.WriteString("  " + wrap(c.Body, width-2, "  ") + "\n")
		}
	}
	if f.Note != "" {
		b.WriteString(noteStyle.Render(wrap(f.Note, width, "")) + "\n")
	}
	return b.String()
}

func columnCount(headers []string, rows []Row) int {
	n := len(headers)
	for _, r := range rows {
		if r.Span == 0 && len(r.Cells) > n {
			n = len(r.Cells)
		}
	}
	return n
}

func drawTable(headers []string, rows []Row) string {
	cols := columnCount(headers, rows)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		if r.Span > 0 {
			continue
		}
		for i, c := range r.Cells {
			if w := runewidth.StringWidth(c.Text); w > widths[i] {
				widths[i] = w
			}
		}
	}
	total := 0
	for _, w := range widths {
		total += w
	}
	if cols > 1 {
		total += (cols - 1) * runewidth.StringWidth(columnSep)
	}

	var b strings.Builder
	if len(headers) > 0 {
		cells := make([]string, cols)
		for i := range cells {
			h := ""
			if i < len(headers) {
				h = headers[i]
			}
			cells[i] = headerStyle.Render(runewidth.FillRight(h, widths[i]))
		}
		b.WriteString(strings.Join(cells, columnSep) + "\n")
		b.WriteString(strings.Repeat("─", total) + "\n")
	}

	for _, r := range rows {
		if r.Span > 0 {
			text := ""
			if len(r.Cells) > 0 {
				text = r.Cells[0].Text
			}
			b.WriteString(styled(r.Class, center(text, total)) + "\n")
			continue
		}
		cells := make([]string, cols)
		for i := range cells {
			var c Cell
			if i < len(r.Cells) {
				c = r.Cells[i]
			}
			text := runewidth.FillRight(c.Text, widths[i])
			if c.Right {
				text = runewidth.FillLeft(c.Text, widths[i])
			}
			class := c.Class
			if class == ClassNone {
				class = r.Class
			}
			cells[i] = styled(class, text)
		}
		b.WriteString(strings.Join(cells, columnSep) + "\n")
	}
	return b.String()
}

func center(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + runewidth.FillRight(text, width-left)
}

func drawBar(bar Bar) string {
	pct := bar.Percent
	if pct < 0 {
		pct = 0
	}
	filled := int(pct / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	label := runewidth.FillRight(runewidth.Truncate(bar.Label, 16, "…"), 16)
	return fmt.Sprintf("%s %s%s %s",
		label,
		barFullStyle.Render(strings.Repeat("█", filled)),
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled)),
		PctValue(bar.Percent),
	)
}

// wrap breaks s into lines no wider than width, prefixing continuation
// lines with indent.
func wrap(s string, width int, indent string) string {
	if width <= 10 {
		return s
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+ww > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(" ")
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += ww
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n"+indent)
}
