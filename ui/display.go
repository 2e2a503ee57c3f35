package ui

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Displayer is an interface for displaying a string.
type Displayer interface {
	Display() string
}

func Display(v any) string {
	switch v := v.(type) {
	case struct{}:
		return ""
	case Displayer:
		return v.Display()
	case string:
		return v
	case error:
		return v.Error()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
		return fmt.Sprint(v)
	case fmt.Stringer:
		return v.String()
	case encoding.TextMarshaler:
		b, err := v.MarshalText()
		if err != nil {
			break
		}
		return string(b)
	default:
		json, err := json.Marshal(v)
		if err != nil {
			break
		}
		return string(json)
	}
	return fmt.Sprintf("[%T?]", v)
}

func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
func FixedBlock(pre string, post string, n int) string {
	if n <= 0 {
		return ""
	}

	m := lipgloss.Width(post)
	if m > n {
		post = lipgloss.NewStyle().MaxWidth(n).Render(post)
		post, _, _ = strings.Cut(post, "\n")
		post = post[:len(post)-1]
		post += "…"
	} else {
		post += Pad(n - m)
	}

	if pre == "" {
		return post
	}
	return pre + " " + post
}

// Table renders rows in columns sized to their widest cell. The first column
// is highlighted and the last one is faint.
func Table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var b strings.Builder
	for i, h := range header {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(HeaderStyle.Render(h))
		if i != len(header)-1 {
			b.WriteString(Pad(widths[i] - lipgloss.Width(h)))
		}
	}
	b.WriteByte('\n')
	for _, row := range rows {
		for i := range header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i > 0 {
				b.WriteString("  ")
			}
			if i != len(header)-1 {
				cell = FixedBlock("", cell, widths[i])
			}
			switch i {
			case 0:
				cell = BrownStyle.Render(cell)
			case len(header) - 1:
				cell = FaintStyle.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
