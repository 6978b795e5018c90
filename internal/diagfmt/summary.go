package diagfmt

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"workbook/internal/diag"
)

// Summary is the footer under the problem list: "2 problems (1 error, 1 warning)".
func Summary(c diag.Counts, colored bool) string {
	var text string
	switch c.Total() {
	case 0:
		text = "no problems"
	default:
		text = fmt.Sprintf("%s (%s, %s)",
			plural(c.Total(), "problem"), plural(c.Errors, "error"), plural(c.Warnings, "warning"))
	}
	if !colored {
		return text
	}
	style := lipgloss.NewStyle().Bold(true)
	switch {
	case c.Errors > 0:
		style = style.Foreground(lipgloss.Color("1"))
	case c.Warnings > 0:
		style = style.Foreground(lipgloss.Color("3"))
	default:
		style = style.Foreground(lipgloss.Color("2"))
	}
	return style.Render(text)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
