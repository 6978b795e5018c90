package diagfmt

import (
	"io"

	"github.com/charmbracelet/x/ansi"

	"workbook/internal/diag"
)

// Short writes diag.FormatShort output followed by a newline when non-empty.
// Terminal escapes in record text are removed.
func Short(w io.Writer, records []diag.Record, withContext bool) error {
	text := ansi.Strip(diag.FormatShort(records, withContext))
	if text == "" {
		return nil
	}
	_, err := io.WriteString(w, text+"\n")
	return err
}
