package diagfmt

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"workbook/internal/diag"
)

const defaultIndent = 4

type palette struct {
	err, warn, code, loc, ctx *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		code: color.New(color.FgMagenta),
		loc:  color.New(color.FgCyan),
		ctx:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.code, p.loc, p.ctx} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	if sev == diag.SevWarning {
		return p.warn
	}
	return p.err
}

func icon(sev diag.Severity) string {
	if sev == diag.SevWarning {
		return "⚠"
	}
	return "✖"
}

// FormatList renders records as the problem list, one block per record in
// the given order:
//
//	✖ error[E0425]: cannot find value `x` (3:5)
//	    3 |     x
//
// Output depends only on records and opts, so repeated calls are
// byte-identical.
func FormatList(records []diag.Record, opts ListOpts) string {
	var b strings.Builder
	writeList(&b, records, opts)
	return b.String()
}

// List writes FormatList output to w.
func List(w io.Writer, records []diag.Record, opts ListOpts) error {
	_, err := io.WriteString(w, FormatList(records, opts))
	return err
}

func writeList(b *strings.Builder, records []diag.Record, opts ListOpts) {
	pal := newPalette(opts.Color)
	indent := opts.Indent
	if indent <= 0 {
		indent = defaultIndent
	}
	pad := strings.Repeat(" ", indent)

	for i := range records {
		r := &records[i]
		var head strings.Builder
		if opts.Icons {
			head.WriteString(icon(r.Severity))
			head.WriteByte(' ')
		}
		label := r.Severity.Label()
		if r.Code != "" {
			label += "[" + string(r.Code) + "]"
		}
		head.WriteString(label)
		head.WriteString(": ")
		head.WriteString(oneLine(r.Message))
		plain := head.String()

		suffix := ""
		if r.Location != nil {
			suffix = " (" + r.Location.String() + ")"
		}

		line := fit(plain+suffix, opts.Width)
		b.WriteString(colorize(line, plain, suffix, label, r, pal))
		b.WriteByte('\n')

		if opts.ShowContext {
			for _, ctx := range r.Extended {
				b.WriteString(pal.ctx.Sprint(fit(pad+ansi.Strip(ctx), opts.Width)))
				b.WriteByte('\n')
			}
		}
		if opts.ShowExplain && r.Code.IsExplained() {
			b.WriteString(pal.ctx.Sprint(fit(pad+"see "+r.Code.ExplainURL(), opts.Width)))
			b.WriteByte('\n')
		}
	}
}

// colorize paints the label and location of an untruncated header line. A
// truncated line is painted as a whole to avoid splitting escape sequences.
func colorize(line, plain, suffix, label string, r *diag.Record, pal palette) string {
	sev := pal.severity(r.Severity)
	if line != plain+suffix {
		return sev.Sprint(line)
	}
	idx := strings.Index(plain, label)
	out := plain[:idx] + sev.Sprint(label) + plain[idx+len(label):]
	if suffix != "" {
		out += pal.loc.Sprint(suffix)
	}
	return out
}

// oneLine drops terminal escapes left in record text and folds it onto a
// single line.
func oneLine(msg string) string {
	msg = ansi.Strip(msg)
	if !strings.ContainsAny(msg, "\r\n") {
		return msg
	}
	fields := strings.FieldsFunc(msg, func(r rune) bool { return r == '\n' || r == '\r' })
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return strings.Join(fields, " ")
}

func fit(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
