package diag

import (
	"regexp"
	"strings"
)

// Code is the short bracketed identifier of a compiler diagnostic, e.g. "E0425"
// or a lint name such as "unused_variables". Empty means no code was printed.
type Code string

var rustcCodeRe = regexp.MustCompile(`^E\d{4}$`)

// ID returns the code as written, or "-" when absent.
func (c Code) ID() string {
	if c == "" {
		return "-"
	}
	return string(c)
}

// IsExplained reports whether the code is a numbered rustc error that has an
// entry in the error index.
func (c Code) IsExplained() bool {
	return rustcCodeRe.MatchString(string(c))
}

// ExplainURL points at the error index page for numbered codes.
func (c Code) ExplainURL() string {
	if !c.IsExplained() {
		return ""
	}
	return "https://doc.rust-lang.org/error_codes/" + strings.ToUpper(string(c)) + ".html"
}
