package diag

import "fmt"

// Location is the primary source position of a record. Line and Column are
// 1-based, as printed by the compiler.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Record is one compiler error or warning.
type Record struct {
	Severity Severity
	Code     Code
	Message  string
	Location *Location
	Extended []string
}

// HasLocation reports whether the record points at a source position.
func (r *Record) HasLocation() bool {
	return r != nil && r.Location != nil
}
