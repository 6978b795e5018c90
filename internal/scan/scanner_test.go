package scan

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"workbook/internal/diag"
)

const borrowOutput = "error[E0425]: cannot find value `x` in this scope\n" +
	" --> src/main.rs:3:5\n" +
	"  |\n" +
	"3 |     x\n" +
	"  |     ^ not found in this scope\n" +
	"\n" +
	"error: aborting due to 1 previous error\n" +
	"\n" +
	"For more information about this error, try `rustc --explain E0425`.\n"

func TestScanClassifiesRustcOutput(t *testing.T) {
	got := Scan(borrowOutput)
	want := []Line{
		{Kind: KindHeader, Number: 1, Severity: diag.SevError, Code: "E0425", Text: "cannot find value `x` in this scope"},
		{Kind: KindPointer, Number: 2, Text: "--> src/main.rs:3:5", File: "src/main.rs", Row: 3, Col: 5},
		{Kind: KindContext, Number: 4, Text: "3 |     x"},
		{Kind: KindContext, Number: 5, Text: "|     ^ not found in this scope"},
		{Kind: KindSummary, Number: 7, Severity: diag.SevError, Text: "aborting due to 1 previous error"},
		{Kind: KindUnclassified, Number: 9, Text: "For more information about this error, try `rustc --explain E0425`."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Scan() mismatch (-want +got):\n%s", diff)
	}
}

func TestScanEdgeCases(t *testing.T) {
	for name, tc := range map[string]struct {
		input string
		want  []Line
	}{
		"empty": {
			input: "",
			want:  nil,
		},
		"only blanks and gutters": {
			input: "\n  |\n   ^^^\n\t\n",
			want:  nil,
		},
		"header without code": {
			input: "error: unresolved import",
			want: []Line{
				{Kind: KindHeader, Number: 1, Severity: diag.SevError, Text: "unresolved import"},
			},
		},
		"warning with lint code": {
			input: "warning[unused_variables]: unused variable: `y`",
			want: []Line{
				{Kind: KindHeader, Number: 1, Severity: diag.SevWarning, Code: "unused_variables", Text: "unused variable: `y`"},
			},
		},
		"severity token mid line is not a header": {
			input: "error: first\nnote: this is not an error: really\n  error: indented is context",
			want: []Line{
				{Kind: KindHeader, Number: 1, Severity: diag.SevError, Text: "first"},
				{Kind: KindContext, Number: 2, Text: "note: this is not an error: really"},
				{Kind: KindContext, Number: 3, Text: "error: indented is context"},
			},
		},
		"pointer before any header": {
			input: "--> main.rs:1:1\nlinker said no",
			want: []Line{
				{Kind: KindPointer, Number: 1, Text: "--> main.rs:1:1", File: "main.rs", Row: 1, Col: 1},
				{Kind: KindUnclassified, Number: 2, Text: "linker said no"},
			},
		},
		"zero column is not a pointer": {
			input: "error: x\n --> main.rs:0:4",
			want: []Line{
				{Kind: KindHeader, Number: 1, Severity: diag.SevError, Text: "x"},
				{Kind: KindContext, Number: 2, Text: "--> main.rs:0:4"},
			},
		},
		"foreign extension is context": {
			input: "error: x\n --> build.py:2:2",
			want: []Line{
				{Kind: KindHeader, Number: 1, Severity: diag.SevError, Text: "x"},
				{Kind: KindContext, Number: 2, Text: "--> build.py:2:2"},
			},
		},
		"crlf and ansi": {
			input: "\x1b[1m\x1b[31merror\x1b[0m\x1b[1m: boom\x1b[0m\r\n\x1b[34m-->\x1b[0m /tmp/abc123/main.rs:7:12\r\n",
			want: []Line{
				{Kind: KindHeader, Number: 1, Severity: diag.SevError, Text: "boom"},
				{Kind: KindPointer, Number: 2, Text: "--> /tmp/abc123/main.rs:7:12", File: "/tmp/abc123/main.rs", Row: 7, Col: 12},
			},
		},
		"cargo trailer": {
			input: "warning: `app` (bin \"app\") generated 2 warnings",
			want: []Line{
				{Kind: KindSummary, Number: 1, Severity: diag.SevWarning, Text: "`app` (bin \"app\") generated 2 warnings"},
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got := Scan(tc.input)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Scan(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestScanCustomExtensions(t *testing.T) {
	s := New(Options{Extensions: []string{"sg", ".rs"}})
	got := s.Scan("error: x\n --> lib/a.sg:4:2")
	if len(got) != 2 || got[1].Kind != KindPointer || got[1].File != "lib/a.sg" {
		t.Fatalf("expected .sg pointer, got %v", got)
	}

	loose := New(Options{})
	got = loose.Scan("error: x\n --> <anon>:4:2")
	if len(got) != 2 || got[1].Kind != KindPointer || got[1].Row != 4 {
		t.Fatalf("expected pointer with any extension, got %v", got)
	}
}

func TestScanKeepsANSIWhenDisabled(t *testing.T) {
	s := New(Options{Extensions: DefaultExtensions})
	got := s.Scan("\x1b[31merror\x1b[0m: boom")
	if len(got) != 1 || got[0].Kind != KindUnclassified {
		t.Fatalf("colored header must not match without stripping, got %v", got)
	}
}

func TestScanNeverExceedsLineCount(t *testing.T) {
	inputs := []string{
		borrowOutput,
		"a\nb\nc",
		"\n\n\n",
		"error:\nwarning:\n-->x.rs:1:1",
		strings.Repeat("error: e\n --> m.rs:1:1\n", 50),
	}
	for _, in := range inputs {
		lines := strings.Count(in, "\n") + 1
		if got := len(Scan(in)); got > lines {
			t.Fatalf("Scan produced %d entries for %d lines", got, lines)
		}
	}
}

func TestLineString(t *testing.T) {
	ln := Line{Kind: KindHeader, Number: 1, Severity: diag.SevError, Code: "E0308", Text: "mismatched types"}
	if got := ln.String(); got != "1 header error[E0308]: mismatched types" {
		t.Fatalf("unexpected String(): %q", got)
	}
}

func TestScanRejectsOversizedCoordinates(t *testing.T) {
	got := Scan("error: x\n --> m.rs:99999999999999999999:1\n --> m.rs:1:4294967296")
	for _, ln := range got[1:] {
		if ln.Kind != KindContext {
			t.Fatalf("oversized coordinate must not form a pointer: %v", ln)
		}
	}
}
