package scan

// Kind classifies one line of compiler output.
type Kind uint8

const (
	// KindUnclassified is text outside any diagnostic (preamble, trailer).
	KindUnclassified Kind = iota
	// KindHeader starts a diagnostic: "error[E0425]: ..." or "warning: ...".
	KindHeader
	// KindPointer is a location line: "--> src/main.rs:3:5".
	KindPointer
	// KindContext is any other non-blank line inside a diagnostic.
	KindContext
	// KindSummary is a header-shaped compiler trailer such as
	// "error: aborting due to 2 previous errors".
	KindSummary
)

func (k Kind) String() string {
	switch k {
	case KindUnclassified:
		return "unclassified"
	case KindHeader:
		return "header"
	case KindPointer:
		return "pointer"
	case KindContext:
		return "context"
	case KindSummary:
		return "summary"
	default:
		return "unknown"
	}
}
