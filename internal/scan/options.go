package scan

// DefaultExtensions lists the source suffixes a location pointer may name.
var DefaultExtensions = []string{".rs"}

// Options configures the scanner.
type Options struct {
	// Extensions restricts location pointers to files with one of these
	// suffixes. Empty accepts any file name.
	Extensions []string
	// StripANSI removes terminal colour escapes before classification.
	StripANSI bool
}

// DefaultOptions matches rustc output as returned by the execution sandbox.
func DefaultOptions() Options {
	return Options{
		Extensions: append([]string(nil), DefaultExtensions...),
		StripANSI:  true,
	}
}
