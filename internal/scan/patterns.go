package scan

import (
	"regexp"
	"strings"
)

var (
	// severity word at column 0, optional [CODE], then a colon
	headerRe = regexp.MustCompile(`^(error|warning)(?:\[([^\]]*)\])?:(.*)$`)

	// decoration only: bars, carets, underline runs, multi-line span drawing
	gutterRe = regexp.MustCompile(`^[\s|^~_/\\-]*$`)

	ansiRe = regexp.MustCompile("\x1b\\[[0-9;?]*[A-Za-z]")

	summaryRe = regexp.MustCompile(`^(?:aborting due to\b|could not compile\b|build failed\b|\d+ (?:warnings?|errors?) emitted\b)|\bgenerated \d+ warnings?\b`)
)

// pointerPattern builds the location-pointer regexp for the given suffixes.
// The file part is deliberately loose: the sandbox picks the temp file name.
func pointerPattern(exts []string) *regexp.Regexp {
	file := `\S.*?`
	if len(exts) > 0 {
		quoted := make([]string, 0, len(exts))
		for _, ext := range exts {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			quoted = append(quoted, regexp.QuoteMeta(ext))
		}
		if len(quoted) > 0 {
			file = `\S.*?(?:` + strings.Join(quoted, "|") + `)`
		}
	}
	return regexp.MustCompile(`^\s*-->\s*(` + file + `):(\d+):(\d+)\s*$`)
}

func isSummary(msg string) bool {
	return summaryRe.MatchString(msg)
}
