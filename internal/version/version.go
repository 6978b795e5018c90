package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the workbook CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored paints the major, minor and patch parts of Version. A version that
// is not dotted is returned unchanged.
func Colored(enabled bool) string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if !enabled || len(parts) != 3 {
		return Version
	}
	paint := []*color.Color{majorColor, minorColor, patchColor}
	for i, c := range paint {
		c.EnableColor()
		parts[i] = c.Sprint(parts[i])
	}
	out := strings.Join(parts, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Banner is the `workbook version` output: the version line followed by the
// optional commit and build date.
func Banner(colored bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "workbook %s", Colored(colored))
	if GitCommit != "" {
		fmt.Fprintf(&b, "\ncommit: %s", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "\nbuilt:  %s", BuildDate)
	}
	return b.String()
}
