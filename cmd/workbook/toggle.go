package main

import (
	"fmt"
	"os"
	"strings"
)

// toggle is a tri-state setting shared by --color, --ui and the matching
// workbook.toml keys. Auto defers to whether the output is a terminal.
type toggle string

const (
	toggleAuto toggle = "auto"
	toggleOn   toggle = "on"
	toggleOff  toggle = "off"
)

func parseToggle(name, value string) (toggle, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return toggleAuto, nil
	case "on":
		return toggleOn, nil
	case "off":
		return toggleOff, nil
	default:
		return "", fmt.Errorf("invalid %s value %q (expected auto|on|off)", name, value)
	}
}

// enabled resolves the toggle for output written to f.
func (t toggle) enabled(f *os.File) bool {
	return t.resolve(func() bool { return isTerminal(f) })
}

func (t toggle) resolve(tty func() bool) bool {
	switch t {
	case toggleOn:
		return true
	case toggleOff:
		return false
	default:
		return tty()
	}
}
