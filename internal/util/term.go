package util

import (
	"os"

	"github.com/fatih/color"
)

// IsTTY returns true if stdout is a terminal.
func IsTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// InitColor configures color output from the --no-color flag, the
// NO_COLOR convention and terminal detection.
func InitColor(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" || !IsTTY() {
		color.NoColor = true
	}
}
