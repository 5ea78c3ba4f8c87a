package cmd

import (
	"os"
	"strconv"

	"github.com/muesli/termenv"
)

// colorMode is set by the --color flag: auto, always or never.
var colorMode = "auto"

// ANSI sequences used for plain (non-TUI) output. Empty when colors are off.
var (
	colorRed    string
	colorGreen  string
	colorYellow string
	colorCyan   string
	colorDim    string
	colorBold   string
	colorReset  string
)

func enableColors() {
	colorRed = "\033[0;31m"
	colorGreen = "\033[0;32m"
	colorYellow = "\033[0;33m"
	colorCyan = "\033[0;36m"
	colorDim = "\033[2m"
	colorBold = "\033[1m"
	colorReset = "\033[0m"
}

func disableColors() {
	colorRed, colorGreen, colorYellow, colorCyan = "", "", "", ""
	colorDim, colorBold, colorReset = "", "", ""
}

// applyColorMode resolves colorMode against the environment.
func applyColorMode() {
	switch colorMode {
	case "always":
		enableColors()
	case "never":
		disableColors()
	default:
		if shouldDisableColors() || getTermWidthIoctl() == 0 {
			disableColors()
		} else {
			enableColors()
		}
	}
}

// shouldDisableColors honors NO_COLOR, CLICOLOR=0 and TERM=dumb.
func shouldDisableColors() bool {
	if termenv.EnvNoColor() {
		return true
	}
	return os.Getenv("TERM") == "dumb"
}

// terminalWidth returns the width of stdout's terminal, then $COLUMNS, then 80.
func terminalWidth() int {
	if w := getTermWidthIoctl(); w > 0 {
		return w
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	return 80
}
