// Package util holds the logger, the shared scraping HTTP client and the
// terminal helpers used by the goshinden binary.
package util

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	IsDebug bool

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4757")).
			Bold(true)

	debugErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF4757")).
			Padding(1, 2)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA726")).
			Bold(true)
)

// SetDebugMode sets the debug mode
func SetDebugMode(debug bool) {
	IsDebug = debug
}

// ErrorHandler returns a styled error message. In debug mode the full
// pkg/errors stack trace is printed inside a bordered box.
func ErrorHandler(err error) string {
	if err == nil {
		return ""
	}

	if IsDebug {
		header := errorStyle.Render("DEBUG ERROR")
		body := debugErrorStyle.Render(fmt.Sprintf("%+v", err))
		return fmt.Sprintf("%s\n%s", header, body)
	}

	styledError := errorStyle.Render(fmt.Sprintf("✗ %v", err))
	styledHint := warningStyle.Render("run the command with --debug to see details")
	return fmt.Sprintf("%s\n%s", styledError, styledHint)
}
