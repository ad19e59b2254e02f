package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kinview/kinview/pkg/kinship"
)

// Palette. Sex colours follow the box fills of the SVG renderer.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorPink   = lipgloss.Color("175")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle for headings such as the navigator's focus name.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for the person under discussion.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warnings and navigator notices.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(10)

	styleMale   = lipgloss.NewStyle().Foreground(colorBlue)
	styleFemale = lipgloss.NewStyle().Foreground(colorPink)
)

// styleSex colours a name by recorded sex.
func styleSex(sex kinship.Sex) lipgloss.Style {
	switch sex.Code() {
	case kinship.SexMale:
		return styleMale
	case kinship.SexFemale:
		return styleFemale
	}
	return StyleValue
}

// statusOut receives status lines. Command results go to cmd.OutOrStdout
// instead, so tests can capture them without the decoration.
var statusOut io.Writer = os.Stdout

func status(icon string, style lipgloss.Style, msg string) {
	fmt.Fprintln(statusOut, style.Render(icon)+" "+msg)
}

func printSuccess(format string, args ...any) {
	status("✓", styleIconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status("✗", styleIconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status("!", StyleWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status("›", styleIconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written file.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(statusOut, "  "+styleKey.Render(key)+StyleValue.Render(value))
}

// printStats prints "15 people · 9 shown · cached".
func printStats(people, boxes int, cached bool) {
	var parts []string
	if people > 0 {
		parts = append(parts, fmt.Sprintf("%d people", people))
	}
	if boxes > 0 {
		parts = append(parts, fmt.Sprintf("%d shown", boxes))
	}
	if cached {
		parts = append(parts, styleIconSuccess.Render("cached"))
	} else {
		parts = append(parts, "fresh")
	}
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// printNextStep suggests a follow-up command after a blank line.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut)
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
