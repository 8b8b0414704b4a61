package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Terminal colours (ANSI 256).
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// StyleTitle renders section headings such as "Axes".
var StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

var (
	styleFaint   = lipgloss.NewStyle().Foreground(colorFaint)
	styleText    = lipgloss.NewStyle().Foreground(colorText)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorMuted).Bold(true).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// stdout receives all human-readable status output. Logs go to the
// logger's writer instead.
var stdout io.Writer = os.Stdout

// status prints one line led by a coloured marker.
func status(marker string, style lipgloss.Style, msg string) {
	fmt.Fprintln(stdout, style.Render(marker)+" "+msg)
}

func printSuccess(format string, args ...any) {
	status("✓", styleOK, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status("!", styleWarn, styleWarn.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status("›", styleMuted, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, faint line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+styleFaint.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(stdout, "  "+styleFaint.Render("→")+" "+styleText.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+styleText.Render(value))
}

// printStats summarises a pipeline run: series, points, resolver passes and
// whether the result came from the cache.
func printStats(series, points, iterations int, cached bool) {
	var parts []string
	if series > 0 {
		parts = append(parts, styleFaint.Render(fmt.Sprintf("%d series", series)))
	}
	if points > 0 {
		parts = append(parts, styleFaint.Render(fmt.Sprintf("%d points", points)))
	}
	if iterations > 0 {
		parts = append(parts, styleFaint.Render(fmt.Sprintf("%d layout passes", iterations)))
	}
	if cached {
		parts = append(parts, styleOK.Render("cached"))
	} else {
		parts = append(parts, styleMuted.Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, styleFaint.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, styleFaint.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }

// renderTable lays rows out under headers with a rounded border. Columns
// listed in right are right-aligned.
func renderTable(headers []string, rows [][]string, right ...int) string {
	alignRight := make(map[int]bool, len(right))
	for _, col := range right {
		alignRight[col] = true
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleFaint).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleTableHeader
			case alignRight[col]:
				return styleTableCell.Align(lipgloss.Right)
			default:
				return styleTableCell
			}
		}).
		Render()
}

func printTable(headers []string, rows [][]string, right ...int) {
	fmt.Fprintln(stdout, renderTable(headers, rows, right...))
}
