package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleProtocol = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	styleMenu = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleVerdict = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTableBorder = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	styleTableHeader = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1)

	styleTableCell = lipgloss.NewStyle().
			Padding(0, 1)
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindProtocol
	kindMenu
	kindVerdict
	kindError
	kindSystem
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.Contains(line, "HMAC=") || strings.Contains(line, "KEY="),
		strings.HasPrefix(line, "The fair number generation result"):
		return kindProtocol
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Invalid selection"),
		strings.HasPrefix(line, "The match cannot continue"):
		return kindError
	case strings.Contains(line, "win ("),
		strings.HasPrefix(line, "It's a tie"),
		strings.HasPrefix(line, "The match was abandoned"):
		return kindVerdict
	case isMenuLine(line):
		return kindMenu
	default:
		return kindNarration
	}
}

// isMenuLine matches rendered option entries like "0 - 0" or "X - exit".
func isMenuLine(line string) bool {
	i := strings.Index(line, " - ")
	if i <= 0 {
		return false
	}
	key := line[:i]
	return len(key) <= 2 && !strings.Contains(key, " ")
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindProtocol:
		return styleProtocol.Render(line)
	case kindMenu:
		return styleMenu.Render(line)
	case kindVerdict:
		return styleVerdict.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	default:
		return styleNarration.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
