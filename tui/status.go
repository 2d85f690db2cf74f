package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing
// the game title, the current phase, and the picked dice.
func (m Model) renderStatusBar() string {
	left := " FairDice | " + m.game.PhaseLabel()

	var picks []string
	if d, ok := m.game.HumanDie(); ok {
		picks = append(picks, fmt.Sprintf("You: [%s]", d))
	}
	if d, ok := m.game.ComputerDie(); ok {
		picks = append(picks, fmt.Sprintf("Me: [%s]", d))
	}
	right := ""
	if len(picks) > 0 {
		right = strings.Join(picks, " ") + " "
	}

	// Drop the dice summary when the terminal is too narrow for both.
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = m.width - lipgloss.Width(left)
		if gap < 0 {
			gap = 0
		}
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
