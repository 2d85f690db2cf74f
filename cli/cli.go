// Package cli provides plain terminal I/O and output formatting for
// the FairDice game: prompt → input → step → output, no styling.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/fairdice/engine"
	"github.com/nathoo/fairdice/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Game      *engine.Game
	In        io.Reader
	Out       io.Writer
	EchoInput bool // echo each input line after the prompt (for script playback)
}

// New creates a CLI wired to the given game.
func New(g *engine.Game) *CLI {
	return &CLI{
		Game: g,
		In:   os.Stdin,
		Out:  os.Stdout,
	}
}

// Run plays one match: print the opening prompt, then loop reading
// input and stepping the game until it finishes or input runs out.
func (c *CLI) Run() {
	result := c.Game.Start()
	c.printResult(result)
	if result.Done {
		return
	}

	scanner := bufio.NewScanner(c.In)
	for {
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		result = c.Game.Step(input)
		c.printResult(result)
		if result.Done {
			return
		}
	}
}

// printResult renders output lines, the probability table if present,
// and the active prompt menu.
func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
	if result.Table != nil {
		c.printTable(result.Table)
	}
	if result.Prompt != "" {
		c.printLine(result.Prompt)
		for _, opt := range result.Options {
			c.printLine(fmt.Sprintf("%s - %s", opt.Key, opt.Label))
		}
		c.print("Your selection: ")
	}
}

// printTable renders the win-probability table with aligned columns.
func (c *CLI) printTable(table [][]string) {
	if len(table) == 0 {
		return
	}

	widths := make([]int, len(table[0]))
	for _, row := range table {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	sep := tableSeparator(widths)
	c.printLine(sep)
	for _, row := range table {
		var b strings.Builder
		for i, cell := range row {
			fmt.Fprintf(&b, "| %-*s ", widths[i], cell)
		}
		b.WriteString("|")
		c.printLine(b.String())
		c.printLine(sep)
	}
}

// tableSeparator builds the +---+---+ row for the given column widths.
func tableSeparator(widths []int) string {
	var b strings.Builder
	for _, w := range widths {
		b.WriteString("+")
		b.WriteString(strings.Repeat("-", w+2))
	}
	b.WriteString("+")
	return b.String()
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}
