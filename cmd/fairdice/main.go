// FairDice is a game of non-transitive dice with provably fair rolls.
// Usage: fairdice [--version] [--plain] [--script <file>] [--dice <file.lua>] [--simple-rolls] <die> <die> <die> [...]
package main

import (
	"fmt"
	"os"

	"github.com/nathoo/fairdice/cli"
	"github.com/nathoo/fairdice/engine"
	"github.com/nathoo/fairdice/engine/dice"
	"github.com/nathoo/fairdice/loader"
	"github.com/nathoo/fairdice/tui"
)

const usage = `Usage: fairdice [--version] [--plain] [--script <file>] [--dice <file.lua>] [--simple-rolls] <die> <die> <die> [...]

Each die is a comma-separated list of non-negative integer faces.
Example: fairdice 2,2,4,4,9,9 6,8,1,1,8,6 7,5,3,7,5,3`

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	simpleRolls := false
	var scriptFile string
	var diceFile string
	var diceArgs []string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("fairdice %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--simple-rolls":
			simpleRolls = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--dice":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--dice requires a file path\n")
				os.Exit(1)
			}
			i++
			diceFile = args[i]
		default:
			diceArgs = append(diceArgs, args[i])
		}
	}

	set, err := loadDice(diceFile, diceArgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s\n", err, usage)
		os.Exit(1)
	}

	game := engine.New(set)
	game.FairRolls = !simpleRolls

	// Script mode: open file, force plain, echo inputs.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(game)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use the plain CLI if --plain or stdout is not a terminal.
	if plain || !isTerminal() {
		cli.New(game).Run()
		return
	}

	if err := tui.Run(game); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadDice builds the dice set from a Lua file or command-line specs.
// Mixing both is rejected to keep the provenance of the set obvious.
func loadDice(diceFile string, diceArgs []string) ([]dice.Die, error) {
	if diceFile != "" {
		if len(diceArgs) > 0 {
			return nil, fmt.Errorf("--dice cannot be combined with die arguments")
		}
		return loader.LoadFile(diceFile)
	}
	return loader.Parse(diceArgs)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
