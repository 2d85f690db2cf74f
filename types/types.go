// Package types defines the shared data structures for the FairDice game.
// This package contains only type definitions — no logic, no methods.
package types

// Option is one selectable entry in a prompt menu.
type Option struct {
	Key   string // what the player types ("0", "1", "x", "?")
	Label string
}

// Result is the output of a single game step.
type Result struct {
	Output  []string   // narration lines
	Prompt  string     // non-empty while the game waits for input
	Options []Option   // menu entries valid for the prompt
	Table   [][]string // win-probability table (header row first), set after help
	Done    bool       // match finished (win, loss, tie, or exit)
}

// Outcome summarizes a finished match.
type Outcome int

const (
	OutcomeNone Outcome = iota // match still in progress
	OutcomeHumanWin
	OutcomeComputerWin
	OutcomeTie
	OutcomeAborted // player exited mid-match
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHumanWin:
		return "human win"
	case OutcomeComputerWin:
		return "computer win"
	case OutcomeTie:
		return "tie"
	case OutcomeAborted:
		return "aborted"
	default:
		return "in progress"
	}
}
