package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nathoo/fairdice/engine"
	"github.com/nathoo/fairdice/engine/dice"
	"github.com/nathoo/fairdice/types"
)

// zeroReader makes matches scriptable: all secrets are 0, so fair
// results equal the typed number.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func testGame(t *testing.T) *engine.Game {
	t.Helper()
	var set []dice.Die
	for _, faces := range [][]int{
		{2, 2, 4, 4, 9, 9},
		{1, 1, 6, 6, 8, 8},
		{3, 3, 5, 5, 7, 7},
	} {
		d, err := dice.New(faces)
		if err != nil {
			t.Fatalf("dice.New(%v) failed: %v", faces, err)
		}
		set = append(set, d)
	}
	g := engine.New(set)
	g.Entropy = zeroReader{}
	return g
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := &CLI{
		Game: testGame(t),
		In:   strings.NewReader(input),
		Out:  &out,
	}
	return c, &out
}

func TestCLI_OpeningPrompt(t *testing.T) {
	c, out := newTestCLI(t, "x\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Let's determine who makes the first move.") {
		t.Error("expected opening line")
	}
	if !strings.Contains(output, "HMAC=") {
		t.Error("expected commitment in output")
	}
	if !strings.Contains(output, "X - exit") {
		t.Error("expected exit option in menu")
	}
	if !strings.Contains(output, "? - help") {
		t.Error("expected help option in menu")
	}
	if !strings.Contains(output, "Your selection: ") {
		t.Error("expected selection prompt")
	}
}

func TestCLI_FullMatch(t *testing.T) {
	c, out := newTestCLI(t, "1\n0\n3\n4\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "You make the first move.") {
		t.Error("expected human to move first")
	}
	if !strings.Contains(output, "You win (9 > 5)!") {
		t.Errorf("expected human victory, got:\n%s", output)
	}
	if c.Game.Outcome() != types.OutcomeHumanWin {
		t.Errorf("outcome = %v, want human win", c.Game.Outcome())
	}
}

func TestCLI_Exit(t *testing.T) {
	c, out := newTestCLI(t, "x\n")
	c.Run()

	if !strings.Contains(out.String(), "The match was abandoned.") {
		t.Error("expected abandonment message")
	}
	if c.Game.Outcome() != types.OutcomeAborted {
		t.Errorf("outcome = %v, want aborted", c.Game.Outcome())
	}
}

func TestCLI_Help_RendersTable(t *testing.T) {
	c, out := newTestCLI(t, "?\nx\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Probability of the win for the user:") {
		t.Error("expected table heading")
	}
	if !strings.Contains(output, "User dice v") {
		t.Error("expected table header cell")
	}
	if !strings.Contains(output, "0.5556") {
		t.Error("expected probability cell")
	}
	if !strings.Contains(output, "+--") {
		t.Error("expected table separators")
	}
}

func TestCLI_InvalidInput(t *testing.T) {
	c, out := newTestCLI(t, "7\nx\n")
	c.Run()

	if !strings.Contains(out.String(), `Invalid selection: "7".`) {
		t.Errorf("expected rejection, got:\n%s", out.String())
	}
}

func TestCLI_SkipsBlankAndCommentLines(t *testing.T) {
	c, out := newTestCLI(t, "\n# a script comment\nx\n")
	c.Run()

	output := out.String()
	if strings.Contains(output, "Invalid selection") {
		t.Errorf("blank/comment lines should be skipped, got:\n%s", output)
	}
	if !strings.Contains(output, "The match was abandoned.") {
		t.Error("expected match to end on x")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "1\nx\n")
	c.EchoInput = true
	c.Run()

	if !strings.Contains(out.String(), "Your selection: 1\n") {
		t.Errorf("expected echoed input after prompt, got:\n%s", out.String())
	}
}

func TestCLI_InputExhausted(t *testing.T) {
	// Run must return when the input ends mid-match.
	c, _ := newTestCLI(t, "1\n")
	c.Run()

	if c.Game.Outcome() != types.OutcomeNone {
		t.Errorf("outcome = %v, want in progress", c.Game.Outcome())
	}
}
