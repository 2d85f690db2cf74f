// Package engine provides the Step() orchestrator that wires together
// the fair-random protocol, the dice probability model, and the match
// flow into a menu-driven game: toss for the first move, pick dice,
// roll, compare. Frontends feed player input to Step and render the
// returned Result; the engine never touches a terminal.
package engine

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nathoo/fairdice/engine/dice"
	"github.com/nathoo/fairdice/engine/fair"
	"github.com/nathoo/fairdice/engine/random"
	"github.com/nathoo/fairdice/types"
)

// phase tracks where the match is in its flow.
type phase int

const (
	phaseFirstMove phase = iota // awaiting the 0/1 guess for the toss
	phasePick                   // awaiting the human's die selection
	phaseRoll                   // awaiting the human's number for a roll
	phaseDone
)

// Game holds the dice set and the mutable match state.
type Game struct {
	Dice []dice.Die
	// FairRolls selects whether die rolls run the full commit-reveal
	// protocol (true) or bare secure draws with no commitment (false).
	// The first-move toss always uses the protocol.
	FairRolls bool
	// Entropy overrides the entropy source; nil means crypto/rand.
	Entropy io.Reader

	phase       phase
	session     *fair.Session
	prompt      string
	options     []types.Option
	humanFirst  bool
	humanDie    int // index into Dice, -1 until picked
	computerDie int
	rollStage   int // 0 = computer's roll, 1 = human's roll
	rolls       [2]int
	outcome     types.Outcome
}

// New creates a game over the given dice set with fair rolls enabled.
func New(set []dice.Die) *Game {
	return &Game{
		Dice:        set,
		FairRolls:   true,
		humanDie:    -1,
		computerDie: -1,
	}
}

// Outcome reports the match outcome, OutcomeNone while in progress.
func (g *Game) Outcome() types.Outcome { return g.outcome }

// PhaseLabel names the current phase for status display.
func (g *Game) PhaseLabel() string {
	switch g.phase {
	case phaseFirstMove:
		return "first move toss"
	case phasePick:
		return "dice selection"
	case phaseRoll:
		if g.rollStage == 0 {
			return "my roll"
		}
		return "your roll"
	default:
		return "finished"
	}
}

// HumanDie returns the human's die once picked.
func (g *Game) HumanDie() (dice.Die, bool) {
	if g.humanDie < 0 {
		return dice.Die{}, false
	}
	return g.Dice[g.humanDie], true
}

// ComputerDie returns the computer's die once picked.
func (g *Game) ComputerDie() (dice.Die, bool) {
	if g.computerDie < 0 {
		return dice.Die{}, false
	}
	return g.Dice[g.computerDie], true
}

// Start begins the match with the first-move toss and returns the
// opening prompt.
func (g *Game) Start() types.Result {
	var r types.Result
	r.Output = append(r.Output, "Let's determine who makes the first move.")

	if !g.openSession(2, &r) {
		return r
	}
	g.phase = phaseFirstMove
	g.setPrompt(&r, "Try to guess my selection.", g.numberOptions(2))
	return r
}

// Step processes one line of player input and advances the match.
func (g *Game) Step(input string) types.Result {
	var r types.Result
	in := strings.ToLower(strings.TrimSpace(input))

	if g.phase == phaseDone {
		r.Output = append(r.Output, "The match is over.")
		r.Done = true
		return r
	}

	switch in {
	case "?":
		r.Output = append(r.Output, "Probability of the win for the user:")
		r.Table = g.ProbabilityTable()
		g.reprompt(&r)
		return r
	case "x":
		return g.abort(r)
	}

	switch g.phase {
	case phaseFirstMove:
		return g.stepFirstMove(in, r)
	case phasePick:
		return g.stepPick(in, r)
	case phaseRoll:
		return g.stepRoll(in, r)
	}
	return r
}

// stepFirstMove resolves the range-2 toss deciding who picks first.
func (g *Game) stepFirstMove(in string, r types.Result) types.Result {
	v, ok := g.parseSelection(in, 2, &r)
	if !ok {
		return r
	}

	result, ok := g.resolveSession(v, &r)
	if !ok {
		return r
	}

	// Toss result 1 puts the human first; 0 the computer.
	g.humanFirst = result == 1
	if g.humanFirst {
		r.Output = append(r.Output, "You make the first move.")
		g.promptPick(&r)
		return r
	}

	g.computerDie = g.computerFirstPick()
	r.Output = append(r.Output,
		fmt.Sprintf("I make the first move and choose the [%s] dice.", g.Dice[g.computerDie]))
	g.promptPick(&r)
	return r
}

// stepPick resolves the human's die selection and, when the human
// moved first, the computer's counter-pick.
func (g *Game) stepPick(in string, r types.Result) types.Result {
	avail := g.availableDice()
	v, ok := g.parseSelection(in, len(avail), &r)
	if !ok {
		return r
	}

	g.humanDie = avail[v]
	r.Output = append(r.Output, fmt.Sprintf("You choose the [%s] dice.", g.Dice[g.humanDie]))

	if g.computerDie < 0 {
		g.computerDie = g.computerCounterPick(g.humanDie)
		r.Output = append(r.Output, fmt.Sprintf("I choose the [%s] dice.", g.Dice[g.computerDie]))
	}

	g.rollStage = 0
	g.beginRoll(&r)
	return r
}

// stepRoll resolves one commit-reveal roll with the human's number.
func (g *Game) stepRoll(in string, r types.Result) types.Result {
	die := g.rollingDie()
	v, ok := g.parseSelection(in, die.Sides(), &r)
	if !ok {
		return r
	}

	result, ok := g.resolveSession(v, &r)
	if !ok {
		return r
	}

	g.recordRoll(die.Face(result), &r)
	return r
}

// beginRoll starts the pending roll: a fair session over the die's
// side count, or a bare draw when FairRolls is off.
func (g *Game) beginRoll(r *types.Result) {
	die := g.rollingDie()

	if g.rollStage == 0 {
		r.Output = append(r.Output, "It's time for my roll.")
	} else {
		r.Output = append(r.Output, "It's time for your roll.")
	}

	if !g.FairRolls {
		idx, err := random.NewSource(g.Entropy).Intn(die.Sides())
		if err != nil {
			g.fail(err, r)
			return
		}
		g.recordRoll(die.Face(idx), r)
		return
	}

	if !g.openSession(die.Sides(), r) {
		return
	}
	g.phase = phaseRoll
	g.setPrompt(r, fmt.Sprintf("Add your number modulo %d.", die.Sides()), g.numberOptions(die.Sides()))
}

// recordRoll stores a face value for the current stage and either
// starts the next roll or finishes the match.
func (g *Game) recordRoll(face int, r *types.Result) {
	g.rolls[g.rollStage] = face
	if g.rollStage == 0 {
		r.Output = append(r.Output, fmt.Sprintf("My roll result is %d.", face))
		g.rollStage = 1
		g.beginRoll(r)
		return
	}

	r.Output = append(r.Output, fmt.Sprintf("Your roll result is %d.", face))
	g.finish(r)
}

// finish compares the two rolls and announces the verdict.
func (g *Game) finish(r *types.Result) {
	mine, yours := g.rolls[0], g.rolls[1]
	switch {
	case yours > mine:
		g.outcome = types.OutcomeHumanWin
		r.Output = append(r.Output, fmt.Sprintf("You win (%d > %d)!", yours, mine))
	case mine > yours:
		g.outcome = types.OutcomeComputerWin
		r.Output = append(r.Output, fmt.Sprintf("I win (%d > %d)!", mine, yours))
	default:
		g.outcome = types.OutcomeTie
		r.Output = append(r.Output, fmt.Sprintf("It's a tie (%d = %d)!", mine, yours))
	}
	g.phase = phaseDone
	r.Done = true
}

// abort cancels the in-flight session and ends the match. The session
// reveals nothing; only its already-published commitment was observable.
func (g *Game) abort(r types.Result) types.Result {
	if g.session != nil {
		g.session.Cancel()
		g.session = nil
	}
	g.outcome = types.OutcomeAborted
	g.phase = phaseDone
	r.Output = append(r.Output, "The match was abandoned.")
	r.Done = true
	return r
}

// fail surfaces an internal error (entropy failure, protocol misuse)
// and terminates the match.
func (g *Game) fail(err error, r *types.Result) {
	g.outcome = types.OutcomeAborted
	g.phase = phaseDone
	r.Output = append(r.Output, fmt.Sprintf("The match cannot continue: %v.", err))
	r.Done = true
}

// openSession starts a fair draw over [0, n) and outputs the
// commitment line. Returns false when session setup failed.
func (g *Game) openSession(n int, r *types.Result) bool {
	s, err := fair.NewSession(n, g.Entropy)
	if err != nil {
		g.fail(err, r)
		return false
	}
	g.session = s
	r.Output = append(r.Output,
		fmt.Sprintf("I selected a random value in the range 0..%d (HMAC=%s).", n-1, s.Commitment()))
	return true
}

// resolveSession submits the human's value, computes the combined
// result, and outputs the reveal lines. Returns false on failure.
func (g *Game) resolveSession(v int, r *types.Result) (int, bool) {
	s := g.session
	result, err := s.Submit(v)
	if err != nil {
		g.fail(err, r)
		return 0, false
	}
	rev, err := s.Reveal()
	if err != nil {
		g.fail(err, r)
		return 0, false
	}
	g.session = nil

	r.Output = append(r.Output,
		fmt.Sprintf("My number is %d (KEY=%s).", rev.Value, rev.Key),
		fmt.Sprintf("The fair number generation result is %d + %d = %d (mod %d).",
			rev.Value, v, result, s.Range()))
	return result, true
}

// parseSelection maps input to an integer menu choice in [0, n).
// Invalid input re-prompts without advancing the protocol.
func (g *Game) parseSelection(in string, n int, r *types.Result) (int, bool) {
	v, err := strconv.Atoi(in)
	if err != nil || v < 0 || v >= n {
		r.Output = append(r.Output, fmt.Sprintf("Invalid selection: %q.", in))
		g.reprompt(r)
		return 0, false
	}
	return v, true
}

// promptPick asks the human to choose among the dice not yet taken.
func (g *Game) promptPick(r *types.Result) {
	avail := g.availableDice()
	opts := make([]types.Option, 0, len(avail)+2)
	for i, idx := range avail {
		opts = append(opts, types.Option{Key: strconv.Itoa(i), Label: g.Dice[idx].String()})
	}
	opts = append(opts, exitHelpOptions()...)
	g.phase = phasePick
	g.setPrompt(r, "Choose your dice:", opts)
}

// setPrompt records the active prompt so it can be replayed after help
// or invalid input.
func (g *Game) setPrompt(r *types.Result, prompt string, opts []types.Option) {
	g.prompt = prompt
	g.options = opts
	r.Prompt = prompt
	r.Options = opts
}

// reprompt replays the active prompt.
func (g *Game) reprompt(r *types.Result) {
	r.Prompt = g.prompt
	r.Options = g.options
}

// numberOptions builds the 0..n-1 menu plus exit and help entries.
func (g *Game) numberOptions(n int) []types.Option {
	opts := make([]types.Option, 0, n+2)
	for i := 0; i < n; i++ {
		opts = append(opts, types.Option{Key: strconv.Itoa(i), Label: strconv.Itoa(i)})
	}
	return append(opts, exitHelpOptions()...)
}

func exitHelpOptions() []types.Option {
	return []types.Option{
		{Key: "X", Label: "exit"},
		{Key: "?", Label: "help"},
	}
}

// availableDice returns the indices of dice not yet taken, in order.
func (g *Game) availableDice() []int {
	var avail []int
	for i := range g.Dice {
		if i != g.humanDie && i != g.computerDie {
			avail = append(avail, i)
		}
	}
	return avail
}

// rollingDie returns the die being rolled at the current stage.
func (g *Game) rollingDie() dice.Die {
	if g.rollStage == 0 {
		return g.Dice[g.computerDie]
	}
	return g.Dice[g.humanDie]
}

// computerFirstPick chooses the die with the best worst-case win
// probability against the dice the human could still take.
func (g *Game) computerFirstPick() int {
	best, bestScore := 0, -1.0
	for i := range g.Dice {
		worst := 1.0
		for j := range g.Dice {
			if j == i {
				continue
			}
			if p := dice.WinProbability(g.Dice[i], g.Dice[j]); p < worst {
				worst = p
			}
		}
		if worst > bestScore {
			best, bestScore = i, worst
		}
	}
	return best
}

// computerCounterPick chooses the remaining die most likely to beat
// the human's pick.
func (g *Game) computerCounterPick(human int) int {
	best, bestScore := -1, -1.0
	for i := range g.Dice {
		if i == human {
			continue
		}
		if p := dice.WinProbability(g.Dice[i], g.Dice[human]); p > bestScore {
			best, bestScore = i, p
		}
	}
	return best
}

// ProbabilityTable builds the pairwise win-probability table: one row
// per user die, one column per computer die. The diagonal (a die
// against itself) is parenthesized since that pairing cannot occur.
func (g *Game) ProbabilityTable() [][]string {
	header := make([]string, 0, len(g.Dice)+1)
	header = append(header, "User dice v")
	for _, d := range g.Dice {
		header = append(header, d.String())
	}

	table := [][]string{header}
	for i, a := range g.Dice {
		row := make([]string, 0, len(g.Dice)+1)
		row = append(row, a.String())
		for j, b := range g.Dice {
			p := dice.WinProbability(a, b)
			if i == j {
				row = append(row, fmt.Sprintf("(%.4f)", p))
			} else {
				row = append(row, fmt.Sprintf("%.4f", p))
			}
		}
		table = append(table, row)
	}
	return table
}
