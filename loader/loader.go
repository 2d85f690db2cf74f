// Package loader constructs validated dice sets from command-line
// specifications and from Lua dice-set files. All input validation
// lives here: the game engine only ever sees well-formed dice.
package loader

import (
	"fmt"

	"github.com/nathoo/fairdice/engine/dice"
	lua "github.com/yuin/gopher-lua"
)

// MinDice is the smallest dice set for a well-posed match: the first
// mover picks one, the counterpart picks another, and at least one die
// must remain unchosen for the choice to matter.
const MinDice = 3

// LoadFile executes a Lua dice-set file in a sandboxed VM and returns
// the declared dice. Each `Die {2,2,4,4,9,9}` call declares one die, in
// file order. The VM is discarded after loading.
func LoadFile(path string) ([]dice.Die, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Open safe libs only; a dice file needs no I/O.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenMath(L)
	sandbox(L)

	var faceLists [][]int
	var declErr error

	L.SetGlobal("Die", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		var faces []int
		tbl.ForEach(func(_, v lua.LValue) {
			n, ok := v.(lua.LNumber)
			if !ok || float64(n) != float64(int(n)) {
				if declErr == nil {
					declErr = fmt.Errorf("die %d: face %q is not an integer", len(faceLists)+1, v.String())
				}
				return
			}
			faces = append(faces, int(n))
		})
		faceLists = append(faceLists, faces)
		return 0
	}))

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("executing %s: %w", path, err)
	}
	if declErr != nil {
		return nil, fmt.Errorf("loading %s: %w", path, declErr)
	}

	set, err := buildSet(faceLists)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return set, nil
}

// sandbox removes base globals a dice file has no business calling.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
}

// buildSet turns raw face lists into dice and enforces set-level rules.
func buildSet(faceLists [][]int) ([]dice.Die, error) {
	set := make([]dice.Die, 0, len(faceLists))
	for i, faces := range faceLists {
		d, err := dice.New(faces)
		if err != nil {
			return nil, fmt.Errorf("die %d: %w", i+1, err)
		}
		set = append(set, d)
	}
	if len(set) < MinDice {
		return nil, fmt.Errorf("at least %d dice are required, got %d (example: 2,2,4,4,9,9 6,8,1,1,8,6 7,5,3,7,5,3)",
			MinDice, len(set))
	}
	return set, nil
}
