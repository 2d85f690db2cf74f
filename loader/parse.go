package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/fairdice/engine/dice"
)

// Parse builds a dice set from command-line arguments, one die per
// argument as a comma-separated face list: "2,2,4,4,9,9". Errors name
// the offending argument so the player can fix the invocation.
func Parse(args []string) ([]dice.Die, error) {
	faceLists := make([][]int, 0, len(args))
	for i, arg := range args {
		faces, err := parseDie(arg)
		if err != nil {
			return nil, fmt.Errorf("die %d (%q): %w", i+1, arg, err)
		}
		faceLists = append(faceLists, faces)
	}
	return buildSet(faceLists)
}

// parseDie parses one comma-separated face list.
func parseDie(arg string) ([]int, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, fmt.Errorf("empty die specification")
	}

	parts := strings.Split(arg, ",")
	faces := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("face %q must be a non-negative integer", part)
		}
		if v < 0 {
			return nil, fmt.Errorf("face %d must be non-negative", v)
		}
		faces = append(faces, v)
	}
	return faces, nil
}
