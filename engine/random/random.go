// Package random draws uniformly distributed integers from a
// cryptographically strong entropy source, free of modulo bias.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidRange indicates the requested range is not a positive
// integer representable in 32 bits.
var ErrInvalidRange = errors.New("range must be between 1 and 2^32")

// span is the number of distinct values of a 32-bit draw.
const span = int64(1) << 32

// Source draws random integers from an entropy reader.
type Source struct {
	r io.Reader
}

// NewSource creates a Source reading from r.
// A nil r means crypto/rand.Reader.
func NewSource(r io.Reader) *Source {
	if r == nil {
		r = crand.Reader
	}
	return &Source{r: r}
}

// Intn returns a uniform random integer in [0, n).
//
// Naive `draw mod n` is biased whenever n does not evenly divide 2^32,
// so draws above the largest multiple of n are rejected and retried.
// The expected number of draws is below 2 for any valid n.
func (s *Source) Intn(n int) (int, error) {
	if n < 1 || int64(n) > span {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRange, n)
	}

	threshold := span - span%int64(n)

	var buf [4]byte
	for {
		if _, err := io.ReadFull(s.r, buf[:]); err != nil {
			return 0, fmt.Errorf("reading entropy: %w", err)
		}
		r := int64(binary.BigEndian.Uint32(buf[:]))
		if r < threshold {
			return int(r % int64(n)), nil
		}
	}
}
