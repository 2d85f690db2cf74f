// Package fair runs one instance of the two-party fair random draw:
// commit to a secret value, show the commitment, take the counterpart's
// value, combine modulo the range, then reveal value and key for
// verification.
package fair

import (
	"errors"
	"fmt"
	"io"

	"github.com/nathoo/fairdice/engine/commit"
	"github.com/nathoo/fairdice/engine/random"
)

// Session errors. ErrCounterpartTimeout is never returned by the
// session itself (it does not block); it is the sentinel for callers
// that impose a deadline while waiting for the counterpart's value.
var (
	ErrOutOfRange         = errors.New("counterpart value out of range")
	ErrCommitmentMismatch = errors.New("revealed value does not match commitment")
	ErrCounterpartTimeout = errors.New("timed out waiting for counterpart value")
	ErrBadState           = errors.New("protocol step out of order")
)

// State is a session's position in the protocol lifecycle.
type State int

const (
	// StateCommitted: secret value and commitment exist but the
	// commitment has not been shown to the counterpart yet.
	StateCommitted State = iota
	// StateAwaitingValue: commitment shown; waiting for the
	// counterpart's value.
	StateAwaitingValue
	// StateRevealed: result computed, secret value and key disclosed.
	StateRevealed
	// StateCancelled: abandoned before reveal. Terminal; nothing
	// beyond the already-published commitment is observable.
	StateCancelled
)

// Reveal is the material disclosed after the counterpart's value is
// fixed, enabling independent verification of the commitment.
type Reveal struct {
	Value int
	Key   commit.Key
}

// Session is one two-party fair draw over [0, n). Sessions are
// single-use: the secret value and key are generated fresh at
// construction and discarded after reveal.
type Session struct {
	n          int
	secret     int
	key        commit.Key
	commitment commit.Commitment
	result     int
	state      State
}

// NewSession generates fresh key material and a uniform secret value in
// [0, n), and computes the commitment. entropy may be nil for
// crypto/rand. Fails with random.ErrInvalidRange when n < 1.
func NewSession(n int, entropy io.Reader) (*Session, error) {
	secret, err := random.NewSource(entropy).Intn(n)
	if err != nil {
		return nil, err
	}
	key, err := commit.NewKey(entropy)
	if err != nil {
		return nil, err
	}
	return &Session{
		n:          n,
		secret:     secret,
		key:        key,
		commitment: commit.Commit(uint32(secret), key),
		state:      StateCommitted,
	}, nil
}

// Range returns the session's range n.
func (s *Session) Range() int { return s.n }

// State returns the session's lifecycle state.
func (s *Session) State() State { return s.state }

// Commitment returns the tag to show the counterpart and moves the
// session to StateAwaitingValue. The counterpart's value cannot be
// submitted before this is called: the commitment must be shown first,
// or the committing party could change its secret after seeing the
// counterpart's input.
func (s *Session) Commitment() commit.Commitment {
	if s.state == StateCommitted {
		s.state = StateAwaitingValue
	}
	return s.commitment
}

// Submit fixes the counterpart's value and computes the combined
// result (secret + v) mod n. Values outside [0, n) are rejected with
// ErrOutOfRange before combining. Calling Submit before the commitment
// has been shown, or twice, fails with ErrBadState.
func (s *Session) Submit(v int) (int, error) {
	if s.state != StateAwaitingValue {
		return 0, fmt.Errorf("%w: submit in state %d", ErrBadState, s.state)
	}
	if v < 0 || v >= s.n {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, v, s.n)
	}
	s.result = (s.secret + v) % s.n
	s.state = StateRevealed
	return s.result, nil
}

// Reveal discloses the secret value and key. Only valid once the
// counterpart's value has been submitted.
func (s *Session) Reveal() (Reveal, error) {
	if s.state != StateRevealed {
		return Reveal{}, fmt.Errorf("%w: reveal in state %d", ErrBadState, s.state)
	}
	return Reveal{Value: s.secret, Key: s.key}, nil
}

// Result returns the combined result. Only valid after Submit.
func (s *Session) Result() (int, error) {
	if s.state != StateRevealed {
		return 0, fmt.Errorf("%w: result in state %d", ErrBadState, s.state)
	}
	return s.result, nil
}

// Cancel abandons the session before reveal. A cancelled session
// discloses nothing beyond the commitment it may have published.
// Cancelling a revealed session has no effect.
func (s *Session) Cancel() {
	if s.state != StateRevealed {
		s.state = StateCancelled
	}
}

// VerifyReveal checks a counterpart's reveal against its published
// commitment. A mismatch means the committing party changed its value
// after committing and is reported as ErrCommitmentMismatch — a
// protocol violation, never silently accepted.
func VerifyReveal(c commit.Commitment, value int, key commit.Key) error {
	if value < 0 || !c.Verify(uint32(value), key) {
		return ErrCommitmentMismatch
	}
	return nil
}
