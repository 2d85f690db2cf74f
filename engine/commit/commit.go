// Package commit implements the keyed commitment scheme used for fair
// random draws: a party publishes an HMAC-SHA3-256 tag over its secret
// value before the counterpart acts, then reveals value and key so the
// counterpart can check that nothing changed after the fact.
package commit

import (
	"crypto/hmac"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"
)

// KeySize is the length in bytes of a commitment key.
const KeySize = 32

// Size is the length in bytes of a commitment tag.
const Size = 32

// Key is the secret MAC key for one commitment. Keys are generated
// fresh per commitment and never reused; reuse weakens the hiding
// guarantee across sessions.
type Key [KeySize]byte

// Commitment is the published HMAC tag binding a party to its secret
// value. Immutable once shown.
type Commitment [Size]byte

// NewKey draws a fresh key from r. A nil r means crypto/rand.Reader.
func NewKey(r io.Reader) (Key, error) {
	if r == nil {
		r = crand.Reader
	}
	var k Key
	if _, err := io.ReadFull(r, k[:]); err != nil {
		return Key{}, fmt.Errorf("reading key material: %w", err)
	}
	return k, nil
}

// Commit computes the commitment tag for value under key: an
// HMAC-SHA3-256 over the 4-byte big-endian encoding of value.
// The same inputs always yield the same tag.
func Commit(value uint32, key Key) Commitment {
	var msg [4]byte
	binary.BigEndian.PutUint32(msg[:], value)

	mac := hmac.New(sha3.New256, key[:])
	mac.Write(msg[:])

	var c Commitment
	copy(c[:], mac.Sum(nil))
	return c
}

// Verify reports whether c is the commitment to value under key.
func (c Commitment) Verify(value uint32, key Key) bool {
	expected := Commit(value, key)
	return hmac.Equal(c[:], expected[:])
}

// String renders the tag as uppercase hex for display.
func (c Commitment) String() string {
	return fmt.Sprintf("%X", c[:])
}

// String renders the key as uppercase hex for display at reveal time.
func (k Key) String() string {
	return fmt.Sprintf("%X", k[:])
}
