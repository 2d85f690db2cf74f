package random

import (
	"bytes"
	"errors"
	"testing"
)

func TestIntn_Range(t *testing.T) {
	src := NewSource(nil)

	for i := 0; i < 1000; i++ {
		v, err := src.Intn(6)
		if err != nil {
			t.Fatalf("Intn(6) failed: %v", err)
		}
		if v < 0 || v > 5 {
			t.Fatalf("value out of range [0,6): got %d", v)
		}
	}
}

func TestIntn_RangeOne(t *testing.T) {
	src := NewSource(nil)

	for i := 0; i < 10; i++ {
		v, err := src.Intn(1)
		if err != nil {
			t.Fatalf("Intn(1) failed: %v", err)
		}
		if v != 0 {
			t.Fatalf("range 1 should always yield 0, got %d", v)
		}
	}
}

func TestIntn_InvalidRange(t *testing.T) {
	src := NewSource(nil)

	for _, n := range []int{0, -1, -100} {
		if _, err := src.Intn(n); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("Intn(%d): expected ErrInvalidRange, got %v", n, err)
		}
	}
}

func TestIntn_Uniform(t *testing.T) {
	// Non-power-of-two ranges exercise the rejection path.
	for _, n := range []int{2, 3, 6, 7} {
		src := NewSource(nil)
		counts := make([]int, n)

		const trials = 30000
		for i := 0; i < trials; i++ {
			v, err := src.Intn(n)
			if err != nil {
				t.Fatalf("Intn(%d) failed: %v", n, err)
			}
			counts[v]++
		}

		// Each bucket should hold roughly trials/n. A 20% margin is
		// far beyond any plausible statistical fluctuation at 30k
		// trials while still catching a systematic bias.
		expected := trials / n
		for v, c := range counts {
			if c < expected*8/10 || c > expected*12/10 {
				t.Errorf("Intn(%d): value %d drawn %d times, expected ~%d", n, v, c, expected)
			}
		}
	}
}

func TestIntn_RejectsBiasedTail(t *testing.T) {
	// Feed a draw above the rejection threshold for n=3 followed by a
	// draw below it. 2^32 mod 3 = 1, so threshold = 2^32 - 1 and only
	// 0xFFFFFFFF is rejected.
	input := bytes.NewReader([]byte{
		0xFF, 0xFF, 0xFF, 0xFF, // rejected
		0x00, 0x00, 0x00, 0x05, // accepted: 5 mod 3 = 2
	})
	src := NewSource(input)

	v, err := src.Intn(3)
	if err != nil {
		t.Fatalf("Intn(3) failed: %v", err)
	}
	if v != 2 {
		t.Fatalf("expected 2 after rejecting tail draw, got %d", v)
	}
	if input.Len() != 0 {
		t.Fatalf("expected both draws consumed, %d bytes left", input.Len())
	}
}

func TestIntn_EntropyExhausted(t *testing.T) {
	src := NewSource(bytes.NewReader([]byte{0x01, 0x02}))

	if _, err := src.Intn(6); err == nil {
		t.Fatal("expected error when entropy source runs dry")
	}
}
