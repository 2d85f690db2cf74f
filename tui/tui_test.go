package tui

import (
	"strings"
	"testing"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"I selected a random value in the range 0..5 (HMAC=AB12).", kindProtocol},
		{"My number is 3 (KEY=FF00).", kindProtocol},
		{"The fair number generation result is 3 + 4 = 1 (mod 6).", kindProtocol},
		{"You win (9 > 5)!", kindVerdict},
		{"I win (9 > 5)!", kindVerdict},
		{"It's a tie (5 = 5)!", kindVerdict},
		{"The match was abandoned.", kindVerdict},
		{`Invalid selection: "abc".`, kindError},
		{"The match cannot continue: entropy failure.", kindError},
		{"0 - 0", kindMenu},
		{"X - exit", kindMenu},
		{"? - help", kindMenu},
		{"1 - 1,1,6,6,8,8", kindMenu},
		{"[Game saved]", kindSystem},
		{"Let's determine who makes the first move.", kindNarration},
		{"It's time for my roll.", kindNarration},
		{"", kindNarration},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsMenuLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"0 - 0", true},
		{"X - exit", true},
		{"12 - something", true},
		{"My number is 3 - ish", false}, // key segment contains spaces
		{"no dash here", false},
		{" - leading", false},
	}
	for _, tt := range tests {
		if got := isMenuLine(tt.line); got != tt.want {
			t.Errorf("isMenuLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	rendered := renderTable([][]string{
		{"User dice v", "1,2,3", "4,5,6"},
		{"1,2,3", "(0.3333)", "0.0000"},
		{"4,5,6", "1.0000", "(0.3333)"},
	})

	if !strings.Contains(rendered, "User dice v") {
		t.Error("expected header in rendered table")
	}
	if !strings.Contains(rendered, "0.0000") {
		t.Error("expected probability cell in rendered table")
	}
	if !strings.Contains(rendered, "─") {
		t.Error("expected border characters in rendered table")
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := renderTable(nil); got != "" {
		t.Errorf("renderTable(nil) = %q, want empty", got)
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"one two three four", 9, "one two\nthree\nfour"},
		{"exact fit", 9, "exact fit"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := wordWrap(tt.text, tt.width); got != tt.want {
			t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestHistory_PushPrevNext(t *testing.T) {
	h := NewHistory(3)
	h.Push("1")
	h.Push("0")
	h.Push("0") // consecutive duplicate dropped

	if got, ok := h.Prev(); !ok || got != "0" {
		t.Fatalf("Prev = %q, %v; want 0, true", got, ok)
	}
	if got, ok := h.Prev(); !ok || got != "1" {
		t.Fatalf("Prev = %q, %v; want 1, true", got, ok)
	}
	if got, ok := h.Next(); !ok || got != "0" {
		t.Fatalf("Next = %q, %v; want 0, true", got, ok)
	}
	if _, ok := h.Next(); ok {
		t.Fatal("Next past the most recent entry should report false")
	}
}

func TestHistory_Eviction(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c")

	h.ResetCursor()
	first, _ := h.Prev()
	second, _ := h.Prev()
	if first != "c" || second != "b" {
		t.Fatalf("got %q, %q; want c, b", first, second)
	}
	if got, _ := h.Prev(); got != "b" {
		t.Fatalf("oldest surviving entry should be b, got %q", got)
	}
}
