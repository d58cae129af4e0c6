package ui

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncateRunesHelper(t *testing.T) {
	tests := []struct {
		in     string
		width  int
		suffix string
		want   string
	}{
		{"hello", 10, "…", "hello"},
		{"hello world", 6, "…", "hello…"},
		{"hello", 0, "…", ""},
		{"hello", 1, "...", "."},
		{"日本語テキスト", 5, "…", "日本…"},
	}
	for _, tt := range tests {
		if got := truncateRunesHelper(tt.in, tt.width, tt.suffix); got != tt.want {
			t.Errorf("truncateRunesHelper(%q, %d, %q) = %q, want %q", tt.in, tt.width, tt.suffix, got, tt.want)
		}
	}
}

func TestFitCell(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 7, "  abc  "},
		{"abc", 6, " abc  "},
		{"abcdef", 4, "abc…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		got := fitCell(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("fitCell(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if tt.width > 0 && runewidth.StringWidth(got) != tt.width {
			t.Errorf("fitCell(%q, %d) has width %d", tt.in, tt.width, runewidth.StringWidth(got))
		}
	}
}

func TestResolveColor(t *testing.T) {
	for _, token := range []string{"#00af3d", "#fff", "green", "grey"} {
		if _, ok := resolveColor(token); !ok {
			t.Errorf("resolveColor(%q) failed", token)
		}
	}
	if _, ok := resolveColor("not-a-colour"); ok {
		t.Error("expected unknown token to fail")
	}
}
