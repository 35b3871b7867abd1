package slugs

import (
	"strings"
	"testing"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain title", "Meeting Notes", "Meeting Notes"},
		{"invalid characters stripped", `What? A/B "test": <ok>|maybe*`, "What AB test okmaybe"},
		{"surrounding whitespace", "  padded  ", "padded"},
		{"empty becomes placeholder", "", "Untitled"},
		{"only invalid characters", `\/:*?"<>|`, "Untitled"},
		{"unicode preserved", "Réunion déjeuner", "Réunion déjeuner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.input); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeTitleCapsLength(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := SanitizeTitle(long)
	if len([]rune(got)) != MaxTitleLength {
		t.Errorf("expected %d runes, got %d", MaxTitleLength, len([]rune(got)))
	}
}

func TestIsPlaceholder(t *testing.T) {
	for _, s := range []string{"", "Untitled", "untitled", "Untitled 2", "New Document", "New Document 12", " new document "} {
		if !IsPlaceholder(s) {
			t.Errorf("expected %q to be a placeholder", s)
		}
	}
	for _, s := range []string{"Untitled Poem", "Notes", "2025-01-02"} {
		if IsPlaceholder(s) {
			t.Errorf("expected %q to not be a placeholder", s)
		}
	}
}

func TestSyntheticName(t *testing.T) {
	got := SyntheticName("ABCDEF01-2345-6789")
	if got != "untitled-abcdef01" {
		t.Errorf("SyntheticName = %q, want %q", got, "untitled-abcdef01")
	}

	// Stable across calls.
	if again := SyntheticName("ABCDEF01-2345-6789"); again != got {
		t.Errorf("SyntheticName not deterministic: %q vs %q", got, again)
	}
}
