package usercfg

import (
	"strings"
	"testing"
)

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		pattern string
		target  string
		want    bool
	}{
		{"", "anything", true},
		{"abc", "", false},
		{"prog", "In Progress", true},
		{"PROG", "in progress", true},
		{"rdm", "Roadmap", true},
		{"xyz", "Roadmap", false},
		{"roadmapx", "Roadmap", false},
	}

	for _, tt := range tests {
		if got := FuzzyMatch(tt.pattern, tt.target); got != tt.want {
			t.Errorf("FuzzyMatch(%q, %q) = %v, want %v", tt.pattern, tt.target, got, tt.want)
		}
	}
}

func TestFuzzyScore(t *testing.T) {
	if FuzzyScore("xyz", "Roadmap") != -1 {
		t.Error("Expected -1 for non-match")
	}
	if FuzzyScore("", "Roadmap") != 100 {
		t.Error("Expected 100 for empty pattern")
	}

	// Substring matches outrank scattered matches
	substr := FuzzyScore("prog", "In Progress")
	scattered := FuzzyScore("prog", "Pending Review of Goals")
	if substr <= scattered {
		t.Errorf("Expected substring match (%d) to outrank scattered match (%d)", substr, scattered)
	}

	// A sprawling target bleeds the score but a match never goes below 0
	if got := FuzzyScore("az", "az"+strings.Repeat("a", 100)); got < 0 {
		t.Errorf("Expected a matching score to floor at 0, got %d", got)
	}
}

func TestNormalizeSearchText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Fix login! (urgent)", "fix login urgent"},
		{"v2-rollout", "v2-rollout"},
		{"  Plain  ", "  plain  "},
	}

	for _, tt := range tests {
		if got := NormalizeSearchText(tt.input); got != tt.want {
			t.Errorf("NormalizeSearchText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
