package usercfg

import (
	"strings"
	"unicode"
)

// FuzzyMatch reports whether every character of pattern appears in target in
// order, case-insensitively. An empty pattern matches everything.
func FuzzyMatch(pattern, target string) bool {
	if pattern == "" {
		return true
	}

	pattern = strings.ToLower(pattern)
	target = strings.ToLower(target)

	next := 0
	for i := 0; i < len(target) && next < len(pattern); i++ {
		if target[i] == pattern[next] {
			next++
		}
	}
	return next == len(pattern)
}

// FuzzyScore rates a match from 0 to 100, or -1 when pattern doesn't match.
// Runs of consecutive matched characters score higher, and a literal
// substring match gets a flat bonus, so "prog" ranks "In Progress" above
// "Pending Review of Goals".
func FuzzyScore(pattern, target string) int {
	if !FuzzyMatch(pattern, target) {
		return -1
	}
	if pattern == "" {
		return 100
	}

	pattern = strings.ToLower(pattern)
	target = strings.ToLower(target)

	score := 0
	next := 0
	run := 0
	for i := 0; i < len(target); i++ {
		if next < len(pattern) && target[i] == pattern[next] {
			next++
			run++
			score += 10 + run
		} else {
			run = 0
		}
		// Long targets bleed score so tighter matches win
		if i > len(pattern)*3 {
			score--
		}
	}

	if strings.Contains(target, pattern) {
		score += 20
	}

	// A sprawling target can bleed below zero; a match still scores 0
	if score < 0 {
		score = 0
	}
	maxScore := len(pattern) * 15
	if score > maxScore {
		score = maxScore
	}
	return (score * 100) / maxScore
}

// NormalizeSearchText lowercases text and strips everything except letters,
// digits, spaces, and hyphens.
func NormalizeSearchText(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' {
			result.WriteRune(r)
		}
	}

	return result.String()
}
