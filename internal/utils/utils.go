package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseCSV splits a comma separated list into lowercase, trimmed, de-duplicated tokens.
func ParseCSV(raw string) []string {
	return NormalizeTokens(strings.Split(raw, ","))
}

// NormalizeTokens lowercases and trims every token, dropping blanks and
// duplicates while keeping the first-seen order.
func NormalizeTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// TokenSet turns a token list into a set for membership checks.
func TokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range NormalizeTokens(tokens) {
		set[t] = true
	}
	return set
}

// Intersects reports whether any of tokens is in set.
func Intersects(set map[string]bool, tokens []string) bool {
	for _, t := range tokens {
		if set[strings.ToLower(strings.TrimSpace(t))] {
			return true
		}
	}
	return false
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
