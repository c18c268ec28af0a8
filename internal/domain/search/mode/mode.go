package mode

import "strings"

// Mode is the search strictness.
type Mode string

// Search mode constants.
const (
	// Default matches title, summary and content at every tier, plus tags and category.
	Default Mode = "default"
	// Strict matches whole words in title and summary only.
	Strict Mode = "strict"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Default || m == Strict
}

// Parse maps a request value to a Mode. Unknown values fall back to Default.
func Parse(s string) Mode {
	if m := Mode(strings.ToLower(strings.TrimSpace(s))); m.IsValid() {
		return m
	}
	return Default
}
