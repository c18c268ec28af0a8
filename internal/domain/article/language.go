package article

import "strings"

// Language is the declared canonical language tag of an article.
type Language string

// Supported languages.
const (
	// Primary is the universal-fallback audience.
	Primary Language = "en"
	// Secondary requires full completeness to be shown.
	Secondary Language = "ur"
)

// ParseLanguage maps a request or stored tag to a Language.
// Unknown and empty values fall back to Primary.
func ParseLanguage(s string) Language {
	if Language(strings.ToLower(strings.TrimSpace(s))) == Secondary {
		return Secondary
	}
	return Primary
}

// IsValid checks if the language is one of the supported values.
func (l Language) IsValid() bool {
	return l == Primary || l == Secondary
}

func (l Language) String() string { return string(l) }
