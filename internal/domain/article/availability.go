package article

// IsAvailable decides whether a record is shown to readers of lang.
//
// Secondary readers need the secondary tag and all three secondary fields.
// Primary readers need any one primary field; the tag is not checked.
func IsAvailable(a *Article, lang Language) bool {
	if lang == Secondary {
		return a.Language == Secondary && IsComplete(a, Secondary)
	}
	return a.Title.Present() || a.Summary.Present() || a.Content.Present()
}

// IsComplete reports whether all three content fields of lang are present.
func IsComplete(a *Article, lang Language) bool {
	for _, f := range ContentFields(lang) {
		if !a.Text(f).Present() {
			return false
		}
	}
	return true
}

// ReconcileLanguage derives the canonical tag from content presence.
// Records with only secondary content are secondary and records with only
// primary content are primary; records with both or neither keep their tag.
func ReconcileLanguage(a *Article) Language {
	primary := hasAny(a, Primary)
	secondary := hasAny(a, Secondary)
	switch {
	case secondary && !primary:
		return Secondary
	case primary && !secondary:
		return Primary
	}
	return a.Language
}

func hasAny(a *Article, lang Language) bool {
	for _, f := range ContentFields(lang) {
		if a.Text(f).Present() {
			return true
		}
	}
	return false
}
