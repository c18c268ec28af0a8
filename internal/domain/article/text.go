package article

// absentSentinel is the literal editors store for a field they left blank.
const absentSentinel = "none"

// Text is an optional content field. The zero value is absent.
type Text struct {
	value   string
	present bool
}

// NewText normalizes a raw stored value. Only the empty string and the
// literal "none" produce an absent Text; whitespace is content.
func NewText(raw string) Text {
	if raw == "" || raw == absentSentinel {
		return Text{}
	}
	return Text{value: raw, present: true}
}

// Absent returns the absent Text (the JSON null of a stored record).
func Absent() Text { return Text{} }

// Present reports whether the field carries content.
func (t Text) Present() bool { return t.present }

// String returns the raw value, or "" when absent.
func (t Text) String() string { return t.value }

// Or returns t when present, otherwise fallback.
func (t Text) Or(fallback Text) Text {
	if t.present {
		return t
	}
	return fallback
}
