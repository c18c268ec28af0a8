package article

import "testing"

func TestNewText(t *testing.T) {
	tests := []struct {
		raw     string
		present bool
	}{
		{"", false},
		{"   ", true},
		{"\t\n", true},
		{"none", false},
		{"None", true},
		{"none of it", true},
		{"Breaking", true},
		{"  padded  ", true},
	}
	for _, tc := range tests {
		got := NewText(tc.raw)
		if got.Present() != tc.present {
			t.Errorf("NewText(%q).Present() = %v, want %v", tc.raw, got.Present(), tc.present)
		}
		if tc.present && got.String() != tc.raw {
			t.Errorf("NewText(%q).String() = %q", tc.raw, got.String())
		}
		if !tc.present && got.String() != "" {
			t.Errorf("absent NewText(%q).String() = %q, want empty", tc.raw, got.String())
		}
	}
}

func TestText_ZeroValueIsAbsent(t *testing.T) {
	var tx Text
	if tx.Present() {
		t.Error("zero Text should be absent")
	}
	if Absent().Present() {
		t.Error("Absent() should be absent")
	}
}

func TestText_Or(t *testing.T) {
	primary := NewText("hello")
	secondary := NewText("سلام")

	if got := secondary.Or(primary); got.String() != "سلام" {
		t.Errorf("present.Or() = %q", got.String())
	}
	if got := Absent().Or(primary); got.String() != "hello" {
		t.Errorf("absent.Or() = %q", got.String())
	}
	if got := Absent().Or(Absent()); got.Present() {
		t.Error("absent.Or(absent) should be absent")
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"en", Primary},
		{"ur", Secondary},
		{"UR", Secondary},
		{" ur ", Secondary},
		{"", Primary},
		{"fr", Primary},
		{"urdu", Primary},
	}
	for _, tc := range tests {
		if got := ParseLanguage(tc.in); got != tc.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLanguage_IsValid(t *testing.T) {
	if !Primary.IsValid() || !Secondary.IsValid() {
		t.Error("supported languages should be valid")
	}
	if Language("fr").IsValid() || Language("").IsValid() {
		t.Error("unsupported languages should be invalid")
	}
}

func TestContentFields(t *testing.T) {
	p := ContentFields(Primary)
	if p != [3]Field{FieldTitle, FieldSummary, FieldContent} {
		t.Errorf("primary fields = %v", p)
	}
	s := ContentFields(Secondary)
	if s != [3]Field{FieldTitleAlt, FieldSummaryAlt, FieldContentAlt} {
		t.Errorf("secondary fields = %v", s)
	}
}

func TestField_Base(t *testing.T) {
	if FieldSummaryAlt.Base() != FieldSummary {
		t.Errorf("summaryAlt base = %q", FieldSummaryAlt.Base())
	}
	if FieldTags.Base() != FieldTags {
		t.Errorf("tags base = %q", FieldTags.Base())
	}
}
