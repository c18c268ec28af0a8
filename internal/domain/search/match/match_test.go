package match

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		term, text string
		want       Kind
	}{
		{"tech", "New Tech Breakthrough", Exact},
		{"tech", "Technology news", Prefix},
		{"tech", "Biotech startups", Substring},
		{"tech", "Biotech and tech", Exact},
		{"tech", "Biotech, Technology", Prefix},
		{"tech", "Sports", None},
		{"TECH", "tech", Exact},
		{"tech", "", None},
		{"", "anything", None},
		{"new tech", "Brand new tech today", Exact},
		{"new te", "Brand new tech today", Prefix},
		{"tech", "tech_news", Prefix},
		{"tech", "tech-news", Exact},
		{"tech", "tech.", Exact},
		{"straße", "STRASSE closed", Exact},
		{"کتاب", "یہ کتاب اچھی ہے", Exact},
		{"کتاب", "کتابیں", Prefix},
		{".*", "regex .* chars", Exact},
		{"a+b", "aab", None},
		{"(x)", "call (x) now", Exact},
	}
	for _, tc := range tests {
		got := NewTerm(tc.term).Classify(tc.text)
		if got != tc.want {
			t.Errorf("Classify(%q in %q) = %v, want %v", tc.term, tc.text, got, tc.want)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	term := NewTerm("tech")
	first := term.Classify("Biotech and Technology")
	for range 5 {
		if got := term.Classify("Biotech and Technology"); got != first {
			t.Fatalf("Classify not stable: %v then %v", first, got)
		}
	}
}

func TestEquals(t *testing.T) {
	term := NewTerm(" Tech ")
	if !term.Equals("tech") {
		t.Error("Equals should ignore case and surrounding space")
	}
	if term.Equals("technology") {
		t.Error("Equals must be anchored")
	}
	if NewTerm("").Equals("") {
		t.Error("empty term equals nothing")
	}
}

func TestIn(t *testing.T) {
	term := NewTerm("pun")
	if !term.In("Punjab") {
		t.Error("In should find case-insensitive substring")
	}
	if term.In("Sindh") {
		t.Error("In false positive")
	}
}

func TestKindOrdering(t *testing.T) {
	if !(Exact > Prefix && Prefix > Substring && Substring > None) {
		t.Error("tiers must be ordered weakest first")
	}
	if Prefix.String() != "starts" || Substring.String() != "contains" || Exact.String() != "exact" {
		t.Error("unexpected tier labels")
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("new-tech, 2024!  AI_lab")
	want := []string{"new", "tech", "2024", "AI_lab"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
	if len(Tokens("  ...  ")) != 0 {
		t.Error("punctuation-only input should produce no tokens")
	}
}

func TestNewTerm(t *testing.T) {
	term := NewTerm("  hello  ")
	if term.String() != "hello" {
		t.Errorf("String() = %q", term.String())
	}
	if !NewTerm("   ").IsEmpty() {
		t.Error("whitespace term should be empty")
	}
}
