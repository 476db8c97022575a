package rules

import (
	"testing"

	guard "github.com/khidma/guard"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dotted bypass", "c.o.c.a.i.n.e", "cocaine"},
		{"hyphen bypass", "c-o-c-a-i-n-e", "cocaine"},
		{"underscore bypass", "c_o_c_a_i_n_e", "cocaine"},
		{"spaced bypass", "c o c a i n e", "cocaine"},
		{"mixed separators", "c.o-c_a i.n-e", "cocaine"},
		{"plain word untouched", "cocaine", "cocaine"},
		{"trailing dot kept", "hello.", "hello."},
		{"leading dash kept", "-hello", "-hello"},
		{"digits joined", "555 123 4567", "5551234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSafetyMatcher_IsClean(t *testing.T) {
	m := NewSafetyMatcher()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"ordinary task", "Need someone to assemble a desk on Saturday", true},
		{"plain violation", "selling cocaine cheap", false},
		{"case insensitive", "Selling COCAINE cheap", false},
		{"french violation", "je vends de la cocaïne", false},
		{"arabic violation", "أبيع مخدرات بسعر رخيص", false},
		{"hyphen bypass rejected", "selling c-o-c-a-i-n-e cheap", false},
		{"dotted bypass rejected", "c.o.c.a.i.n.e for sale", false},
		{"whitelist wins over blocked token", "Cherche quelqu'un pour garde d'animaux, pas de cocaïne ici", true},
		{"whitelisted task", "Cherche quelqu'un pour garde d'animaux ce weekend", true},
		{"profanity", "this is complete shit", false},
		{"empty content", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsClean(tt.content); got != tt.want {
				t.Errorf("IsClean(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestSafetyMatcher_Violations(t *testing.T) {
	m := NewSafetyMatcher()

	tests := []struct {
		name    string
		content string
		want    []guard.Category
	}{
		{
			name:    "single category",
			content: "on vend de la cocaïne ici",
			want:    []guard.Category{guard.CategoryDrugs},
		},
		{
			name:    "multiple categories in priority order",
			content: "buy cocaine or a fake passport, you asshole",
			want:    []guard.Category{guard.CategoryDrugs, guard.CategoryIllegal, guard.CategoryProfanity},
		},
		{
			name:    "clean content",
			content: "help me move a couch",
			want:    nil,
		},
		{
			name:    "whitelist suppresses everything",
			content: "pet sitting and also cocaine",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Violations(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("Violations(%q) = %v, want %v", tt.content, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Violations(%q)[%d] = %v, want %v", tt.content, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestContactMatcher_FirstViolation(t *testing.T) {
	m := NewContactMatcher()

	tests := []struct {
		name     string
		content  string
		wantCat  guard.Category
		wantHit  bool
	}{
		{"phone number", "Call me at 555-123-4567", guard.CategoryPhone, true},
		{"phone before full stop", "my number is 555-123-4567.", guard.CategoryPhone, true},
		{"phone before comma", "call me at 555-123-4567, thanks", guard.CategoryPhone, true},
		{"phone before exclamation", "text 555-123-4567!", guard.CategoryPhone, true},
		{"international phone", "reach me on +44 20 7946 0958", guard.CategoryPhone, true},
		{"email", "write to me: john.doe@example.com", guard.CategoryEmail, true},
		{"social handle", "dm me on instagram", guard.CategorySocialHandle, true},
		{"at-handle", "find me @cool_user99", guard.CategorySocialHandle, true},
		{"url", "details at https://example.com/task", guard.CategoryURL, true},
		{"bare domain with path", "see example.com/offer for more", guard.CategoryURL, true},
		{"ordinary message", "I can start tomorrow morning", "", false},
		{"decimal number not phone", "the budget is 3.14 per unit", "", false},
		{"version string not url", "I use v2.0 of the app", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, hit := m.FirstViolation(tt.content)
			if hit != tt.wantHit {
				t.Fatalf("FirstViolation(%q) hit = %v, want %v", tt.content, hit, tt.wantHit)
			}
			if cat != tt.wantCat {
				t.Errorf("FirstViolation(%q) = %v, want %v", tt.content, cat, tt.wantCat)
			}
		})
	}
}

func TestNew_BadPattern(t *testing.T) {
	_, err := New([]guard.Rule{
		{Category: guard.CategoryDrugs, LangGroup: "en", Pattern: "("},
	}, nil)
	if err == nil {
		t.Fatal("New() with invalid pattern should fail")
	}
}
