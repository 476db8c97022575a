package lang

import (
	"testing"

	guard "github.com/khidma/guard"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want guard.Language
	}{
		{
			name: "french function words",
			text: "Bonjour, je cherche quelqu'un pour garder mon chat",
			want: guard.LangFrench,
		},
		{
			name: "spanish function words",
			text: "Busco a alguien para cuidar mi perro por el fin de semana",
			want: guard.LangSpanish,
		},
		{
			name: "german function words",
			text: "Ich suche jemanden für die Reinigung und das Fenster",
			want: guard.LangGerman,
		},
		{
			name: "italian function words",
			text: "Cerco qualcuno per il giardino e non ho tempo",
			want: guard.LangItalian,
		},
		{
			name: "arabic script",
			text: "أبحث عن شخص لتنظيف المنزل",
			want: guard.LangArabic,
		},
		{
			name: "urdu markers",
			text: "مجھے گھر کی صفائی کے لیے کوئی چاہیے",
			want: guard.LangUrdu,
		},
		{
			name: "english default",
			text: "Looking for someone to clean my house this weekend",
			want: guard.LangEnglish,
		},
		{
			name: "single function word stays english",
			text: "le weekend vibes",
			want: guard.LangEnglish,
		},
		{
			name: "empty input",
			text: "",
			want: guard.LangUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetect_ArabicWinsOverLatinWords(t *testing.T) {
	// Mixed content: any Arabic codepoint resolves the script family
	// before Latin scoring runs.
	got := Detect("je cherche مساعدة pour le ménage")
	if got != guard.LangArabic {
		t.Errorf("Detect() = %q, want %q", got, guard.LangArabic)
	}
}
