// Package lang provides a best-effort heuristic language detector.
// It exists to give the semantic classifier context and to localize
// responses; it never decides allow/deny on its own.
package lang

import (
	"strings"
	"unicode"

	guard "github.com/khidma/guard"
)

// urduMarkers are codepoints used in Urdu orthography but not in
// standard Arabic. One occurrence is enough to promote ar to ur.
var urduMarkers = map[rune]bool{
	'ٹ': true, // ٹ
	'ڈ': true, // ڈ
	'ڑ': true, // ڑ
	'ں': true, // ں
	'ھ': true, // ھ
	'ہ': true, // ہ
	'ے': true, // ے
}

// functionWords holds ~12 common function words per Latin-script
// language: articles, pronouns, conjunctions. Order matters only for
// tie-breaking, which goes to the earlier language.
var functionWords = []struct {
	lang  guard.Language
	words []string
}{
	{guard.LangFrench, []string{
		"le", "la", "les", "un", "une", "des", "et", "je", "tu", "pour", "avec", "mon", "dans",
	}},
	{guard.LangSpanish, []string{
		"el", "los", "las", "unos", "y", "yo", "para", "con", "por", "que", "es", "mi", "en",
	}},
	{guard.LangGerman, []string{
		"der", "die", "das", "ein", "eine", "und", "ich", "für", "mit", "mein", "ist", "nicht", "auf",
	}},
	{guard.LangItalian, []string{
		"il", "lo", "gli", "una", "e", "io", "per", "con", "che", "mio", "di", "non", "sono",
	}},
}

// minScore is the minimum function-word hits required before a Latin
// language beats the English default.
const minScore = 2

// Detect returns the likely language of text.
//
// Any codepoint in the Arabic script resolves the script family first:
// Urdu-specific letters give ur, otherwise ar. Latin text is scored by
// function-word frequency across fr/es/de/it with an English fallback.
func Detect(text string) guard.Language {
	if text == "" {
		return guard.LangUnknown
	}

	arabic := false
	for _, r := range text {
		if unicode.Is(unicode.Arabic, r) {
			arabic = true
			if urduMarkers[r] {
				return guard.LangUrdu
			}
		}
	}
	if arabic {
		return guard.LangArabic
	}

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return guard.LangUnknown
	}

	best := guard.LangEnglish
	bestScore := 0
	for _, fw := range functionWords {
		score := 0
		for _, w := range fw.words {
			score += tokens[w]
		}
		if score > bestScore {
			best = fw.lang
			bestScore = score
		}
	}

	if bestScore < minScore {
		return guard.LangEnglish
	}
	return best
}

// tokenize lowercases text and splits on anything that is not a letter,
// so punctuation glued to a word ("chat.") still counts.
func tokenize(text string) map[string]int {
	counts := make(map[string]int)
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	for _, f := range fields {
		// Strip French elisions like "j'ai" into "j" + "ai".
		for _, part := range strings.Split(f, "'") {
			if part != "" {
				counts[part]++
			}
		}
	}
	return counts
}
