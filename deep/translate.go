package deep

import (
	"strings"

	guard "github.com/khidma/guard"
)

// categoryLabels maps the free-form category strings models actually
// produce to canonical categories. Anything unmapped lands on
// CategoryOther rather than failing the verdict.
var categoryLabels = map[string]guard.Category{
	"drugs":            guard.CategoryDrugs,
	"drug":             guard.CategoryDrugs,
	"narcotics":        guard.CategoryDrugs,
	"adult_content":    guard.CategoryAdultContent,
	"adult content":    guard.CategoryAdultContent,
	"adult":            guard.CategoryAdultContent,
	"sexual":           guard.CategoryAdultContent,
	"sexual_content":   guard.CategoryAdultContent,
	"violence":         guard.CategoryViolence,
	"violent":          guard.CategoryViolence,
	"threats":          guard.CategoryViolence,
	"illegal_activity": guard.CategoryIllegal,
	"illegal activity": guard.CategoryIllegal,
	"illegal":          guard.CategoryIllegal,
	"fraud":            guard.CategoryIllegal,
	"profanity":        guard.CategoryProfanity,
	"abuse":            guard.CategoryProfanity,
	"hate":             guard.CategoryProfanity,
}

// translateCategory maps a model-suggested category string to a
// canonical Category, defaulting to CategoryOther.
func translateCategory(label string) guard.Category {
	key := strings.ToLower(strings.TrimSpace(label))
	if cat, ok := categoryLabels[key]; ok {
		return cat
	}
	return guard.CategoryOther
}

// translateLanguage maps a model-reported ISO 639-1 code to a
// Language, returning ok=false for anything outside the supported set.
func translateLanguage(code string) (guard.Language, bool) {
	switch guard.Language(strings.ToLower(strings.TrimSpace(code))) {
	case guard.LangArabic:
		return guard.LangArabic, true
	case guard.LangUrdu:
		return guard.LangUrdu, true
	case guard.LangEnglish:
		return guard.LangEnglish, true
	case guard.LangFrench:
		return guard.LangFrench, true
	case guard.LangSpanish:
		return guard.LangSpanish, true
	case guard.LangGerman:
		return guard.LangGerman, true
	case guard.LangItalian:
		return guard.LangItalian, true
	}
	return guard.LangUnknown, false
}
