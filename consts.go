// Package guard provides a real-time content-safety engine for
// user-submitted text: a multilingual, bypass-resistant rule matcher,
// a semantic fallback backed by an external generative-text service,
// and a time-windowed strike/suspension state machine for chat.
package guard

import "time"

// Language is the detected language of a piece of content.
type Language string

const (
	LangArabic  Language = "ar"
	LangUrdu    Language = "ur"
	LangEnglish Language = "en"
	LangFrench  Language = "fr"
	LangSpanish Language = "es"
	LangGerman  Language = "de"
	LangItalian Language = "it"
	LangUnknown Language = "unknown"
)

// Category is the violation category a rule or classifier reports.
type Category string

const (
	// Safety categories, in priority order. The first matching
	// category in this order determines a fast-path verdict.
	CategoryDrugs        Category = "drugs"
	CategoryAdultContent Category = "adult_content"
	CategoryViolence     Category = "violence"
	CategoryIllegal      Category = "illegal_activity"
	CategoryProfanity    Category = "profanity"

	// Contact-info leakage categories, used by the chat matcher.
	CategoryPhone        Category = "phone"
	CategoryEmail        Category = "email"
	CategorySocialHandle Category = "social_handle"
	CategoryURL          Category = "url"

	// CategoryOther is the default when the semantic classifier
	// suggests a category outside the known set.
	CategoryOther Category = "other"
)

// SafetyCategories lists the general safety categories in priority order.
var SafetyCategories = []Category{
	CategoryDrugs,
	CategoryAdultContent,
	CategoryViolence,
	CategoryIllegal,
	CategoryProfanity,
}

// ContactCategories lists the contact-info categories in priority order.
var ContactCategories = []Category{
	CategoryPhone,
	CategoryEmail,
	CategorySocialHandle,
	CategoryURL,
}

// Reason is the machine-readable reason attached to a Verdict.
type Reason string

const (
	ReasonClean         Reason = ""
	ReasonWhitelisted   Reason = "whitelisted"
	ReasonRuleViolation Reason = "rule_violation"
	ReasonChatSuspended Reason = "chat_suspended"
	ReasonContactInfo   Reason = "contact_info_detected"
	ReasonAIFlagged     Reason = "ai_flagged"
)

// RiskLevel is the severity reported by the semantic classifier.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ParseRiskLevel maps a free-form risk string to a RiskLevel,
// defaulting to RiskLow.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(s) {
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	default:
		return RiskLow
	}
}

// Escalation policy constants. These are deliberately named rather than
// inlined so the window arithmetic lives in one place.
const (
	// StrikeTTL is how long a strike counts toward escalation.
	StrikeTTL = 30 * 24 * time.Hour

	// SuspensionTerm is how long a chat suspension lasts.
	SuspensionTerm = 7 * 24 * time.Hour

	// StrikeThreshold is the active-strike count at which a user is
	// suspended from chat.
	StrikeThreshold = 3

	// VerdictCacheTTL is how long a semantic verdict is memoized per
	// content hash.
	VerdictCacheTTL = 24 * time.Hour

	// MaxSnippetLen bounds the violation snippet persisted on a strike.
	MaxSnippetLen = 200
)
