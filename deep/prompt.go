package deep

import (
	"fmt"
	"strings"

	guard "github.com/khidma/guard"
)

// languageNames localizes the improved-title instruction.
var languageNames = map[guard.Language]string{
	guard.LangArabic:  "Arabic",
	guard.LangUrdu:    "Urdu",
	guard.LangEnglish: "English",
	guard.LangFrench:  "French",
	guard.LangSpanish: "Spanish",
	guard.LangGerman:  "German",
	guard.LangItalian: "Italian",
}

// promptTemplate instructs the generative model to classify content
// and respond with nothing but a JSON object. The rules lean towards
// allowing legitimate everyday tasks: the fast rule path has already
// rejected the highest-confidence violations before this runs.
const promptTemplate = `# Content Safety Review

You review user-submitted task descriptions for an everyday-services
marketplace. Content may be written in Arabic, Urdu, English, French,
Spanish, German, or Italian.

## INSTRUCTIONS

Classify the CONTENT SAMPLE below and respond with exactly this JSON
object and nothing else:

{"is_clean": true|false, "reason": "...", "risk_level": "low|medium|high", "improved_title": "...", "category": "...", "detected_language": "..."}

"reason" explains the decision briefly. "improved_title" is a polished
short title for the task, written in %s, and MUST be set only when
is_clean is true; otherwise leave it empty. "category" is one of:
drugs, adult_content, violence, illegal_activity, profanity, other.
"detected_language" is the ISO 639-1 code of the content's language.

## RULES

1. Allow legitimate everyday tasks: cleaning, moving, pet care,
   childcare, errands, repairs, tutoring, and other legal services
   that involve no exchange of contact details.
2. Block content that solicits or offers drugs, sexual services,
   violence, stolen or counterfeit goods, or other illegal activity.
3. Watch for obfuscated bypass attempts: spaced or punctuated
   spellings, digits for letters, mixed scripts.
4. Profanity aimed at a person is not clean; mild frustration in an
   otherwise legitimate task is.
5. If genuinely unsure, prefer is_clean true with risk_level "medium".

## CONTENT SAMPLE

%s`

// buildPrompt renders the moderation prompt for content, using the
// detected language to localize the improved-title instruction.
func buildPrompt(content string, detected guard.Language) string {
	name, ok := languageNames[detected]
	if !ok {
		name = "the same language as the content"
	} else {
		name = "the same language as the content (" + name + ")"
	}
	return fmt.Sprintf(promptTemplate, name, strings.TrimSpace(content))
}
