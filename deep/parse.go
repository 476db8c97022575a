package deep

import (
	"encoding/json"
	"fmt"
	"strings"

	guard "github.com/khidma/guard"
)

// modelVerdict is the JSON shape the prompt asks the model for. Every
// field is optional at parse time; defaults are applied in Moderate.
type modelVerdict struct {
	IsClean          bool   `json:"is_clean"`
	Reason           string `json:"reason"`
	RiskLevel        string `json:"risk_level"`
	ImprovedTitle    string `json:"improved_title"`
	Category         string `json:"category"`
	DetectedLanguage string `json:"detected_language"`
}

// parseModelResponse extracts a modelVerdict from raw model output.
// Models wrap JSON in markdown fences or surrounding prose often
// enough that two fallbacks are worth the code: fence stripping, then
// balanced-brace extraction of the first JSON object substring.
func parseModelResponse(raw string) (modelVerdict, error) {
	var mv modelVerdict

	text := stripFences(strings.TrimSpace(raw))

	if err := json.Unmarshal([]byte(text), &mv); err == nil {
		return mv, nil
	}

	obj, ok := extractJSONObject(text)
	if !ok {
		return mv, fmt.Errorf("%w: no JSON object in model output", guard.ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(obj), &mv); err != nil {
		return mv, fmt.Errorf("%w: %v", guard.ErrMalformedResponse, err)
	}
	return mv, nil
}

// stripFences removes a surrounding markdown code fence, with or
// without a language tag ("```json").
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	body := s[3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		// Drop the fence line, including any language tag.
		body = body[nl+1:]
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// extractJSONObject returns the first balanced top-level JSON object
// in s. Braces inside string literals are skipped, honoring escapes.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
