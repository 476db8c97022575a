// Package rules implements the dependency-free fast path: an ordered,
// whitelist-aware, bypass-resistant multilingual rule matcher. It is
// the only check guaranteed to run when the semantic collaborator is
// unavailable, so it must stay pure, bounded, and error-free for any
// well-formed input.
package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	guard "github.com/khidma/guard"
)

// compiledRule is one rule with its pattern compiled. Declaration
// order is preserved: it is the priority order.
type compiledRule struct {
	category  guard.Category
	langGroup string
	re        *regexp.Regexp
}

// Matcher evaluates an immutable, ordered rule table against content.
// It is safe for concurrent use: all state is read-only after New.
type Matcher struct {
	rules     []compiledRule
	whitelist []string // lowercased phrases
}

// New compiles a rule table and whitelist into a Matcher. Rules in
// Latin-script language groups are compiled case-insensitively;
// Arabic and Urdu groups match exact codepoint sequences, since those
// scripts have no case to fold.
func New(ruleTable []guard.Rule, whitelist []guard.WhitelistPhrase) (*Matcher, error) {
	m := &Matcher{
		rules: make([]compiledRule, 0, len(ruleTable)),
	}

	for _, r := range ruleTable {
		pattern := r.Pattern
		if !exactScript(r.LangGroup) {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("rules: compile %s/%s: %w", r.Category, r.LangGroup, err)
		}
		m.rules = append(m.rules, compiledRule{
			category:  r.Category,
			langGroup: r.LangGroup,
			re:        re,
		})
	}

	for _, w := range whitelist {
		m.whitelist = append(m.whitelist, strings.ToLower(w.Phrase))
	}

	return m, nil
}

// MustNew is New for static rule tables; it panics on a bad pattern.
func MustNew(ruleTable []guard.Rule, whitelist []guard.WhitelistPhrase) *Matcher {
	m, err := New(ruleTable, whitelist)
	if err != nil {
		panic(err)
	}
	return m
}

func exactScript(langGroup string) bool {
	return langGroup == "ar" || langGroup == "ur"
}

// IsClean returns true when no rule matches content. A whitelist hit
// returns true immediately, before any rule is evaluated: legitimate
// tasks that merely resemble violations are costlier to block than a
// missed violation is to pass on this path. The whitelist therefore
// masks every rule, including unrelated ones elsewhere in the text.
func (m *Matcher) IsClean(content string) bool {
	_, hit := m.FirstViolation(content)
	return !hit
}

// FirstViolation returns the first matching category in rule order,
// short-circuiting on the first hit across the raw and normalized
// forms of content.
func (m *Matcher) FirstViolation(content string) (guard.Category, bool) {
	if m.whitelisted(content) {
		return "", false
	}

	norm := Normalize(content)
	for _, r := range m.rules {
		if r.re.MatchString(content) || (norm != content && r.re.MatchString(norm)) {
			return r.category, true
		}
	}
	return "", false
}

// Violations scans exhaustively and returns every distinct matching
// category in rule order, for audit and admin display. A whitelist hit
// returns nil.
func (m *Matcher) Violations(content string) []guard.Category {
	if m.whitelisted(content) {
		return nil
	}

	norm := Normalize(content)
	seen := make(map[guard.Category]bool)
	var cats []guard.Category
	for _, r := range m.rules {
		if seen[r.category] {
			continue
		}
		if r.re.MatchString(content) || (norm != content && r.re.MatchString(norm)) {
			seen[r.category] = true
			cats = append(cats, r.category)
		}
	}
	return cats
}

func (m *Matcher) whitelisted(content string) bool {
	lower := strings.ToLower(content)
	for _, phrase := range m.whitelist {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Normalize derives the bypass-resistant form of content: runs of
// whitespace, '.', '-' and '_' that sit between two word characters
// are deleted, collapsing "c.o.c.a.i.n.e" to "cocaine". Separators at
// word edges are kept so ordinary sentences survive intact.
func Normalize(content string) string {
	runes := []rune(content)
	var b strings.Builder
	b.Grow(len(content))

	i := 0
	for i < len(runes) {
		r := runes[i]
		if !isSeparator(r) {
			b.WriteRune(r)
			i++
			continue
		}

		// Find the extent of the separator run.
		j := i
		for j < len(runes) && isSeparator(runes[j]) {
			j++
		}

		prevIsWord := i > 0 && isWordRune(runes[i-1])
		nextIsWord := j < len(runes) && isWordRune(runes[j])
		if !(prevIsWord && nextIsWord) {
			b.WriteString(string(runes[i:j]))
		}
		i = j
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '.' || r == '-' || r == '_'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
