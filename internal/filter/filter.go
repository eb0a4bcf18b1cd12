// Package filter implements the per-subscription article matching engine.
//
// Matching is pure CPU work over already-fetched articles: the storage layer
// cannot express regex rules or the concatenated "any" field, so rules are
// always applied here, in application memory.
package filter

import (
	"regexp"
	"strings"

	"feedreader/internal/domain"
)

// Matches reports whether a single rule matches an article.
//
// A rule with a non-empty pattern never matches an empty field value. An
// empty "contains" pattern matches everything, including articles whose
// fields are all empty. A pattern that fails to compile as a regular
// expression matches nothing; the error is swallowed so a bad rule can
// never fail a request.
func Matches(article domain.Article, rule domain.FilterRule) bool {
	value := fieldValue(article, rule.Field)
	if value == "" && rule.Pattern != "" {
		return false
	}

	switch rule.MatchType {
	case domain.MatchContains:
		if rule.CaseSensitive {
			return strings.Contains(value, rule.Pattern)
		}
		return strings.Contains(strings.ToLower(value), strings.ToLower(rule.Pattern))
	case domain.MatchExact:
		if rule.CaseSensitive {
			return value == rule.Pattern
		}
		return strings.ToLower(value) == strings.ToLower(rule.Pattern)
	case domain.MatchRegex:
		pattern := rule.Pattern
		if !rule.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		// Case handling is delegated to the (?i) flag, so the original,
		// non-lowercased value is tested.
		return re.MatchString(value)
	}

	return false
}

// Admit combines a subscription's full ordered rule set and its mode into a
// single decision for one article.
//
// An enabled subscription with zero rules rejects every article, in both
// modes. Exclude mode with no rules does NOT mean "nothing to exclude, show
// everything"; the fail-closed behavior is intentional and shared between
// modes.
func Admit(article domain.Article, rules []domain.FilterRule, mode domain.FilterMode) bool {
	if len(rules) == 0 {
		return false
	}

	hasMatch := false
	for _, rule := range rules {
		if Matches(article, rule) {
			hasMatch = true
			break
		}
	}

	if mode == domain.FilterModeExclude {
		return !hasMatch
	}
	return hasMatch
}

// fieldValue maps a rule field to the article text it is matched against.
// Unknown fields behave like a field with no content.
func fieldValue(article domain.Article, field domain.FilterField) string {
	switch field {
	case domain.FieldTitle:
		return article.Title
	case domain.FieldDescription:
		return article.Description
	case domain.FieldContent:
		return article.Content
	case domain.FieldAuthor:
		return article.Author
	case domain.FieldAny:
		return strings.Join([]string{
			article.Title,
			article.Description,
			article.Content,
			article.Author,
		}, " ")
	default:
		return ""
	}
}
