// Package naming converts target names into the identifiers Laravel expects:
// class names, snake-case table names, plural route slugs and headline labels.
package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pascal converts a string to PascalCase.
func Pascal(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = capitalize(strings.ToLower(word))
	}
	return strings.Join(words, "")
}

// Snake converts a string to snake_case.
func Snake(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}

// Plural returns the English plural of a word.
func Plural(s string) string {
	return inflection.Plural(s)
}

// Slug returns the route and view-folder slug for a target name: the
// lower-cased plural ("Product" -> "products", "Category" -> "categories").
// Distinct names may share a slug; callers do not guard against it.
func Slug(name string) string {
	return Plural(strings.ToLower(name))
}

// Table returns the default table name Eloquent derives for a model class.
func Table(model string) string {
	return Plural(Snake(model))
}

// Headline upper-cases the first letter of each word after replacing
// underscores with spaces: "is_active" -> "Is Active".
func Headline(s string) string {
	return HeadlineSep(s, "_")
}

// HeadlineSep is Headline with a caller-chosen separator,
// e.g. "roles.index" with "." -> "Roles Index". Only whitespace starts a
// new word, so "assign-role" stays "Assign-role".
func HeadlineSep(s, sep string) string {
	// A Caser carries state, so one is built per call.
	upper := cases.Upper(language.English)

	var b strings.Builder
	start := true
	for _, r := range strings.ReplaceAll(s, sep, " ") {
		switch {
		case unicode.IsSpace(r):
			start = true
			b.WriteRune(r)
		case start:
			start = false
			b.WriteString(upper.String(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// capitalize returns the string with the first letter uppercased.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// splitWords splits a string into words (handles camelCase, PascalCase, snake_case, kebab-case).
func splitWords(s string) []string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			prev := rune(s[i-1])
			if !unicode.IsSpace(prev) && !unicode.IsUpper(prev) {
				result.WriteRune(' ')
			}
		}
		result.WriteRune(r)
	}

	return strings.Fields(result.String())
}
