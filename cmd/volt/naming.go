package main

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// pascal turns "blog_post", "blog-post" or "blogPost" into "BlogPost".
func pascal(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	for _, p := range parts {
		for _, word := range splitCamel(p) {
			b.WriteString(strings.ToUpper(word[:1]) + word[1:])
		}
	}
	return b.String()
}

// snake turns "BlogPost" into "blog_post".
func snake(s string) string {
	words := splitCamel(strings.NewReplacer("-", "_", " ", "_").Replace(s))
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// splitCamel breaks "blogPost" into ["blog", "Post"], keeping existing
// underscore-separated words intact.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])

	var out []string
	for _, w := range words {
		for _, part := range strings.Split(w, "_") {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// tableName derives the database table for a model: snake_case, plural
// last word. "BlogPost" → "blog_posts".
func tableName(model string) string {
	return inflection.Plural(snake(model))
}
