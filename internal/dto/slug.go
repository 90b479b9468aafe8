package dto

import (
	"regexp"
	"strings"
)

var (
	nonSlugRun      = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	nonCategorySlug = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify turns a post title into its url slug: "  Hello, World! " -> "hello-world".
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonSlugRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CategorySlug derives a category slug from its name.
func CategorySlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonCategorySlug.ReplaceAllString(s, "")
}
