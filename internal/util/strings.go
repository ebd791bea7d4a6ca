// Package util holds small text helpers shared by the terminal renderers.
package util

import (
	"fmt"
	"strings"
)

// JoinOrNone joins strings with ", " or returns "(none)" for empty slices.
func JoinOrNone(items []string) string {
	return JoinOrDefault(items, "(none)")
}

// JoinOrDefault joins strings with ", " or returns def for empty slices.
func JoinOrDefault(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Count formats a count with the matching noun, e.g. "1 favorite", "3 favorites".
func Count(n int, singular, plural string) string {
	return fmt.Sprintf("%d %s", n, Pluralize(n, singular, plural))
}
