// Package sanitizer provides small string transforms for user and author
// supplied text: whitespace and control character cleanup, HTML stripping
// for plain-text excerpts, and removal of active content from trusted HTML.
//
// Transforms are plain func(string) string values and can be chained:
//
//	clean := sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.Trim)
//	name := sanitizer.MaxLength(clean(input), 100)
package sanitizer
