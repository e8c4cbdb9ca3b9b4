package helper

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText trims and folds the string to NFC.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// NormalizeEmail is NormalizeText plus lower-casing.
func NormalizeEmail(s string) string {
	return strings.ToLower(NormalizeText(s))
}

// NormalizeTags trims every tag and drops empties, keeping order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = NormalizeText(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
