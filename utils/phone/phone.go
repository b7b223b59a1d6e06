// Package phone cleans up phone numbers typed into public forms.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when a number has no country prefix.
const DefaultRegion = "IN"

var (
	spacesAndDashes = regexp.MustCompile(`[\s-]`)
	punctuation     = regexp.MustCompile(`[()\s\-.]`)
)

// Compact removes spaces and dashes, e.g. "+91 99999-99999" becomes "+919999999999".
func Compact(input string) string {
	return spacesAndDashes.ReplaceAllString(strings.TrimSpace(input), "")
}

// CompactLoose also removes parentheses and dots and keeps only a leading plus sign.
func CompactLoose(input string) string {
	cleaned := punctuation.ReplaceAllString(strings.TrimSpace(input), "")
	if cleaned == "" {
		return cleaned
	}
	return cleaned[:1] + strings.ReplaceAll(cleaned[1:], "+", "")
}

// NormalizeE164 formats a number to E.164 when it parses as a valid number.
// Anything else is returned unchanged so the caller's validation can reject it.
func NormalizeE164(input string) string {
	if input == "" || !strings.HasPrefix(input, "+") {
		return input
	}
	number, err := phonenumbers.Parse(input, DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return input
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}
