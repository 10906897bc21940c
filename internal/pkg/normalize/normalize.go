// Package normalize canonicalizes the contact and address fields the carrier
// is strict about: phone numbers, postal codes and free-text address lines.
// Every function is pure and safe for concurrent use.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MinimumAddressLength is the shortest combined address text the carrier accepts.
	MinimumAddressLength = 3

	// AddressPlaceholder replaces address text that cannot be recovered.
	AddressPlaceholder = "Address not provided"

	indiaCountryCode = "91"
	phoneLength      = 10
	postalLength     = 6
)

// DigitsOnly drops every rune that is not an ASCII digit.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone10 reduces s to the 10-digit subscriber number. A leading "91"
// is stripped only from a 12-digit number; longer inputs keep their last 10
// digits. Shorter inputs are returned as digits without padding so they fail
// validation downstream.
func NormalizePhone10(s string) string {
	digits := DigitsOnly(s)
	if len(digits) == phoneLength+len(indiaCountryCode) && strings.HasPrefix(digits, indiaCountryCode) {
		digits = digits[len(indiaCountryCode):]
	}
	if len(digits) > phoneLength {
		digits = digits[len(digits)-phoneLength:]
	}
	return digits
}

// IsTenDigitPhone reports whether s is exactly ten ASCII digits.
func IsTenDigitPhone(s string) bool {
	return isDigits(s, phoneLength)
}

// IsSixDigitPostal reports whether s is exactly six ASCII digits.
func IsSixDigitPostal(s string) bool {
	return isDigits(s, postalLength)
}

// AddressLength is the rune length of both lines joined by a space, trimmed.
func AddressLength(line1, line2 string) int {
	joined := strings.TrimSpace(strings.TrimSpace(line1) + " " + strings.TrimSpace(line2))
	return utf8.RuneCountInString(joined)
}

// IsSufficientAddress reports whether the two lines together reach MinimumAddressLength.
func IsSufficientAddress(line1, line2 string) bool {
	return AddressLength(line1, line2) >= MinimumAddressLength
}

// EnsureMinimumAddress returns the lines unchanged when they are long enough.
// Otherwise line 1 becomes the first of line1, line2 and fallback that is long
// enough on its own, or AddressPlaceholder, and line 2 is cleared. A candidate
// that is non-empty but shorter than MinimumAddressLength is skipped, so the
// result always reaches the minimum.
func EnsureMinimumAddress(line1, line2, fallback string) (string, string) {
	if IsSufficientAddress(line1, line2) {
		return line1, line2
	}

	for _, candidate := range []string{line1, line2, fallback} {
		candidate = collapseSpaces(candidate)
		if utf8.RuneCountInString(candidate) >= MinimumAddressLength {
			return candidate, ""
		}
	}

	return AddressPlaceholder, ""
}

// CollapseSpaces trims s and folds internal whitespace runs into one space.
func CollapseSpaces(s string) string {
	return collapseSpaces(s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
