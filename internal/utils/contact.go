// Package utils normalizes guest contact details before they are stored.
package utils

import "strings"

// NormalizeString trims the value and collapses runs of inner whitespace.
func NormalizeString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone keeps ASCII digits and a leading plus sign.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case i == 0 && r == '+':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone expects 7 to 15 digits, the E.164 bounds.
func IsValidPhone(phone string) bool {
	digits := strings.TrimPrefix(NormalizePhone(phone), "+")
	return len(digits) >= 7 && len(digits) <= 15
}
