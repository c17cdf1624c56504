package validators

import "strings"

// NormalizeEmail lowercases and trims an address before it is stored or
// compared; uniqueness of emails is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
