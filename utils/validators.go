package utils

import "strings"

// Signup validation, same rules the mobile clients apply.

func ValidEmail(value string) bool {
	return strings.Contains(value, "@") && strings.Contains(value, ".")
}

func ValidPassword(value string) bool {
	return len(value) >= 6
}

func NonEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}
