package common

import "strings"

// swaggerPlaceholder is the value API explorers prefill string fields with
const swaggerPlaceholder = "string"

// NormalizeInputText trims s and returns "" for blank input and for the
// literal placeholder "string" in any letter case.
func NormalizeInputText(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, swaggerPlaceholder) {
		return ""
	}
	return s
}

// IsCookieBanner reports whether text looks like a cookie consent notice
// rather than a job posting.
func IsCookieBanner(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "kakor") || strings.Contains(lower, "cookies")
}
