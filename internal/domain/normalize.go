package domain

import (
	"strings"
)

// Display placeholders for absent optional fields.
const (
	PlaceholderNotSpecified = "Not specified"
	PlaceholderNoSubject    = "No subject"
	PlaceholderNoName       = "No name provided"
)

// NormalizeEmail trims and lowercases an email address for lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TrimToNil trims s and returns nil when nothing is left.
func TrimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// ContainsFold reports whether substr is within s, ignoring case.
// An empty substr matches everything.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func orPlaceholder(s *string, placeholder string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return placeholder
	}
	return *s
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
