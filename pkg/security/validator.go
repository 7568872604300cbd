package security

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

const (
	// MaxFilterValueLength defines the maximum allowed length for a single filter value
	MaxFilterValueLength = 100
)

// dangerousPatterns contains regex patterns that could indicate SQL injection attempts
var dangerousPatterns = []*regexp.Regexp{
	// SQL injection patterns
	regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|create|alter|exec|execute)\b`),
	regexp.MustCompile(`(?i)\b(or|and)\s+\d+\s*=\s*\d+`),
	regexp.MustCompile(`(?i)\b(or|and)\s+['"].*['"]\s*=\s*['"].*['"]`),
	regexp.MustCompile(`(--|#|/\*|\*/)`),
	regexp.MustCompile(`(?i)\b(waitfor|benchmark|sleep)\b`),

	// XSS patterns (if reflected back into an admin page)
	regexp.MustCompile(`(?i)(<script|</script|javascript:|vbscript:|onload=|onerror=)`),
}

// ValidateFilterValue validates and trims a single filter value before
// it is interpolated into a LIKE clause.
func ValidateFilterValue(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	if len(value) > MaxFilterValueLength {
		return "", errors.New("filter value too long")
	}

	value = strings.TrimSpace(value)

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(value) {
			return "", errors.New("filter value contains invalid characters")
		}
	}

	for _, char := range value {
		if !isValidFilterChar(char) {
			return "", errors.New("filter value contains invalid characters")
		}
	}

	return value, nil
}

// isValidFilterChar permits letters, digits, whitespace and the
// punctuation that shows up in names, usernames and phone numbers.
func isValidFilterChar(char rune) bool {
	if unicode.IsLetter(char) || unicode.IsDigit(char) || unicode.IsSpace(char) {
		return true
	}
	switch char {
	case '@', '.', '_', '-', '+', '\'':
		return true
	}
	return false
}
