package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailRegex accepts local@domain.tld where the final label has at least two letters.
var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// IsEmail reports whether s, trimmed of surrounding whitespace, is a syntactically
// valid email address. No DNS or mailbox verification is performed.
func IsEmail(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}

// Required checks that a string is not blank.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
		},
	}
}

// ValidEmail checks the email syntax. Blank values fail too; pair with Required
// only when a distinct message is wanted.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsEmail(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "invalid email format",
			Value:   value,
		},
	}
}

// MaxLenString checks the rune length of a string.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters", max),
		},
	}
}
