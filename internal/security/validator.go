package security

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Rrens/rag-query-client/internal/domain"
)

// QueryValidator validates query text before it is sent to the service
type QueryValidator struct {
	maxLength int
}

// NewQueryValidator creates a validator enforcing maxLength characters.
// A non-positive maxLength uses the service limit.
func NewQueryValidator(maxLength int) *QueryValidator {
	if maxLength <= 0 {
		maxLength = domain.MaxQueryLength
	}
	return &QueryValidator{maxLength: maxLength}
}

// Normalize drops control characters other than newlines and tabs, then
// trims surrounding whitespace
func (v *QueryValidator) Normalize(text string) string {
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(text)
}

// Validate checks that text is a submittable query
func (v *QueryValidator) Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return &domain.ValidationError{Field: "text", Message: "query text is empty"}
	}
	if !utf8.ValidString(text) {
		return &domain.ValidationError{Field: "text", Message: "query text is not valid UTF-8"}
	}
	if n := utf8.RuneCountInString(text); n > v.maxLength {
		return &domain.ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("query is too long. Max character limit is %d", v.maxLength),
		}
	}
	return nil
}

// ValidateAndPrepare normalizes text and validates the result
func (v *QueryValidator) ValidateAndPrepare(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", &domain.ValidationError{Field: "text", Message: "query text is not valid UTF-8"}
	}
	text = v.Normalize(text)
	if err := v.Validate(text); err != nil {
		return "", err
	}
	return text, nil
}
