package kernel

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"deliveryapp/internal/pkg/errs"
)

// RequireText trims value and checks that it is neither blank nor longer than maxLen runes.
// A maxLen of zero disables the length check.
func RequireText(paramName, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errs.NewValueIsRequiredError(paramName)
	}
	return value, checkLength(paramName, value, maxLen)
}

// OptionalText checks the length of value if it is set. Blank input is returned as nil.
func OptionalText(paramName string, value *string, maxLen int) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if err := checkLength(paramName, trimmed, maxLen); err != nil {
		return nil, err
	}
	return &trimmed, nil
}

// RequireEmail is RequireText for email addresses. The result is lower-cased.
func RequireEmail(paramName, value string, maxLen int) (string, error) {
	email, err := RequireText(paramName, value, maxLen)
	if err != nil {
		return "", err
	}
	if _, parseErr := mail.ParseAddress(email); parseErr != nil || strings.ContainsAny(email, " <>") {
		return "", errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%q is not an email address", email))
	}
	return strings.ToLower(email), nil
}

func checkLength(paramName, value string, maxLen int) error {
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return errs.NewValueIsInvalidErrorWithCause(
			paramName,
			fmt.Errorf("length %d exceeds %d", utf8.RuneCountInString(value), maxLen),
		)
	}
	return nil
}
