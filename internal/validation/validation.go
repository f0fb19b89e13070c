// Package validation holds input validation rules for user-supplied fields.
package validation

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

const (
	minPasswordLen = 12
	maxPasswordLen = 128
	minUsernameLen = 3
	maxUsernameLen = 30
	maxEmailLen    = 254
)

// usernameRe requires alphanumeric start and end with letters, digits,
// underscores or dashes in between.
var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*[a-zA-Z0-9]$`)

// ValidatePassword enforces the password policy: length bounds plus at least
// one uppercase letter, one lowercase letter, one digit and one special
// character.
func ValidatePassword(password string) error {
	runes := []rune(password)
	if len(runes) < minPasswordLen {
		return errors.New("password must be at least 12 characters long")
	}
	if len(runes) > maxPasswordLen {
		return errors.New("password must be at most 128 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return errors.New("password must contain at least one digit")
	}
	if !hasSpecial {
		return errors.New("password must contain at least one special character")
	}
	return nil
}

// ValidateUsername checks length and character rules for usernames.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLen {
		return errors.New("username must be at least 3 characters long")
	}
	if len(username) > maxUsernameLen {
		return errors.New("username must be at most 30 characters long")
	}
	if !usernameRe.MatchString(username) {
		return errors.New("username may only contain letters, digits, underscores and dashes, and must start and end with a letter or digit")
	}
	return nil
}

// ValidateEmail checks that the address parses per RFC 5322 and fits the
// practical length limit.
func ValidateEmail(email string) error {
	if len(email) > maxEmailLen {
		return errors.New("email must be at most 254 characters long")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("invalid email address")
	}

	// Reject addresses without a domain dot or with a trailing dot, which
	// net/mail tolerates.
	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return errors.New("invalid email address")
	}
	return nil
}
