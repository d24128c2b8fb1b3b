// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername checks that a username is 3-30 characters of letters,
// digits, and underscores.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username must be 3-30 characters and contain only letters, digits, and underscores")
	}
	return nil
}

// ValidateEmail checks that an email address has a plausible shape.
func ValidateEmail(email string) error {
	if len(email) > 254 || !emailRe.MatchString(email) {
		return fmt.Errorf("email address is not valid")
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	return nil
}

// ValidatePostContent checks post content length bounds.
func ValidatePostContent(content string) error {
	if content == "" {
		return fmt.Errorf("content is required")
	}
	if len(content) > 5000 {
		return fmt.Errorf("content too long (max 5000 characters)")
	}
	return nil
}

// ValidateCommentContent checks comment content length bounds.
func ValidateCommentContent(content string) error {
	if content == "" {
		return fmt.Errorf("content is required")
	}
	if len(content) > 2000 {
		return fmt.Errorf("comment too long (max 2000 characters)")
	}
	return nil
}
