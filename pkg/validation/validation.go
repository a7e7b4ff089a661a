package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// EmailRegex validates email format
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// JoinKeyRegex validates the "<userID>:<eventID>" join key format
	JoinKeyRegex = regexp.MustCompile(`^[^:\s]+:[^:\s]+$`)
)

// ValidateEmail validates email address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email is too long (max 254 characters)")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword validates password
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return fmt.Errorf("password is too long (max 72 characters)")
	}
	return nil
}

// ValidateDisplayName validates a user display name
func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name must not be blank")
	}
	if len(name) > 100 {
		return fmt.Errorf("name is too long (max 100 characters)")
	}
	return nil
}

// ValidateEventTitle validates an event title
func ValidateEventTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title is too long (max 200 characters)")
	}
	return nil
}

// ValidateJoinKey validates the join key format before it is split
func ValidateJoinKey(key string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}
	if !JoinKeyRegex.MatchString(key) {
		return fmt.Errorf("key must have the form userId:eventId")
	}
	return nil
}

// ValidateSearchQuery validates a substring search query
func ValidateSearchQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}
	if len(query) > 254 {
		return fmt.Errorf("query is too long (max 254 characters)")
	}
	return nil
}
