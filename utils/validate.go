package authUtils

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[\+]?[1-9][\d]{0,15}$`)
)

// ValidEmail checks basic email shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone checks a phone number, tolerating spaces and dashes.
func ValidPhone(phone string) bool {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(phone, " ", ""), "-", "")
	return phonePattern.MatchString(cleaned)
}
