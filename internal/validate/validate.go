// Package validate holds the field-level rules shared by registration and
// profile/catalog updates. Rules return every violation, not just the first.
package validate

import "regexp"

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?\d{10,15}$`)
	upperRe = regexp.MustCompile(`[A-Z]`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
)

// Password returns all strength violations for a candidate password.
func Password(password string) []string {
	var violations []string
	if len(password) < 8 {
		violations = append(violations, "password must be at least 8 characters long")
	}
	if !upperRe.MatchString(password) {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if !lowerRe.MatchString(password) {
		violations = append(violations, "password must contain at least one lowercase letter")
	}
	if !digitRe.MatchString(password) {
		violations = append(violations, "password must contain at least one digit")
	}
	return violations
}

func Email(email string) bool {
	return emailRe.MatchString(email)
}

func Phone(phone string) bool {
	return phoneRe.MatchString(phone)
}
