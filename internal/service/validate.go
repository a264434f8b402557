package service

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z'\-\s]+$`)
	phoneRe = regexp.MustCompile(`^(?:\+91|0)?[6-9][0-9]{9}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// identityFields is the shared shape validation for signup and profile
// update. Violations accumulate so the client sees every problem at once.
type identityFields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (f *identityFields) normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Phone = strings.TrimSpace(f.Phone)
}

func (f *identityFields) violations() []string {
	var errs []string

	errs = append(errs, nameViolations("First name", f.FirstName)...)
	errs = append(errs, nameViolations("Last name", f.LastName)...)

	if !phoneRe.MatchString(f.Phone) {
		errs = append(errs, "Enter a valid 10-digit phone number")
	}

	if !emailRe.MatchString(f.Email) {
		errs = append(errs, "Enter a valid email")
	}
	if len(f.Email) > 100 {
		errs = append(errs, "Email must be less than 100 characters")
	}

	return errs
}

func nameViolations(field, value string) []string {
	var errs []string
	if len(value) < 2 {
		errs = append(errs, field+" must be at least 2 characters")
	}
	if len(value) > 50 {
		errs = append(errs, field+" must be less than 50 characters")
	}
	if value != "" && !nameRe.MatchString(value) {
		errs = append(errs, field+" contains invalid characters")
	}
	return errs
}

func passwordViolations(password string) []string {
	var errs []string
	if len(password) < 8 {
		errs = append(errs, "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		errs = append(errs, "Password must be less than 128 characters")
	}
	return errs
}

// parsePreferences checks the exactly-3 rule and that every entry is a
// well-formed category identifier.
func parsePreferences(prefs []string) ([]uuid.UUID, []string) {
	var errs []string
	if len(prefs) != 3 {
		return nil, []string{"Select exactly 3 preferences"}
	}

	ids := make([]uuid.UUID, 0, len(prefs))
	for _, p := range prefs {
		id, err := uuid.Parse(p)
		if err != nil {
			errs = append(errs, "Invalid preference ID: "+p)
			continue
		}
		ids = append(ids, id)
	}
	return ids, errs
}
