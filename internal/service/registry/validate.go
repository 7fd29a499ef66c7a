package registry

import (
	"regexp"
	"strings"

	"github.com/mamadbah2/farmreg/internal/domain/models"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10,15}$`)
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// validateRegistration runs the entry-time form checks. Failures block
// submission before any remote call is made.
func validateRegistration(f models.Farmer) error {
	verr := models.NewValidationError()

	if strings.TrimSpace(f.Firstname) == "" {
		verr.Add("firstname", "First name is required.")
	}
	if strings.TrimSpace(f.Lastname) == "" {
		verr.Add("lastname", "Last name is required.")
	}
	if !phonePattern.MatchString(f.Phone) {
		verr.Add("phone", "Valid phone number required.")
	}
	if f.Email != "" && !emailPattern.MatchString(f.Email) {
		verr.Add("email", "Enter a valid email.")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// validateEdit checks only the fields an edit touches, plus the identity
// fields the edit form always requires.
func validateEdit(e models.FarmerEdit) error {
	verr := models.NewValidationError()

	if e.Firstname != nil && strings.TrimSpace(*e.Firstname) == "" {
		verr.Add("firstname", "First name is required.")
	}
	if e.Lastname != nil && strings.TrimSpace(*e.Lastname) == "" {
		verr.Add("lastname", "Last name is required.")
	}
	if e.FarmerID != nil && strings.TrimSpace(*e.FarmerID) == "" {
		verr.Add("farmerID", "Farmer ID is required.")
	}
	if e.Phone != nil && !phonePattern.MatchString(*e.Phone) {
		verr.Add("phone", "Valid phone number required.")
	}
	if e.Email != nil && *e.Email != "" && !emailPattern.MatchString(*e.Email) {
		verr.Add("email", "Enter a valid email.")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
