package auth

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

// ErrInvalidRegistration is the parent of every registration rule failure.
var ErrInvalidRegistration = errors.New("invalid registration")

var (
	ErrNameRequired        = fmt.Errorf("%w: name is required", ErrInvalidRegistration)
	ErrInvalidName         = fmt.Errorf("%w: name can only contain letters and spaces", ErrInvalidRegistration)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid email format", ErrInvalidRegistration)
	ErrPasswordTooShort    = fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidRegistration)
	ErrPasswordTooLong     = fmt.Errorf("%w: password must be at most 72 characters", ErrInvalidRegistration)
	ErrPasswordNoUppercase = fmt.Errorf("%w: password must contain an uppercase letter", ErrInvalidRegistration)
	ErrPasswordNoDigit     = fmt.Errorf("%w: password must contain a number", ErrInvalidRegistration)
	ErrPasswordNoSpecial   = fmt.Errorf("%w: password must contain a special character", ErrInvalidRegistration)
	ErrPasswordMismatch    = fmt.Errorf("%w: passwords do not match", ErrInvalidRegistration)
	ErrTermsNotAccepted    = fmt.Errorf("%w: terms and conditions must be accepted", ErrInvalidRegistration)
)

const specialCharacters = `!@#$%^&*(),.?":{}|<>`

var namePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// Registration is the sign-up form.
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

// Normalize trims the name and lower-cases the email.
func (r Registration) Normalize() Registration {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return r
}

// Validate returns the first rule the form breaks.
func (r Registration) Validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if !namePattern.MatchString(r.Name) {
		return ErrInvalidName
	}
	if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		return ErrInvalidEmail
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if !r.AcceptTerms {
		return ErrTermsNotAccepted
	}
	return nil
}

// ValidatePassword enforces the password complexity rules.
func ValidatePassword(password string) error {
	if len([]rune(password)) < 8 {
		return ErrPasswordTooShort
	}
	// bcrypt ignores everything past 72 bytes.
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	var upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r) && r <= unicode.MaxASCII:
			upper = true
		case unicode.IsDigit(r) && r <= unicode.MaxASCII:
			digit = true
		case strings.ContainsRune(specialCharacters, r):
			special = true
		}
	}
	switch {
	case !upper:
		return ErrPasswordNoUppercase
	case !digit:
		return ErrPasswordNoDigit
	case !special:
		return ErrPasswordNoSpecial
	}
	return nil
}
