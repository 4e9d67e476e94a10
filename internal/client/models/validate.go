package models

import (
	"errors"
	"fmt"
	"regexp"
)

// Validation limits enforced at the form layer before anything reaches the
// session manager or the network.
const (
	PasswordMinLength = 6
	NameMinLength     = 2
	AgeMin            = 18
	AgeMax            = 100
	BioMaxLength      = 500
	MessageMaxLength  = 500
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrNameTooShort     = fmt.Errorf("name must be at least %d characters", NameMinLength)
	ErrEmailInvalid     = errors.New("invalid email address")
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", PasswordMinLength)
	ErrAgeOutOfRange    = fmt.Errorf("age must be between %d and %d", AgeMin, AgeMax)
	ErrBioTooLong       = fmt.Errorf("bio must be at most %d characters", BioMaxLength)
	ErrMessageTooLong   = fmt.Errorf("message must be at most %d characters", MessageMaxLength)
	ErrMessageEmpty     = errors.New("message is empty")
	ErrUserIncomplete   = errors.New("user record is incomplete")
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Validate checks the signup form constraints.
func (d SignupData) Validate() error {
	if len(d.Name) < NameMinLength {
		return ErrNameTooShort
	}
	if !ValidEmail(d.Email) {
		return ErrEmailInvalid
	}
	if len(d.Password) < PasswordMinLength {
		return ErrPasswordTooShort
	}
	if d.Age < AgeMin || d.Age > AgeMax {
		return ErrAgeOutOfRange
	}
	if len(d.Bio) > BioMaxLength {
		return ErrBioTooLong
	}
	return nil
}

// Validate checks that a User carries the minimum set of populated fields.
func (u User) Validate() error {
	if u.ID <= 0 || u.Email == "" || u.Name == "" {
		return ErrUserIncomplete
	}
	if u.Age < AgeMin || u.Age > AgeMax {
		return ErrAgeOutOfRange
	}
	return nil
}

// ValidateMessageContent checks the composer constraint on outgoing messages.
func ValidateMessageContent(s string) error {
	if s == "" {
		return ErrMessageEmpty
	}
	if len(s) > MessageMaxLength {
		return ErrMessageTooLong
	}
	return nil
}
