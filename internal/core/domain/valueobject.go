package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/CoreDX1/File-Explorer-2/internal/core/fault"
	"github.com/CoreDX1/File-Explorer-2/internal/core/monad"
)

// Value objects wrap raw account fields so an invalid value cannot be
// constructed. Each exposes a pure Validate (policy check only) and a
// Create that validates and wraps. Validators are independent; callers
// aggregate failures across fields instead of short-circuiting.

const (
	maxEmailLength    = 254
	maxNameLength     = 50
	minPasswordLength = 8
	maxPasswordLength = 100
	minPhoneLength    = 8
	maxPhoneLength    = 15

	// passwordSymbols is the accepted special-character set.
	passwordSymbols = "@$!%*?&#^_-"
)

var (
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	namePattern   = regexp.MustCompile(`^[\p{L}\s]+$`)
	phoneStripper = regexp.MustCompile(`[^\d+]`)
)

// Email is a validated, lower-cased email address.
type Email struct {
	value string
}

// ValidateEmail checks the raw value against the email policy.
func ValidateEmail(raw string) monad.Result[monad.Unit] {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return monad.Fail[monad.Unit](fault.Validation("Email is required"))
	}
	if len(trimmed) > maxEmailLength {
		return monad.Fail[monad.Unit](fault.Validation(fmt.Sprintf("Email must not exceed %d characters", maxEmailLength)))
	}
	if !emailPattern.MatchString(trimmed) {
		return monad.Fail[monad.Unit](fault.Validation("Invalid email address"))
	}
	return monad.OkUnit()
}

// NewEmail validates and wraps the raw value, normalizing to lower case.
func NewEmail(raw string) monad.Result[Email] {
	if v := ValidateEmail(raw); v.IsFailure() {
		return monad.Fail[Email](v.Err())
	}
	return monad.Ok(Email{value: strings.ToLower(strings.TrimSpace(raw))})
}

// String returns the normalized address.
func (e Email) String() string { return e.value }

// Password carries only the policy; the raw secret is never stored, so the
// value object has no wrapped representation beyond validation.
type Password struct {
	value string
}

// ValidatePassword enforces the full password policy for contexts where a
// password is required (login payloads, resets, registration).
func ValidatePassword(raw string) monad.Result[monad.Unit] {
	if strings.TrimSpace(raw) == "" {
		return monad.Fail[monad.Unit](fault.Validation("Password is required"))
	}
	return validatePasswordPolicy(raw)
}

// ValidatePasswordIfProvided treats an absent password as "no change
// requested" and passes it; present values go through the full policy.
// Used by profile updates.
func ValidatePasswordIfProvided(raw string) monad.Result[monad.Unit] {
	if strings.TrimSpace(raw) == "" {
		return monad.OkUnit()
	}
	return validatePasswordPolicy(raw)
}

func validatePasswordPolicy(raw string) monad.Result[monad.Unit] {
	length := len([]rune(raw))
	if length < minPasswordLength {
		return monad.Fail[monad.Unit](fault.Validation(fmt.Sprintf("Password must be at least %d characters", minPasswordLength)))
	}
	if length > maxPasswordLength {
		return monad.Fail[monad.Unit](fault.Validation(fmt.Sprintf("Password must not exceed %d characters", maxPasswordLength)))
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range raw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return monad.Fail[monad.Unit](fault.Validation("Password must contain at least one uppercase letter"))
	case !hasLower:
		return monad.Fail[monad.Unit](fault.Validation("Password must contain at least one lowercase letter"))
	case !hasDigit:
		return monad.Fail[monad.Unit](fault.Validation("Password must contain at least one digit"))
	case !hasSymbol:
		return monad.Fail[monad.Unit](fault.Validation(fmt.Sprintf("Password must contain at least one special character (%s)", passwordSymbols)))
	}

	return monad.OkUnit()
}

// NewPassword validates and wraps a required password.
func NewPassword(raw string) monad.Result[Password] {
	if v := ValidatePassword(raw); v.IsFailure() {
		return monad.Fail[Password](v.Err())
	}
	return monad.Ok(Password{value: raw})
}

// String returns the raw password for hashing. Never persist it.
func (p Password) String() string { return p.value }

// FirstName is a validated given name.
type FirstName struct {
	value string
}

// ValidateFirstName checks the raw value against the name policy.
func ValidateFirstName(raw string) monad.Result[monad.Unit] {
	return validateName(raw, "First name")
}

// NewFirstName validates and wraps the raw value.
func NewFirstName(raw string) monad.Result[FirstName] {
	if v := ValidateFirstName(raw); v.IsFailure() {
		return monad.Fail[FirstName](v.Err())
	}
	return monad.Ok(FirstName{value: strings.TrimSpace(raw)})
}

// String returns the wrapped name.
func (n FirstName) String() string { return n.value }

// LastName is a validated family name.
type LastName struct {
	value string
}

// ValidateLastName checks the raw value against the name policy.
func ValidateLastName(raw string) monad.Result[monad.Unit] {
	return validateName(raw, "Last name")
}

// NewLastName validates and wraps the raw value.
func NewLastName(raw string) monad.Result[LastName] {
	if v := ValidateLastName(raw); v.IsFailure() {
		return monad.Fail[LastName](v.Err())
	}
	return monad.Ok(LastName{value: strings.TrimSpace(raw)})
}

// String returns the wrapped name.
func (n LastName) String() string { return n.value }

func validateName(raw, field string) monad.Result[monad.Unit] {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return monad.Fail[monad.Unit](fault.Validation(fmt.Sprintf("%s is required", field)))
	}
	if len([]rune(trimmed)) > maxNameLength {
		return monad.Fail[monad.Unit](fault.Validation(fmt.Sprintf("%s must not exceed %d characters", field, maxNameLength)))
	}
	if !namePattern.MatchString(trimmed) {
		return monad.Fail[monad.Unit](fault.Validation(fmt.Sprintf("%s can only contain letters", field)))
	}
	return monad.OkUnit()
}

// Phone is a validated phone number, normalized to digits and a leading
// plus sign.
type Phone struct {
	value string
}

// ValidatePhone checks the raw value against the phone policy.
func ValidatePhone(raw string) monad.Result[monad.Unit] {
	if strings.TrimSpace(raw) == "" {
		return monad.Fail[monad.Unit](fault.Validation("Phone number is required"))
	}
	cleaned := phoneStripper.ReplaceAllString(raw, "")
	if len(cleaned) < minPhoneLength || len(cleaned) > maxPhoneLength {
		return monad.Fail[monad.Unit](fault.Validation(fmt.Sprintf("Phone number must be between %d and %d digits", minPhoneLength, maxPhoneLength)))
	}
	return monad.OkUnit()
}

// NewPhone validates and wraps the raw value in normalized form.
func NewPhone(raw string) monad.Result[Phone] {
	if v := ValidatePhone(raw); v.IsFailure() {
		return monad.Fail[Phone](v.Err())
	}
	return monad.Ok(Phone{value: phoneStripper.ReplaceAllString(raw, "")})
}

// String returns the normalized number.
func (p Phone) String() string { return p.value }

// CollectFailures runs the provided validations and returns every failure
// message in order. Validators never short-circuit across fields.
func CollectFailures(results ...monad.Result[monad.Unit]) []string {
	var messages []string
	for _, r := range results {
		if r.IsFailure() {
			messages = append(messages, r.Err().Message)
		}
	}
	return messages
}
