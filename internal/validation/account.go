package validation

import "strings"

const minPasswordLen = 8

// NewPassword enforces the minimum password length on a password change.
func (v *Validator) NewPassword(pw string) error {
	if len(pw) < minPasswordLen {
		return &Error{Violations: []Violation{{
			Field:   "newPassword",
			Message: "Password must be at least 8 characters long.",
		}}}
	}
	return nil
}

// PasswordsMatch is the registration and reset confirmation check.
func (v *Validator) PasswordsMatch(pw, confirm string) error {
	if pw != confirm {
		return &Error{Violations: []Violation{{
			Field:   "confirmPassword",
			Message: "Passwords do not match.",
		}}}
	}
	return nil
}

// Email checks that an address is well formed.
func (v *Validator) Email(email string) error {
	if err := v.v.Var(strings.TrimSpace(email), "required,email"); err != nil {
		return &Error{Violations: []Violation{{
			Field:   "email",
			Message: "Please enter a valid email address.",
		}}}
	}
	return nil
}

// VerificationCode checks the six digit one-time code.
func (v *Validator) VerificationCode(code string) error {
	if err := v.v.Var(code, "len=6,numeric"); err != nil {
		return &Error{Violations: []Violation{{
			Field:   "verificationCode",
			Message: "Verification code must be 6 digits.",
		}}}
	}
	return nil
}
