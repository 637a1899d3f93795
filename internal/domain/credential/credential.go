// Package credential holds the signup and password rules.
//
// Only Gmail addresses are accepted at signup. This is a product restriction,
// not a general email format check.
package credential

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
)

const (
	// TagGmail is the validator tag for the restricted email domain.
	TagGmail = "gmail"
	// TagStrongPassword is the validator tag for the password strength rule.
	TagStrongPassword = "strongpwd"

	// PasswordSymbols is the set a password must draw at least one symbol from.
	PasswordSymbols = "@$!%*?&"

	minNameLen     = 3
	minPasswordLen = 8
)

const (
	msgMissingField     = "All fields are required"
	msgNameTooShort     = "Full name must be at least 3 characters long"
	msgEmailRejected    = "Only Gmail addresses are allowed"
	msgWeakPassword     = "Password must be at least 8 characters long and include at least 1 uppercase letter, 1 number, and 1 special character"
	msgPasswordMismatch = "Passwords do not match"
)

var (
	gmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterRules(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterRules registers the gmail and strongpwd tags on v.
func RegisterRules(v *validator.Validate) error {
	if err := v.RegisterValidation(TagGmail, func(fl validator.FieldLevel) bool {
		return IsGmail(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation(TagStrongPassword, func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
}

// IsGmail reports whether email is a gmail.com address.
func IsGmail(email string) bool {
	return gmailPattern.MatchString(email)
}

// IsStrongPassword reports whether password is at least 8 characters from
// [A-Za-z0-9@$!%*?&] with an uppercase letter, a digit and a symbol.
func IsStrongPassword(password string) bool {
	if len(password) < minPasswordLen {
		return false
	}
	var upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return upper && digit && symbol
}

// ValidateSignup checks the signup fields in order: presence, name length,
// email domain, password strength. The first failing rule wins.
func ValidateSignup(name, email, password string) error {
	for _, f := range []string{name, email, password} {
		if strings.TrimSpace(f) == "" {
			return autherr.New(autherr.MissingField, msgMissingField)
		}
	}
	if len([]rune(strings.TrimSpace(name))) < minNameLen {
		return autherr.New(autherr.NameTooShort, msgNameTooShort)
	}
	if err := validate.Var(email, TagGmail); err != nil {
		return autherr.Wrap(autherr.EmailDomainRejected, msgEmailRejected, err)
	}
	return ValidatePasswordStrength(password)
}

// ValidatePasswordStrength is the password rule shared by signup and reset.
func ValidatePasswordStrength(password string) error {
	if err := validate.Var(password, TagStrongPassword); err != nil {
		return autherr.Wrap(autherr.WeakPassword, msgWeakPassword, err)
	}
	return nil
}

// PasswordsMatch reports whether the password and its confirmation are equal.
func PasswordsMatch(a, b string) bool {
	return a == b
}

// ValidatePasswordsMatch returns PasswordMismatch when a and b differ.
func ValidatePasswordsMatch(a, b string) error {
	if !PasswordsMatch(a, b) {
		return autherr.New(autherr.PasswordMismatch, msgPasswordMismatch)
	}
	return nil
}
