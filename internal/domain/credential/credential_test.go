package credential

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "Abcdef1!", true},
		{"valid long", "Abc12345!", true},
		{"all lowercase", "abcdefgh", false},
		{"no lowercase no symbol", "ABCDEFG1", false},
		{"no symbol", "Abcdefg1", false},
		{"too short", "Ab1!", false},
		{"symbol outside allowed set", "Abcdef1#", false},
		{"space not allowed", "Abc def1!", false},
		{"non ascii", "Äbcdef1!", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, autherr.WeakPassword, autherr.KindOf(err))
		})
	}
}

func TestIsGmail(t *testing.T) {
	assert.True(t, IsGmail("a@gmail.com"))
	assert.True(t, IsGmail("first.last+tag@gmail.com"))
	assert.True(t, IsGmail("Alice@gmail.com"))
	assert.False(t, IsGmail("a@yahoo.com"))
	assert.False(t, IsGmail("a@gmail.co"))
	assert.False(t, IsGmail("a@GMAIL.COM"))
	assert.False(t, IsGmail("a@sub.gmail.com"))
	assert.False(t, IsGmail(" a@gmail.com"))
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name     string
		in       [3]string
		wantKind autherr.Kind
	}{
		{"valid", [3]string{"Alice", "alice@gmail.com", "Abc12345!"}, ""},
		{"missing name", [3]string{"", "alice@gmail.com", "Abc12345!"}, autherr.MissingField},
		{"blank email", [3]string{"Alice", "   ", "Abc12345!"}, autherr.MissingField},
		{"missing password", [3]string{"Alice", "alice@gmail.com", ""}, autherr.MissingField},
		{"short name after trim", [3]string{"  Al  ", "alice@gmail.com", "Abc12345!"}, autherr.NameTooShort},
		{"rejected domain", [3]string{"Alice", "alice@yahoo.com", "Abc12345!"}, autherr.EmailDomainRejected},
		{"weak password", [3]string{"Alice", "alice@gmail.com", "abcdefgh"}, autherr.WeakPassword},
		{"name checked before email", [3]string{"Al", "alice@yahoo.com", "weak"}, autherr.NameTooShort},
		{"email checked before password", [3]string{"Alice", "alice@yahoo.com", "weak"}, autherr.EmailDomainRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignup(tt.in[0], tt.in[1], tt.in[2])
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, autherr.KindOf(err))
		})
	}
}

func TestPasswordsMatch(t *testing.T) {
	assert.True(t, PasswordsMatch("Newpass1!", "Newpass1!"))
	assert.False(t, PasswordsMatch("Newpass1!", "newpass1!"))

	assert.NoError(t, ValidatePasswordsMatch("x", "x"))
	assert.True(t, autherr.Is(ValidatePasswordsMatch("x", "y"), autherr.PasswordMismatch))
}

func TestRegisterRulesOnForeignValidator(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterRules(v))

	type payload struct {
		Email    string `validate:"gmail"`
		Password string `validate:"strongpwd"`
	}
	assert.NoError(t, v.Struct(payload{Email: "bob@gmail.com", Password: "Abcdef1!"}))
	assert.Error(t, v.Struct(payload{Email: "bob@yahoo.com", Password: "Abcdef1!"}))
	assert.Error(t, v.Struct(payload{Email: "bob@gmail.com", Password: "abcdefgh"}))
}
