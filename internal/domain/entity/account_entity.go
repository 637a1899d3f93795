package entity

import (
	"time"
)

// Account is the aggregate root for the auth domain.
// PasswordHash holds a bcrypt hash; the plaintext password is never stored.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsVerified   bool
	RefreshToken *string
	ResetToken   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type VerificationState string

const (
	Unverified VerificationState = "unverified"
	Verified   VerificationState = "verified"
)

type ResetState string

const (
	NoPendingReset ResetState = "no_pending_reset"
	ResetPending   ResetState = "reset_pending"
)

func (a *Account) VerificationState() VerificationState {
	if a.IsVerified {
		return Verified
	}
	return Unverified
}

func (a *Account) ResetState() ResetState {
	if a.ResetToken != nil {
		return ResetPending
	}
	return NoPendingReset
}

// ResetTokenMatches reports whether token is the most recently issued reset token.
func (a *Account) ResetTokenMatches(token string) bool {
	return a.ResetToken != nil && token != "" && *a.ResetToken == token
}

// RefreshTokenMatches reports whether token is the refresh token stored by the last login.
func (a *Account) RefreshTokenMatches(token string) bool {
	return a.RefreshToken != nil && token != "" && *a.RefreshToken == token
}

// Profile is the sanitized view of an Account returned to callers.
type Profile struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (a *Account) Profile() *Profile {
	return &Profile{
		ID:         a.ID,
		Email:      a.Email,
		Name:       a.Name,
		IsVerified: a.IsVerified,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// Clone returns a deep copy so stores never share token pointers with callers.
func (a *Account) Clone() *Account {
	c := *a
	if a.RefreshToken != nil {
		v := *a.RefreshToken
		c.RefreshToken = &v
	}
	if a.ResetToken != nil {
		v := *a.ResetToken
		c.ResetToken = &v
	}
	return &c
}
