package helpers

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

var passwordCost atomic.Int64

func init() { passwordCost.Store(int64(bcrypt.DefaultCost)) }

// SetPasswordCost changes the bcrypt cost used by HashPassword.
func SetPasswordCost(cost int) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	passwordCost.Store(int64(cost))
	return nil
}

// HashPassword returns a bcrypt hash of plain. Inputs over 72 bytes fail
// with bcrypt.ErrPasswordTooLong.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), int(passwordCost.Load()))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NeedsRehash reports whether hash was produced with a cost other than the current one.
func NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost != int(passwordCost.Load())
}
