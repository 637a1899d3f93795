package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-auth-api/internal/domain/entity"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// AccountRepository persists accounts. Lookups return ErrAccountNotFound when
// nothing matches; Create returns ErrEmailTaken on a duplicate email.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindByID(ctx context.Context, id string) (*entity.Account, error)
	Create(ctx context.Context, a *entity.Account) error
	Save(ctx context.Context, a *entity.Account) error
}
