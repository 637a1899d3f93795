package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-auth-api/internal/domain/repository"
)

const accountColumns = `id, email, name, password_hash, is_verified, refresh_token, reset_token, created_at, updated_at`

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	if err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.IsVerified,
		&a.RefreshToken, &a.ResetToken, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE email = $1
	`, email)
	a, err := scanAccount(row)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return a, err
}

// FindByID treats an id that is not a uuid as a missing account.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	if !validID(id) {
		return nil, repository.ErrAccountNotFound
	}
	row := r.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
	`, id)
	a, err := scanAccount(row)
	if isInvalidText(err) {
		return nil, repository.ErrAccountNotFound
	}
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return a, err
}

// Create inserts a and fills its ID and timestamps.
func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO accounts (email, name, password_hash, is_verified)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, a.Email, a.Name, a.PasswordHash, a.IsVerified)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrEmailTaken
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) Save(ctx context.Context, a *entity.Account) error {
	if !validID(a.ID) {
		return repository.ErrAccountNotFound
	}
	a.UpdatedAt = time.Now().UTC()

	res, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET email = $1, name = $2, password_hash = $3, is_verified = $4,
		    refresh_token = $5, reset_token = $6, updated_at = $7
		WHERE id = $8
	`, a.Email, a.Name, a.PasswordHash, a.IsVerified, a.RefreshToken, a.ResetToken, a.UpdatedAt, a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrEmailTaken
		}
		return fmt.Errorf("save account: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrAccountNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
