package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/oksasatya/go-auth-api/internal/domain/credential"
	pginfra "github.com/oksasatya/go-auth-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
)

type seeded struct {
	ID    string
	Email string
}

const upsertAccount = `
	INSERT INTO accounts (email, name, password_hash, is_verified)
	VALUES ($1, $2, $3, TRUE)
	ON CONFLICT ((lower(email))) DO UPDATE
	SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash, is_verified = TRUE, updated_at = now()
	RETURNING id
`

// seedAccount applies the signup rules and upserts a verified account.
func seedAccount(ctx context.Context, db pginfra.DB, name, email, password string) (seeded, error) {
	if err := credential.ValidateSignup(name, email, password); err != nil {
		return seeded{}, err
	}
	email = strings.ToLower(email)
	name = strings.TrimSpace(name)

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return seeded{}, fmt.Errorf("hash password: %w", err)
	}

	out := seeded{Email: email}
	if err := db.QueryRow(ctx, upsertAccount, email, name, hash).Scan(&out.ID); err != nil {
		return seeded{}, fmt.Errorf("upsert account: %w", err)
	}
	return out, nil
}
