package application

import (
	"context"
	"errors"

	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
	repo "github.com/oksasatya/go-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
)

const (
	msgInvalidVerifyToken = "Invalid or expired token"
	msgAccountNotFound    = "Account not found"
	msgVerifyFailed       = "Something went wrong while verifying email"
)

// VerifyEmail marks the account named by a verification token as verified.
// Verifying an already verified account succeeds.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.JWT.ParseActionToken(token, helpers.PurposeVerifyEmail)
	if err != nil {
		return tokenError(err, msgInvalidVerifyToken)
	}

	acc, err := s.Accounts.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return autherr.New(autherr.AccountNotFound, msgAccountNotFound)
		}
		s.Logger.WithError(err).Error("verify lookup failed")
		return autherr.Internalf(err, msgVerifyFailed)
	}
	if acc.IsVerified {
		return nil
	}

	acc.IsVerified = true
	if err := s.Accounts.Save(ctx, acc); err != nil {
		s.Logger.WithError(err).WithField("account_id", acc.ID).Error("save verified account failed")
		return autherr.Internalf(err, msgVerifyFailed)
	}
	s.invalidateProfile(ctx, acc.ID)
	s.audit(ctx, ActionVerifyEmail, acc.ID, acc.Email, nil)
	return nil
}
