package application

import (
	"context"
	"errors"

	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
)

const (
	msgTokenGenFailed = "Something went wrong while generating refresh and access token"
	msgTokenExpired   = "Token has expired"
)

// GenerateAccessAndRefreshTokens mints a token pair for the account and
// stores the refresh token on it, replacing the previous one.
func (s *Service) GenerateAccessAndRefreshTokens(ctx context.Context, accountID string) (TokenPair, error) {
	acc, err := s.Accounts.FindByID(ctx, accountID)
	if err != nil {
		s.Logger.WithError(err).WithField("account_id", accountID).Error("load account for tokens failed")
		return TokenPair{}, autherr.Internalf(err, msgTokenGenFailed)
	}
	access, aexp, err := s.JWT.GenerateAccessToken(acc.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("account_id", acc.ID).Error("generate access token failed")
		return TokenPair{}, autherr.Internalf(err, msgTokenGenFailed)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(acc.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("account_id", acc.ID).Error("generate refresh token failed")
		return TokenPair{}, autherr.Internalf(err, msgTokenGenFailed)
	}
	acc.RefreshToken = &refresh
	if err := s.Accounts.Save(ctx, acc); err != nil {
		s.Logger.WithError(err).WithField("account_id", acc.ID).Error("store refresh token failed")
		return TokenPair{}, autherr.Internalf(err, msgTokenGenFailed)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// tokenError maps a token verification failure to TokenExpired or TokenInvalid.
func tokenError(err error, invalidMsg string) error {
	if errors.Is(err, helpers.ErrTokenExpired) {
		return autherr.Wrap(autherr.TokenExpired, msgTokenExpired, err)
	}
	return autherr.Wrap(autherr.TokenInvalid, invalidMsg, err)
}
