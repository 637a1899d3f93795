package application

import (
	"context"
	"errors"

	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
	"github.com/oksasatya/go-auth-api/internal/domain/entity"
	repo "github.com/oksasatya/go-auth-api/internal/domain/repository"
)

const (
	msgUnauthorized        = "Unauthorized request"
	msgInvalidAccessToken  = "Invalid access token"
	msgInvalidRefreshToken = "Refresh token is expired or used"
	msgSessionUserMissing  = "User not found"
	msgSessionFailed       = "Something went wrong while loading the session"
)

// Authenticate resolves an access token to the caller's profile.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*entity.Profile, error) {
	if accessToken == "" {
		return nil, autherr.New(autherr.Unauthenticated, msgUnauthorized)
	}
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return nil, tokenError(err, msgInvalidAccessToken)
	}
	return s.CurrentAccount(ctx, claims.UserID)
}

// CurrentAccount returns the sanitized profile, served from the profile
// cache when one is configured.
func (s *Service) CurrentAccount(ctx context.Context, accountID string) (*entity.Profile, error) {
	if s.Profiles != nil {
		p, err := s.Profiles.Get(ctx, accountID)
		if err != nil {
			s.Logger.WithError(err).WithField("account_id", accountID).Warn("profile cache read failed")
		} else if p != nil {
			return p, nil
		}
	}

	acc, err := s.Accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, autherr.New(autherr.Unauthenticated, msgSessionUserMissing)
		}
		s.Logger.WithError(err).WithField("account_id", accountID).Error("load session account failed")
		return nil, autherr.Internalf(err, msgSessionFailed)
	}
	p := acc.Profile()
	if s.Profiles != nil {
		if err := s.Profiles.Set(ctx, p); err != nil {
			s.Logger.WithError(err).WithField("account_id", accountID).Warn("profile cache write failed")
		}
	}
	return p, nil
}

// Refresh rotates the token pair. The presented refresh token must be the
// one stored by the last login or refresh.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, autherr.New(autherr.Unauthenticated, msgUnauthorized)
	}
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, tokenError(err, msgInvalidRefreshToken)
	}

	acc, err := s.Accounts.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, autherr.New(autherr.TokenInvalid, msgInvalidRefreshToken)
		}
		s.Logger.WithError(err).WithField("account_id", claims.UserID).Error("refresh lookup failed")
		return nil, autherr.Internalf(err, msgSessionFailed)
	}
	if !acc.RefreshTokenMatches(refreshToken) {
		return nil, autherr.New(autherr.TokenInvalid, msgInvalidRefreshToken)
	}

	pair, err := s.GenerateAccessAndRefreshTokens(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, ActionRefresh, acc.ID, acc.Email, nil)
	return &LoginResult{Account: acc.Profile(), Tokens: pair}, nil
}

// Logout forgets the stored refresh token so it can no longer be rotated.
func (s *Service) Logout(ctx context.Context, accountID string) error {
	acc, err := s.Accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return autherr.New(autherr.Unauthenticated, msgSessionUserMissing)
		}
		s.Logger.WithError(err).WithField("account_id", accountID).Error("logout lookup failed")
		return autherr.Internalf(err, msgSessionFailed)
	}
	acc.RefreshToken = nil
	if err := s.Accounts.Save(ctx, acc); err != nil {
		s.Logger.WithError(err).WithField("account_id", acc.ID).Error("clear refresh token failed")
		return autherr.Internalf(err, msgSessionFailed)
	}
	s.invalidateProfile(ctx, acc.ID)
	s.audit(ctx, ActionLogout, acc.ID, acc.Email, nil)
	return nil
}
