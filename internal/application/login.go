package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
	"github.com/oksasatya/go-auth-api/internal/domain/entity"
	repo "github.com/oksasatya/go-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
)

const (
	msgEmailRequired    = "Email is required"
	msgPasswordRequired = "Password is required"
	msgUserNotFound     = "User doesn't exist or invalid email"
	msgInvalidPassword  = "Invalid password"
	msgLoginFailed      = "Something went wrong while logging in"
)

type LoginResult struct {
	Account *entity.Profile
	Tokens  TokenPair
}

// Login checks the password against the account stored under exactly this
// email and issues a fresh token pair.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" {
		return nil, autherr.New(autherr.MissingField, msgEmailRequired)
	}
	if password == "" {
		return nil, autherr.New(autherr.MissingField, msgPasswordRequired)
	}

	acc, err := s.Accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			s.audit(ctx, ActionLoginFailed, "", email, map[string]any{"reason": "unknown_email"})
			return nil, autherr.New(autherr.UserNotFound, msgUserNotFound)
		}
		s.Logger.WithError(err).Error("login lookup failed")
		return nil, autherr.Internalf(err, msgLoginFailed)
	}

	if !helpers.CompareHashAndPassword(acc.PasswordHash, password) {
		s.audit(ctx, ActionLoginFailed, acc.ID, acc.Email, map[string]any{"reason": "bad_password"})
		return nil, autherr.New(autherr.InvalidCredentials, msgInvalidPassword)
	}

	if helpers.NeedsRehash(acc.PasswordHash) {
		s.upgradeHash(ctx, acc, password)
	}

	pair, err := s.GenerateAccessAndRefreshTokens(ctx, acc.ID)
	if err != nil {
		return nil, err
	}

	loggedIn, err := s.Accounts.FindByID(ctx, acc.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("account_id", acc.ID).Error("reload account after login failed")
		return nil, autherr.Internalf(err, msgLoginFailed)
	}

	s.audit(ctx, ActionLoginSuccess, acc.ID, acc.Email, nil)
	helpers.LogInfo(s.Logger, "login succeeded", logrus.Fields{"account_id": acc.ID})
	return &LoginResult{Account: loggedIn.Profile(), Tokens: pair}, nil
}

// upgradeHash re-hashes the password at the current cost. Failures only log.
func (s *Service) upgradeHash(ctx context.Context, acc *entity.Account, password string) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		helpers.LogError(s.Logger, "rehash password failed", err, logrus.Fields{"account_id": acc.ID})
		return
	}
	acc.PasswordHash = hash
	if err := s.Accounts.Save(ctx, acc); err != nil {
		helpers.LogError(s.Logger, "store rehashed password failed", err, logrus.Fields{"account_id": acc.ID})
	}
}
