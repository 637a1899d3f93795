package application

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
	"github.com/oksasatya/go-auth-api/internal/domain/credential"
	"github.com/oksasatya/go-auth-api/internal/domain/entity"
	repo "github.com/oksasatya/go-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
	mailtpl "github.com/oksasatya/go-auth-api/pkg/mailer/templates"
)

const (
	msgInvalidResetToken = "Invalid token"
	msgResetSendFailed   = "Failed to send password reset email"
	msgResetFailed       = "Something went wrong while resetting password"
)

type ResetPasswordInput struct {
	Token           string
	Password        string
	ConfirmPassword string
}

// ForgotPassword issues a reset token, stores it on the account and mails
// the reset link. Each call replaces the previously stored token.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return autherr.New(autherr.MissingField, msgEmailRequired)
	}

	acc, err := s.Accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			if s.Settings.ConcealUnknownEmail {
				s.Logger.Debug("forgot password for unknown email")
				return nil
			}
			return autherr.New(autherr.UserNotFound, msgUserNotFound)
		}
		s.Logger.WithError(err).Error("forgot password lookup failed")
		return autherr.Internalf(err, msgResetFailed)
	}

	tok, exp, err := s.JWT.GenerateActionToken(helpers.PurposeResetPassword, acc.Email, s.Settings.ResetTokenTTL)
	if err != nil {
		s.Logger.WithError(err).WithField("account_id", acc.ID).Error("generate reset token failed")
		return autherr.Internalf(err, msgResetFailed)
	}
	acc.ResetToken = &tok
	if err := s.Accounts.Save(ctx, acc); err != nil {
		s.Logger.WithError(err).WithField("account_id", acc.ID).Error("store reset token failed")
		return autherr.Internalf(err, msgResetFailed)
	}

	if err := s.sendReset(ctx, acc, tok, exp); err != nil {
		s.Logger.WithError(err).WithField("account_id", acc.ID).Error("send reset email failed")
		return autherr.Internalf(err, msgResetSendFailed)
	}
	s.audit(ctx, ActionResetRequested, acc.ID, acc.Email, nil)
	return nil
}

func (s *Service) sendReset(ctx context.Context, a *entity.Account, tok string, exp time.Time) error {
	data := mailtpl.NewResetPasswordData(s.Settings.AppName, a.Name, s.Links.ResetPasswordLink(tok), mailtpl.WithExpiresAt(exp))
	return s.sendTemplate(ctx, a.Email, mailtpl.ResetPassword, data)
}

// ResetPassword sets a new password when the token is valid, unexpired and
// still the one stored on the account. The token and any stored refresh
// token are cleared on success.
func (s *Service) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if err := credential.ValidatePasswordStrength(in.Password); err != nil {
		return err
	}
	if err := credential.ValidatePasswordsMatch(in.Password, in.ConfirmPassword); err != nil {
		return err
	}

	claims, err := s.JWT.ParseActionToken(in.Token, helpers.PurposeResetPassword)
	if err != nil {
		return tokenError(err, msgInvalidResetToken)
	}

	acc, err := s.Accounts.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return autherr.New(autherr.TokenInvalid, msgInvalidResetToken)
		}
		s.Logger.WithError(err).Error("reset lookup failed")
		return autherr.Internalf(err, msgResetFailed)
	}
	if !acc.ResetTokenMatches(in.Token) {
		return autherr.New(autherr.TokenInvalid, msgInvalidResetToken)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return err
	}
	acc.PasswordHash = hash
	acc.ResetToken = nil
	acc.RefreshToken = nil
	if err := s.Accounts.Save(ctx, acc); err != nil {
		s.Logger.WithError(err).WithField("account_id", acc.ID).Error("save new password failed")
		return autherr.Internalf(err, msgResetFailed)
	}
	s.invalidateProfile(ctx, acc.ID)
	s.audit(ctx, ActionResetConfirmed, acc.ID, acc.Email, nil)
	return nil
}
