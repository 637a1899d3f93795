package application

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
	"github.com/oksasatya/go-auth-api/internal/domain/credential"
	"github.com/oksasatya/go-auth-api/internal/domain/entity"
	repo "github.com/oksasatya/go-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
	mailtpl "github.com/oksasatya/go-auth-api/pkg/mailer/templates"
)

const (
	msgEmailInUse       = "Email already in use"
	msgRegisterFailed   = "Something went wrong while registering"
	msgVerifySendFailed = "Failed to send verification email"
	msgPasswordTooLong  = "Password must be at most 72 bytes long"
)

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup creates an unverified account and mails a verification link.
// A failed send is reported but the account is kept.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.Profile, error) {
	if err := credential.ValidateSignup(in.Name, in.Email, in.Password); err != nil {
		return nil, err
	}
	email := strings.ToLower(in.Email)

	if _, err := s.Accounts.FindByEmail(ctx, email); err == nil {
		return nil, autherr.New(autherr.EmailInUse, msgEmailInUse)
	} else if !errors.Is(err, repo.ErrAccountNotFound) {
		s.Logger.WithError(err).Error("signup lookup failed")
		return nil, autherr.Internalf(err, msgRegisterFailed)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	acc := &entity.Account{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
	}
	if err := s.Accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, autherr.New(autherr.EmailInUse, msgEmailInUse)
		}
		s.Logger.WithError(err).Error("create account failed")
		return nil, autherr.Internalf(err, msgRegisterFailed)
	}

	created, err := s.Accounts.FindByID(ctx, acc.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("account_id", acc.ID).Error("reload created account failed")
		return nil, autherr.Internalf(err, msgRegisterFailed)
	}

	if err := s.sendVerification(ctx, created); err != nil {
		s.Logger.WithError(err).WithField("account_id", created.ID).Error("send verification email failed")
		return nil, autherr.Internalf(err, msgVerifySendFailed)
	}

	s.audit(ctx, ActionSignup, created.ID, created.Email, nil)
	return created.Profile(), nil
}

func (s *Service) sendVerification(ctx context.Context, a *entity.Account) error {
	tok, exp, err := s.JWT.GenerateActionToken(helpers.PurposeVerifyEmail, a.Email, s.Settings.VerifyTokenTTL)
	if err != nil {
		return err
	}
	data := mailtpl.NewVerifyEmailData(s.Settings.AppName, a.Name, s.Links.VerifyEmailLink(tok), mailtpl.WithExpiresAt(exp))
	return s.sendTemplate(ctx, a.Email, mailtpl.VerifyEmail, data)
}

// hashPassword maps bcrypt's length limit to a validation failure.
func hashPassword(password string) (string, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", autherr.Wrap(autherr.WeakPassword, msgPasswordTooLong, err)
		}
		return "", autherr.Internalf(err, "failed to hash password")
	}
	return hash, nil
}
