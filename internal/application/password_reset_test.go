package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
	"github.com/oksasatya/go-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
)

func (h *harness) forgot(t *testing.T, email string) string {
	t.Helper()
	require.NoError(t, h.svc.ForgotPassword(context.Background(), email))
	msg := h.notifier.last(t)
	assert.Equal(t, "Reset Your Password", msg.subject)
	tok := tokenFrom(t, resetLinkPattern, msg.html)
	assert.Equal(t, tok, tokenFrom(t, resetLinkPattern, msg.text))
	return tok
}

func TestForgotPasswordStoresToken(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "Alice", "alice@gmail.com")

	tok := h.forgot(t, "alice@gmail.com")
	acc, err := h.repo.FindByEmail(context.Background(), "alice@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, entity.ResetPending, acc.ResetState())
	assert.True(t, acc.ResetTokenMatches(tok))
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	h := newHarness(t)

	err := h.svc.ForgotPassword(context.Background(), "")
	assert.Equal(t, autherr.MissingField, autherr.KindOf(err))

	err = h.svc.ForgotPassword(context.Background(), "ghost@gmail.com")
	assert.Equal(t, autherr.UserNotFound, autherr.KindOf(err))
	assert.Empty(t, h.notifier.sent)
}

func TestForgotPasswordConcealsUnknownEmail(t *testing.T) {
	h := newHarness(t, func(s *Settings) { s.ConcealUnknownEmail = true })

	require.NoError(t, h.svc.ForgotPassword(context.Background(), "ghost@gmail.com"))
	assert.Empty(t, h.notifier.sent)
}

func TestForgotPasswordSendFailure(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "Alice", "alice@gmail.com")
	h.notifier.err = errBoom

	err := h.svc.ForgotPassword(context.Background(), "alice@gmail.com")
	assert.Equal(t, autherr.Internal, autherr.KindOf(err))
}

func TestResetPasswordTokenExpiresAfterFifteenMinutes(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "Alice", "alice@gmail.com")
	tok := h.forgot(t, "alice@gmail.com")

	h.clock.Advance(16 * time.Minute)
	err := h.svc.ResetPassword(context.Background(), ResetPasswordInput{Token: tok, Password: "NewPass1!", ConfirmPassword: "NewPass1!"})
	assert.Equal(t, autherr.TokenExpired, autherr.KindOf(err))
}

func TestResetPasswordOnlyLatestTokenWorks(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "Alice", "alice@gmail.com")
	first := h.forgot(t, "alice@gmail.com")
	h.clock.Advance(time.Second)
	second := h.forgot(t, "alice@gmail.com")
	require.NotEqual(t, first, second)

	err := h.svc.ResetPassword(context.Background(), ResetPasswordInput{Token: first, Password: "NewPass1!", ConfirmPassword: "NewPass1!"})
	assert.Equal(t, autherr.TokenInvalid, autherr.KindOf(err))

	require.NoError(t, h.svc.ResetPassword(context.Background(), ResetPasswordInput{Token: second, Password: "NewPass1!", ConfirmPassword: "NewPass1!"}))

	acc, err := h.repo.FindByEmail(context.Background(), "alice@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, entity.NoPendingReset, acc.ResetState())
	assert.Nil(t, acc.RefreshToken)

	err = h.svc.ResetPassword(context.Background(), ResetPasswordInput{Token: second, Password: "Another1!", ConfirmPassword: "Another1!"})
	assert.Equal(t, autherr.TokenInvalid, autherr.KindOf(err))
}

func TestResetPasswordValidation(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "Alice", "alice@gmail.com")
	tok := h.forgot(t, "alice@gmail.com")
	ctx := context.Background()

	err := h.svc.ResetPassword(ctx, ResetPasswordInput{Token: tok, Password: "weak", ConfirmPassword: "weak"})
	assert.Equal(t, autherr.WeakPassword, autherr.KindOf(err))

	err = h.svc.ResetPassword(ctx, ResetPasswordInput{Token: tok, Password: "NewPass1!", ConfirmPassword: "NewPass2!"})
	assert.Equal(t, autherr.PasswordMismatch, autherr.KindOf(err))
	assert.Equal(t, 400, autherr.StatusOf(err))

	err = h.svc.ResetPassword(ctx, ResetPasswordInput{Token: "nope", Password: "NewPass1!", ConfirmPassword: "NewPass1!"})
	assert.Equal(t, autherr.TokenInvalid, autherr.KindOf(err))
}

func TestResetPasswordRejectsVerificationToken(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "Alice", "alice@gmail.com")
	h.forgot(t, "alice@gmail.com")

	verify, _, err := h.svc.JWT.GenerateActionToken(helpers.PurposeVerifyEmail, "alice@gmail.com", time.Hour)
	require.NoError(t, err)
	err = h.svc.ResetPassword(context.Background(), ResetPasswordInput{Token: verify, Password: "NewPass1!", ConfirmPassword: "NewPass1!"})
	assert.Equal(t, autherr.TokenInvalid, autherr.KindOf(err))
}

func TestResetPasswordUnknownAccount(t *testing.T) {
	h := newHarness(t)
	tok, _, err := h.svc.JWT.GenerateActionToken(helpers.PurposeResetPassword, "ghost@gmail.com", time.Hour)
	require.NoError(t, err)

	err = h.svc.ResetPassword(context.Background(), ResetPasswordInput{Token: tok, Password: "NewPass1!", ConfirmPassword: "NewPass1!"})
	assert.Equal(t, autherr.TokenInvalid, autherr.KindOf(err))
}

func TestResetPasswordTooLongIsWeak(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "Alice", "alice@gmail.com")
	tok := h.forgot(t, "alice@gmail.com")

	long := "Aa1!" + strings.Repeat("a", 80)
	err := h.svc.ResetPassword(context.Background(), ResetPasswordInput{Token: tok, Password: long, ConfirmPassword: long})
	assert.Equal(t, autherr.WeakPassword, autherr.KindOf(err))
}
