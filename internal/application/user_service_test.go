package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspiantech/ogle-api/internal/domain/entity"
	"github.com/aspiantech/ogle-api/pkg/apperr"
	"github.com/aspiantech/ogle-api/pkg/helpers"
)

func newUserService(users *fakeUserRepo, newsletters *fakeNewsletterRepo, mail *fakeSender) *UserService {
	return NewUserService(
		users,
		newsletters,
		helpers.NewTokenManager("test-secret", 24*time.Hour, time.Hour),
		mail,
		testLogger(),
		"http://localhost:3000/verify-email",
		"http://localhost:3000/password-reset",
	)
}

func seedVerifiedUser(t *testing.T, users *fakeUserRepo, email, password string) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword(password)
	require.NoError(t, err)
	return users.add(&entity.User{Email: email, Password: hash, Name: "Test User", Verified: true})
}

func TestRegisterCreatesUnverifiedUserAndSendsLink(t *testing.T) {
	users := newFakeUserRepo()
	mail := &fakeSender{}
	svc := newUserService(users, newFakeNewsletterRepo(), mail)

	u, err := svc.Register(context.Background(), "Ada", "Ada@Example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", u.Email)
	assert.False(t, u.Verified)
	assert.NotEqual(t, "password123", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "password123"))

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "ada@example.com", mail.sent[0].To)
	assert.Contains(t, mail.sent[0].HTML, "token=")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	seedVerifiedUser(t, users, "ada@example.com", "password123")
	svc := newUserService(users, newFakeNewsletterRepo(), &fakeSender{})

	_, err := svc.Register(context.Background(), "Ada", "ADA@example.com", "other-password")
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	users := newFakeUserRepo()
	mail := &fakeSender{sendErr: errors.New("mailgun down")}
	svc := newUserService(users, newFakeNewsletterRepo(), mail)

	u, err := svc.Register(context.Background(), "Ada", "ada@example.com", "password123")
	require.NoError(t, err)
	assert.False(t, u.ID.IsZero())
}

func TestVerifyEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, newFakeNewsletterRepo(), &fakeSender{})
	u := seedVerifiedUser(t, users, "ada@example.com", "password123")
	u.Verified = false

	token, _, err := svc.Tokens.GenerateEmailToken("ada@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(context.Background(), "ada@example.com", token))
	assert.True(t, users.users[u.ID].Verified)
}

func TestVerifyEmailRejectsMismatchedClaim(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, newFakeNewsletterRepo(), &fakeSender{})
	u := seedVerifiedUser(t, users, "ada@example.com", "password123")
	u.Verified = false

	token, _, err := svc.Tokens.GenerateEmailToken("someone.else@example.com")
	require.NoError(t, err)

	err = svc.VerifyEmail(context.Background(), "ada@example.com", token)
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	assert.False(t, users.users[u.ID].Verified)
}

func TestVerifyEmailRejectsGarbageToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, newFakeNewsletterRepo(), &fakeSender{})
	seedVerifiedUser(t, users, "ada@example.com", "password123")

	err := svc.VerifyEmail(context.Background(), "ada@example.com", "not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestLoginFailuresShareOnePublicMessage(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, newFakeNewsletterRepo(), &fakeSender{})

	seedVerifiedUser(t, users, "ada@example.com", "password123")
	unverified := seedVerifiedUser(t, users, "bob@example.com", "password123")
	unverified.Verified = false

	cases := []struct {
		name     string
		email    string
		password string
		cause    error
	}{
		{"unknown email", "nobody@example.com", "password123", ErrUnknownEmail},
		{"unverified account", "bob@example.com", "password123", ErrEmailNotVerified},
		{"wrong password", "ada@example.com", "wrong-password", ErrPasswordMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.email, tc.password)
			require.Error(t, err)
			assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
			assert.Equal(t, loginFailedMsg, apperr.Message(err))
			assert.True(t, errors.Is(err, tc.cause))
		})
	}
}

func TestLoginIssuesSessionToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, newFakeNewsletterRepo(), &fakeSender{})
	u := seedVerifiedUser(t, users, "ada@example.com", "password123")

	token, got, err := svc.Login(context.Background(), "ADA@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	claims, err := svc.Tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	svc := newUserService(newFakeUserRepo(), newFakeNewsletterRepo(), &fakeSender{})

	err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestRequestPasswordResetSendsLink(t *testing.T) {
	users := newFakeUserRepo()
	mail := &fakeSender{}
	svc := newUserService(users, newFakeNewsletterRepo(), mail)
	seedVerifiedUser(t, users, "ada@example.com", "password123")

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "ada@example.com"))
	require.Len(t, mail.sent, 1)
	assert.True(t, strings.HasPrefix(mail.sent[0].HTML, "<div") || strings.Contains(mail.sent[0].HTML, "token="))
}

func TestResetPasswordMismatchRunsBeforeAnyLookup(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, newFakeNewsletterRepo(), &fakeSender{})
	seedVerifiedUser(t, users, "ada@example.com", "password123")

	err := svc.ResetPassword(context.Background(), "ada@example.com", "newpassword", "different")
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
	assert.Equal(t, 0, users.getByEmailCalls)
	assert.Equal(t, 0, users.updateCalls)
}

func TestResetPasswordStoresNewHash(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, newFakeNewsletterRepo(), &fakeSender{})
	u := seedVerifiedUser(t, users, "ada@example.com", "password123")

	require.NoError(t, svc.ResetPassword(context.Background(), "ada@example.com", "newpassword", "newpassword"))
	assert.True(t, helpers.CompareHashAndPassword(users.users[u.ID].Password, "newpassword"))
	assert.False(t, helpers.CompareHashAndPassword(users.users[u.ID].Password, "password123"))
}

func TestUpdateUserPartialPatch(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, newFakeNewsletterRepo(), &fakeSender{})
	u := seedVerifiedUser(t, users, "ada@example.com", "password123")
	u.About = "original about"
	u.PhoneNumber = "0117 000 000"

	name := "Ada Lovelace"
	gender := entity.GenderFemale
	got, err := svc.UpdateUser(context.Background(), u.ID.Hex(), UserPatch{Name: &name, Gender: &gender})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, entity.GenderFemale, got.Gender)
	assert.Equal(t, "original about", got.About)
	assert.Equal(t, "0117 000 000", got.PhoneNumber)
}

func TestUpdateUserRejectsBadEnums(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, newFakeNewsletterRepo(), &fakeSender{})
	u := seedVerifiedUser(t, users, "ada@example.com", "password123")

	role := "superuser"
	_, err := svc.UpdateUser(context.Background(), u.ID.Hex(), UserPatch{Role: &role})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	gender := "unknown"
	_, err = svc.UpdateUser(context.Background(), u.ID.Hex(), UserPatch{Gender: &gender})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestSubscribeToNewsletterIsIdempotent(t *testing.T) {
	newsletters := newFakeNewsletterRepo()
	mail := &fakeSender{}
	svc := newUserService(newFakeUserRepo(), newsletters, mail)

	already, err := svc.SubscribeToNewsletter(context.Background(), "Reader@Example.com")
	require.NoError(t, err)
	assert.False(t, already)

	already, err = svc.SubscribeToNewsletter(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.True(t, already)

	assert.Len(t, newsletters.subs, 1)
	assert.Len(t, mail.sent, 1)
}

func TestSendEmailWrapsDeliveryFailure(t *testing.T) {
	mail := &fakeSender{sendErr: errors.New("mailgun down")}
	svc := newUserService(newFakeUserRepo(), newFakeNewsletterRepo(), mail)

	err := svc.SendEmail(context.Background(), "to@example.com", "Hi", "Body")
	require.Error(t, err)
	assert.Equal(t, apperr.Unavailable, apperr.KindOf(err))
	assert.Equal(t, "error sending email", apperr.Message(err))
}
