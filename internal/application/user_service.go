package application

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/aspiantech/ogle-api/internal/domain/entity"
	repo "github.com/aspiantech/ogle-api/internal/domain/repository"
	"github.com/aspiantech/ogle-api/pkg/apperr"
	"github.com/aspiantech/ogle-api/pkg/helpers"
	"github.com/aspiantech/ogle-api/pkg/mailer"
	"github.com/aspiantech/ogle-api/pkg/mailer/templates"
)

// Login failure causes. Kept distinguishable internally (errors.Is) while
// the public message stays uniform so it never leaks which check failed.
var (
	ErrUnknownEmail     = errors.New("unknown email")
	ErrEmailNotVerified = errors.New("email not verified")
	ErrPasswordMismatch = errors.New("password mismatch")
)

const loginFailedMsg = "incorrect email address or password"

// UserService implements the account lifecycle: registration with email
// verification, login, password reset, profile updates, newsletter
// subscription, and the generic send-email passthrough.
type UserService struct {
	Users       repo.UserRepository
	Newsletters repo.NewsletterRepository
	Tokens      *helpers.TokenManager
	Mail        mailer.Sender
	Logger      *logrus.Logger

	VerifyEmailURL   string
	ResetPasswordURL string
}

func NewUserService(users repo.UserRepository, newsletters repo.NewsletterRepository, tokens *helpers.TokenManager, mail mailer.Sender, logger *logrus.Logger, verifyEmailURL, resetPasswordURL string) *UserService {
	return &UserService{
		Users:            users,
		Newsletters:      newsletters,
		Tokens:           tokens,
		Mail:             mail,
		Logger:           logger,
		VerifyEmailURL:   verifyEmailURL,
		ResetPasswordURL: resetPasswordURL,
	}
}

func (s *UserService) UserByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.E(apperr.NotFound, "user with ID %s not found", id)
	}
	return u, err
}

// Register creates an unverified account, then best-effort emails a
// verification link. Mail failures are logged and never fail registration.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	email = strings.ToLower(email)

	_, err := s.Users.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperr.E(apperr.Conflict, "email already registered")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:    email,
		Password: hash,
		Name:     name,
		Role:     entity.RoleAgent,
		Verified: false,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.sendEmailToken(ctx, email, s.VerifyEmailURL, "Email Verification", templates.VerifyEmailHTML)
	return u, nil
}

// sendEmailToken issues a short-lived token and best-effort delivers a link
// embedding it. Every failure path only logs.
func (s *UserService) sendEmailToken(ctx context.Context, email, baseURL, subject string, render func(string) (string, error)) {
	token, _, err := s.Tokens.GenerateEmailToken(email)
	if err != nil {
		s.Logger.WithError(err).WithField("email", email).Error("failed to issue email token")
		return
	}
	link := baseURL + "?token=" + url.QueryEscape(token) + "&email=" + url.QueryEscape(email)
	html, err := render(link)
	if err != nil {
		s.Logger.WithError(err).Error("failed to render email")
		return
	}
	if err := s.Mail.Send(ctx, email, subject, "", html); err != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("failed to send email")
	}
}

// VerifyEmail checks the token's email claim against the supplied address
// and flips the account to verified.
func (s *UserService) VerifyEmail(ctx context.Context, email, token string) error {
	email = strings.ToLower(email)

	claims, err := s.Tokens.ParseToken(token)
	if err != nil || claims.Email != email {
		return apperr.E(apperr.Unauthorized, "invalid token")
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.E(apperr.NotFound, "user not found")
	}
	if err != nil {
		return err
	}

	u.Verified = true
	return s.Users.Update(ctx, u)
}

// Login authenticates and returns a session token. Unknown email,
// unverified account and password mismatch all surface the same public
// message; the wrapped cause records which it was.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	email = strings.ToLower(email)

	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return "", nil, apperr.Wrap(apperr.Unauthorized, ErrUnknownEmail, loginFailedMsg)
	}
	if err != nil {
		return "", nil, err
	}

	if !u.Verified {
		return "", nil, apperr.Wrap(apperr.Unauthorized, ErrEmailNotVerified, loginFailedMsg)
	}

	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", nil, apperr.Wrap(apperr.Unauthorized, ErrPasswordMismatch, loginFailedMsg)
	}

	token, _, err := s.Tokens.GenerateSessionToken(u.ID.Hex(), u.Email)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// RequestPasswordReset issues a reset token and best-effort emails the
// reset link.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(email)

	_, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.E(apperr.NotFound, "user not found")
	}
	if err != nil {
		return err
	}

	s.sendEmailToken(ctx, email, s.ResetPasswordURL, "Password Reset", templates.PasswordResetHTML)
	return nil
}

// ResetPassword stores a new hash for the account. The confirmation check
// runs before any lookup or write so an invalid request never persists.
func (s *UserService) ResetPassword(ctx context.Context, email, password, confirmPassword string) error {
	if password != confirmPassword {
		return apperr.E(apperr.InvalidArgument, "passwords do not match")
	}

	email = strings.ToLower(email)
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.E(apperr.NotFound, "user not found")
	}
	if err != nil {
		return err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hash
	return s.Users.Update(ctx, u)
}

// UserPatch is the partial-update input for a user profile. nil means leave
// unchanged. Passwords are not updatable here; that path is ResetPassword.
type UserPatch struct {
	Name              *string
	Email             *string
	Role              *string
	Gender            *string
	DateOfBirth       *string
	Address           *string
	About             *string
	PhoneNumber       *string
	ProfilePictureURL *string
	Website           *string
}

// UpdateUser overwrites only the provided scalar fields.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch UserPatch) (*entity.User, error) {
	u, err := s.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Role != nil {
		if *patch.Role != entity.RoleAgent && *patch.Role != entity.RoleAdmin {
			return nil, apperr.E(apperr.InvalidArgument, "%s is not a valid role", *patch.Role)
		}
		u.Role = *patch.Role
	}
	if patch.Gender != nil {
		if *patch.Gender != entity.GenderMale && *patch.Gender != entity.GenderFemale {
			return nil, apperr.E(apperr.InvalidArgument, "%s is not a valid gender", *patch.Gender)
		}
		u.Gender = *patch.Gender
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = strings.ToLower(*patch.Email)
	}
	if patch.DateOfBirth != nil {
		u.DateOfBirth = *patch.DateOfBirth
	}
	if patch.Address != nil {
		u.Address = *patch.Address
	}
	if patch.About != nil {
		u.About = *patch.About
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = *patch.PhoneNumber
	}
	if patch.ProfilePictureURL != nil {
		u.ProfilePictureURL = *patch.ProfilePictureURL
	}
	if patch.Website != nil {
		u.Website = *patch.Website
	}

	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SubscribeToNewsletter is idempotent: a repeated email reports
// already-subscribed instead of erroring or duplicating. New subscriptions
// get a best-effort confirmation email.
func (s *UserService) SubscribeToNewsletter(ctx context.Context, email string) (alreadySubscribed bool, err error) {
	email = strings.ToLower(email)

	_, err = s.Newsletters.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}

	if err := s.Newsletters.Create(ctx, &entity.NewsletterSubscription{Email: email}); err != nil {
		return false, err
	}

	html, err := templates.NewsletterConfirmationHTML()
	if err != nil {
		s.Logger.WithError(err).Error("failed to render newsletter confirmation")
		return false, nil
	}
	if err := s.Mail.Send(ctx, email, "Newsletter Subscription Confirmation", "", html); err != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("failed to send newsletter confirmation")
	}
	return false, nil
}

// SendEmail is the generic passthrough to the notification sink. Unlike the
// best-effort flows, a dispatch failure here surfaces to the caller.
func (s *UserService) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := s.Mail.Send(ctx, to, subject, "", body); err != nil {
		return apperr.Wrap(apperr.Unavailable, err, "error sending email")
	}
	return nil
}
