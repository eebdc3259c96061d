// Package services orchestrates account workflows across the datastore,
// the token service and the mail dispatcher.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/badoux/checkmail"

	"mizan/internal/auth"
	"mizan/internal/mail"
	"mizan/internal/store"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWrongPassword      = errors.New("incorrect current password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

const minPasswordLength = 8

// UserService handles registration, login and the password lifecycle.
type UserService struct {
	users   store.UserStore
	tokens  *auth.TokenService
	mailer  mail.Mailer
	baseURL string
}

func NewUserService(users store.UserStore, tokens *auth.TokenService, mailer mail.Mailer, baseURL string) *UserService {
	return &UserService{
		users:   users,
		tokens:  tokens,
		mailer:  mailer,
		baseURL: baseURL,
	}
}

// Register creates an unverified account, queues the verification mail and
// returns an access token so the client can sign in immediately.
func (s *UserService) Register(ctx context.Context, name, email, password string) (store.User, string, error) {
	if err := checkmail.ValidateFormat(email); err != nil {
		return store.User{}, "", ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return store.User{}, "", ErrWeakPassword
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return store.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := store.User{
		Name:              name,
		Email:             email,
		HashedPassword:    hashed,
		VerificationToken: auth.NewOpaqueToken(),
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return store.User{}, "", err
	}

	s.dispatch(ctx, mail.VerificationMessage(created.Email, created.Name, created.VerificationToken, s.baseURL))

	accessToken, err := s.tokens.GenerateToken(created.Email)
	if err != nil {
		return store.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "user_id", created.ID)
	return created, accessToken, nil
}

// VerifyEmail marks the account behind the token as verified and burns the
// token.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	user, err := s.users.UserByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	user.IsVerified = true
	user.VerificationToken = ""
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	slog.InfoContext(ctx, "Email verified", "user_id", user.ID)
	return nil
}

// Login checks the credentials and returns the user with a fresh access
// token. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, email, password string) (store.User, string, error) {
	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, "", ErrInvalidCredentials
		}
		return store.User{}, "", err
	}
	if err := auth.CheckPassword(user.HashedPassword, password); err != nil {
		return store.User{}, "", ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateToken(user.Email)
	if err != nil {
		return store.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, accessToken, nil
}

// ChangePassword swaps the stored hash after checking the current password.
func (s *UserService) ChangePassword(ctx context.Context, user store.User, oldPassword, newPassword string) error {
	if err := auth.CheckPassword(user.HashedPassword, oldPassword); err != nil {
		return ErrWrongPassword
	}
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.HashedPassword = hashed
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	slog.InfoContext(ctx, "Password changed", "user_id", user.ID)
	return nil
}

// ForgotPassword stores a reset token and queues the reset mail. It reports
// success whether or not the email exists so accounts cannot be enumerated.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	user.ResetToken = auth.NewOpaqueToken()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.dispatch(ctx, mail.ResetMessage(user.Email, user.Name, user.ResetToken, s.baseURL))
	slog.InfoContext(ctx, "Password reset requested", "user_id", user.ID)
	return nil
}

// ResetPassword replaces the password of the account behind the reset token
// and burns the token.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	user, err := s.users.UserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.ResetToken = ""
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	slog.InfoContext(ctx, "Password reset", "user_id", user.ID)
	return nil
}

// dispatch sends a mail without failing the surrounding request. Delivery
// problems are logged and the account operation still succeeds.
func (s *UserService) dispatch(ctx context.Context, m mail.Message) {
	if s.mailer == nil {
		slog.WarnContext(ctx, "Mailer not available, skipping dispatch", "to", m.To)
		return
	}
	if err := s.mailer.Send(ctx, m); err != nil {
		slog.ErrorContext(ctx, "Failed to dispatch mail", "to", m.To, "error", err)
	}
}
