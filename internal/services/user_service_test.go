package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"mizan/internal/auth"
	"mizan/internal/mail"
	"mizan/internal/store"
	"mizan/internal/store/memory"
)

type recordingMailer struct {
	sent []mail.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func newTestService() (*UserService, *memory.Store, *recordingMailer) {
	s := memory.New()
	mailer := &recordingMailer{}
	tokens := auth.NewTokenService("unit-test-secret-0123456789abcd", time.Hour)
	return NewUserService(s, tokens, mailer, "http://localhost:3000"), s, mailer
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, s, mailer := newTestService()

	user, token, err := svc.Register(ctx, "Huda", "huda@example.com", "password123")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.ID == 0 || user.IsVerified {
		t.Errorf("registered user = %+v, want unverified with id", user)
	}
	if token == "" {
		t.Error("Register() returned no access token")
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mailer.sent))
	}
	if mailer.sent[0].To != "huda@example.com" {
		t.Errorf("mail recipient = %q", mailer.sent[0].To)
	}

	stored, _ := s.UserByEmail(ctx, "huda@example.com")
	if stored.HashedPassword == "password123" || stored.HashedPassword == "" {
		t.Error("password stored in plaintext or missing")
	}
	if stored.VerificationToken == "" {
		t.Error("no verification token stored")
	}
}

func TestRegister_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	if _, _, err := svc.Register(ctx, "X", "not-an-email", "password123"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("invalid email error = %v, want %v", err, ErrInvalidEmail)
	}
	if _, _, err := svc.Register(ctx, "X", "x@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("weak password error = %v, want %v", err, ErrWeakPassword)
	}

	if _, _, err := svc.Register(ctx, "X", "x@example.com", "password123"); err != nil {
		t.Fatalf("first registration error: %v", err)
	}
	if _, _, err := svc.Register(ctx, "Y", "x@example.com", "password123"); !errors.Is(err, store.ErrEmailTaken) {
		t.Errorf("duplicate email error = %v, want %v", err, store.ErrEmailTaken)
	}
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()
	svc, s, _ := newTestService()

	if _, _, err := svc.Register(ctx, "X", "x@example.com", "password123"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	user, _ := s.UserByEmail(ctx, "x@example.com")

	if err := svc.VerifyEmail(ctx, user.VerificationToken); err != nil {
		t.Fatalf("VerifyEmail() error: %v", err)
	}
	verified, _ := s.UserByEmail(ctx, "x@example.com")
	if !verified.IsVerified || verified.VerificationToken != "" {
		t.Errorf("user after verification = %+v, want verified with burnt token", verified)
	}

	if err := svc.VerifyEmail(ctx, user.VerificationToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("reused token error = %v, want %v", err, ErrInvalidToken)
	}
	if err := svc.VerifyEmail(ctx, ""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("empty token error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	if _, _, err := svc.Register(ctx, "X", "x@example.com", "password123"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	user, token, err := svc.Login(ctx, "x@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if user.Email != "x@example.com" || token == "" {
		t.Errorf("Login() = %+v, token %q", user, token)
	}

	// Unknown account and wrong password are the same error.
	if _, _, err := svc.Login(ctx, "x@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, s, _ := newTestService()

	if _, _, err := svc.Register(ctx, "X", "x@example.com", "password123"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	user, _ := s.UserByEmail(ctx, "x@example.com")

	if err := svc.ChangePassword(ctx, user, "wrong", "newpassword1"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("wrong old password error = %v, want %v", err, ErrWrongPassword)
	}
	if err := svc.ChangePassword(ctx, user, "password123", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("weak new password error = %v, want %v", err, ErrWeakPassword)
	}
	if err := svc.ChangePassword(ctx, user, "password123", "newpassword1"); err != nil {
		t.Fatalf("ChangePassword() error: %v", err)
	}
	if _, _, err := svc.Login(ctx, "x@example.com", "newpassword1"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	ctx := context.Background()
	svc, s, mailer := newTestService()

	if _, _, err := svc.Register(ctx, "X", "x@example.com", "password123"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	// Unknown email succeeds silently so accounts cannot be enumerated.
	if err := svc.ForgotPassword(ctx, "nobody@example.com"); err != nil {
		t.Errorf("ForgotPassword(unknown) error = %v, want nil", err)
	}
	sentBefore := len(mailer.sent)

	if err := svc.ForgotPassword(ctx, "x@example.com"); err != nil {
		t.Fatalf("ForgotPassword() error: %v", err)
	}
	if len(mailer.sent) != sentBefore+1 {
		t.Fatalf("reset mail not dispatched")
	}

	user, _ := s.UserByEmail(ctx, "x@example.com")
	if user.ResetToken == "" {
		t.Fatal("no reset token stored")
	}

	if err := svc.ResetPassword(ctx, "bogus", "newpassword1"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("bogus token error = %v, want %v", err, ErrInvalidToken)
	}
	if err := svc.ResetPassword(ctx, user.ResetToken, "newpassword1"); err != nil {
		t.Fatalf("ResetPassword() error: %v", err)
	}
	if _, _, err := svc.Login(ctx, "x@example.com", "newpassword1"); err != nil {
		t.Errorf("login with reset password failed: %v", err)
	}

	// Token burnt after use.
	if err := svc.ResetPassword(ctx, user.ResetToken, "anotherpass1"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("reused reset token error = %v, want %v", err, ErrInvalidToken)
	}
}
