package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"mizan/internal/services"
	"mizan/internal/store"
)

// tokenResponse mirrors the OAuth2 bearer shape the frontend expects.
type tokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        store.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := s.users.Register(r.Context(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			respondDetail(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, services.ErrInvalidEmail):
			respondDetail(w, http.StatusBadRequest, "Invalid email address")
		case errors.Is(err, services.ErrWeakPassword):
			respondDetail(w, http.StatusBadRequest, "Password must be at least 8 characters")
		default:
			slog.ErrorContext(r.Context(), "Registration failed", "error", err)
			respondDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	err := s.users.VerifyEmail(r.Context(), r.PathValue("token"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			respondDetail(w, http.StatusBadRequest, "Invalid or expired token")
			return
		}
		slog.ErrorContext(r.Context(), "Email verification failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondDetail(w, http.StatusOK, "Email verified successfully")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	clientIP := s.extractClientIP(r)
	if !s.loginLimiter.allow(clientIP) {
		slog.WarnContext(r.Context(), "Login rate limit exceeded", "client_ip", clientIP)
		w.Header().Set("Retry-After", "60")
		respondDetail(w, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
		return
	}

	email, password, ok := loginCredentials(r)
	if !ok {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := s.users.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondDetail(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		slog.ErrorContext(r.Context(), "Login failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}

// loginCredentials accepts the original form-encoded username/password
// submission and a JSON body as fallback.
func loginCredentials(r *http.Request) (email, password string, ok bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeJSON(r, &req); err != nil {
			return "", "", false
		}
		email = req.Username
		if email == "" {
			email = req.Email
		}
		return email, req.Password, email != "" && req.Password != ""
	}

	if err := r.ParseForm(); err != nil {
		return "", "", false
	}
	email = strings.TrimSpace(r.Form.Get("username"))
	password = r.Form.Get("password")
	return email, password, email != "" && password != ""
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := s.users.ChangePassword(r.Context(), user, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			respondDetail(w, http.StatusBadRequest, "Incorrect current password")
		case errors.Is(err, services.ErrWeakPassword):
			respondDetail(w, http.StatusBadRequest, "Password must be at least 8 characters")
		default:
			slog.ErrorContext(r.Context(), "Password change failed", "error", err)
			respondDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	respondDetail(w, http.StatusOK, "Password updated")
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.users.ForgotPassword(r.Context(), strings.TrimSpace(req.Email)); err != nil {
		slog.ErrorContext(r.Context(), "Forgot password failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	// Same answer whether or not the account exists
	respondDetail(w, http.StatusOK, "If email exists, a reset link has been sent")
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := s.users.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidToken):
			respondDetail(w, http.StatusBadRequest, "Invalid or expired reset token")
		case errors.Is(err, services.ErrWeakPassword):
			respondDetail(w, http.StatusBadRequest, "Password must be at least 8 characters")
		default:
			slog.ErrorContext(r.Context(), "Password reset failed", "error", err)
			respondDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	respondDetail(w, http.StatusOK, "Password reset successful")
}
