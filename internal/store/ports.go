// Package store declares the persistence ports the HTTP layer depends on.
// Adapters: internal/storage (SQLite) and internal/store/memory (tests and
// the memory backend).
package store

import (
	"context"
	"errors"

	"mizan/internal/core"
)

var (
	// ErrNotFound is returned when a record does not exist or is not owned
	// by the requesting user.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken is returned when registering an already-known email.
	ErrEmailTaken = errors.New("email already registered")
)

// User is a registered account.
type User struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	HashedPassword    string `json:"-"`
	IsVerified        bool   `json:"is_verified"`
	VerificationToken string `json:"-"`
	ResetToken        string `json:"-"`
}

// Ports for outbound persistence adapters.
type (
	UserStore interface {
		CreateUser(ctx context.Context, u User) (User, error)
		UserByEmail(ctx context.Context, email string) (User, error)
		UserByVerificationToken(ctx context.Context, token string) (User, error)
		UserByResetToken(ctx context.Context, token string) (User, error)
		UpdateUser(ctx context.Context, u User) error
	}

	TransactionStore interface {
		// ListTransactions returns the user's transactions newest-first.
		ListTransactions(ctx context.Context, userID int64) ([]core.Transaction, error)
		CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
		// DeleteTransaction removes a transaction owned by userID.
		DeleteTransaction(ctx context.Context, id, userID int64) error
	}

	CategoryStore interface {
		ListCategories(ctx context.Context, userID int64) ([]core.Category, error)
		CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
		DeleteCategory(ctx context.Context, id, userID int64) error
	}
)

// Store is the unified persistence surface a backend must provide.
type Store interface {
	UserStore
	TransactionStore
	CategoryStore
}
