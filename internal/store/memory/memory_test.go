package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"mizan/internal/core"
	"mizan/internal/store"
)

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.CreateUser(ctx, store.User{Name: "Huda", Email: "huda@example.com", VerificationToken: "vt-1"})
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("CreateUser() did not assign an id")
	}

	if _, err := s.CreateUser(ctx, store.User{Name: "Other", Email: "huda@example.com"}); !errors.Is(err, store.ErrEmailTaken) {
		t.Errorf("duplicate email error = %v, want %v", err, store.ErrEmailTaken)
	}

	got, err := s.UserByEmail(ctx, "huda@example.com")
	if err != nil || got.ID != created.ID {
		t.Errorf("UserByEmail() = %+v, %v", got, err)
	}

	if _, err := s.UserByEmail(ctx, "nobody@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown email error = %v, want %v", err, store.ErrNotFound)
	}

	byToken, err := s.UserByVerificationToken(ctx, "vt-1")
	if err != nil || byToken.ID != created.ID {
		t.Errorf("UserByVerificationToken() = %+v, %v", byToken, err)
	}
	// An empty token must never match an account whose token is unset.
	if _, err := s.UserByVerificationToken(ctx, ""); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("empty token error = %v, want %v", err, store.ErrNotFound)
	}

	created.IsVerified = true
	created.VerificationToken = ""
	if err := s.UpdateUser(ctx, created); err != nil {
		t.Fatalf("UpdateUser() error: %v", err)
	}
	updated, _ := s.UserByEmail(ctx, "huda@example.com")
	if !updated.IsVerified {
		t.Error("UpdateUser() changes not persisted")
	}

	if err := s.UpdateUser(ctx, store.User{ID: 999}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateUser(unknown) error = %v, want %v", err, store.ErrNotFound)
	}
}

func TestTransactions(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	for i, tx := range []core.Transaction{
		{Title: "old", Amount: 1, Category: "x", Type: core.TypeExpense, CreatedAt: base, UserID: 1},
		{Title: "new", Amount: 2, Category: "x", Type: core.TypeExpense, CreatedAt: base.AddDate(0, 0, 2), UserID: 1},
		{Title: "mid", Amount: 3, Category: "x", Type: core.TypeIncome, CreatedAt: base.AddDate(0, 0, 1), UserID: 1},
		{Title: "other user", Amount: 4, Category: "x", Type: core.TypeIncome, CreatedAt: base, UserID: 2},
	} {
		if _, err := s.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("case %d: CreateTransaction() error: %v", i, err)
		}
	}

	got, err := s.ListTransactions(ctx, 1)
	if err != nil {
		t.Fatalf("ListTransactions() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d transactions, want 3", len(got))
	}
	// Newest first.
	wantOrder := []string{"new", "mid", "old"}
	for i, w := range wantOrder {
		if got[i].Title != w {
			t.Errorf("position %d = %q, want %q", i, got[i].Title, w)
		}
	}
}

func TestTransactions_Validation(t *testing.T) {
	s := New()
	_, err := s.CreateTransaction(context.Background(), core.Transaction{Title: "", Amount: 1, Category: "x", Type: core.TypeExpense, UserID: 1})
	if !errors.Is(err, core.ErrEmptyTitle) {
		t.Errorf("CreateTransaction() error = %v, want %v", err, core.ErrEmptyTitle)
	}
}

func TestDeleteTransaction_Ownership(t *testing.T) {
	ctx := context.Background()
	s := New()
	tx, _ := s.CreateTransaction(ctx, core.Transaction{Title: "t", Amount: 1, Category: "x", Type: core.TypeExpense, UserID: 1})

	if err := s.DeleteTransaction(ctx, tx.ID, 2); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-user delete error = %v, want %v", err, store.ErrNotFound)
	}
	if err := s.DeleteTransaction(ctx, tx.ID, 1); err != nil {
		t.Errorf("owner delete error = %v", err)
	}
	if err := s.DeleteTransaction(ctx, tx.ID, 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete error = %v, want %v", err, store.ErrNotFound)
	}
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	s := New()

	c, err := s.CreateCategory(ctx, core.Category{Name: "سفر", Type: core.TypeExpense, UserID: 1})
	if err != nil {
		t.Fatalf("CreateCategory() error: %v", err)
	}
	if _, err := s.CreateCategory(ctx, core.Category{Name: "", Type: core.TypeExpense, UserID: 1}); err == nil {
		t.Error("CreateCategory() accepted an empty name")
	}

	cats, err := s.ListCategories(ctx, 1)
	if err != nil || len(cats) != 1 || cats[0].Name != "سفر" {
		t.Errorf("ListCategories() = %+v, %v", cats, err)
	}

	if err := s.DeleteCategory(ctx, c.ID, 2); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-user delete error = %v, want %v", err, store.ErrNotFound)
	}
	if err := s.DeleteCategory(ctx, c.ID, 1); err != nil {
		t.Errorf("owner delete error = %v", err)
	}
}
