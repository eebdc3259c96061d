package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type (
	// TransactionType partitions all downstream aggregation. Sign is carried
	// by the type, never by a negative amount.
	TransactionType string

	// Transaction is a single recorded financial event.
	Transaction struct {
		ID        int64           `json:"id"`
		Title     string          `json:"title"`
		Amount    float64         `json:"amount"`
		Category  string          `json:"category"`
		Type      TransactionType `json:"type"`
		CreatedAt time.Time       `json:"created_at"`
		UserID    int64           `json:"user_id"`
	}

	// Category is a user-defined grouping label scoped to one type.
	// Built-in categories are a static enumeration and are not persisted.
	Category struct {
		ID     int64           `json:"id"`
		Name   string          `json:"name"`
		Type   TransactionType `json:"type"`
		UserID int64           `json:"user_id"`
	}
)

var (
	ErrEmptyTitle     = errors.New("empty title")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrEmptyCategory  = errors.New("empty category")
	ErrInvalidType    = errors.New("type must be income or expense")
	ErrEmptyName      = errors.New("empty category name")
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (tx Transaction) Validate() error {
	if len(strings.TrimSpace(tx.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(tx.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if tx.Amount < 0 {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if !tx.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return errors.New("category name too long (max 100 characters)")
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}
