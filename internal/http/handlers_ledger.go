package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mizan/internal/core"
	"mizan/internal/store"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	txs, err := s.store.ListTransactions(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	respondJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	var req struct {
		Title    string  `json:"title"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
		Type     string  `json:"type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx := core.Transaction{
		Title:     strings.TrimSpace(req.Title),
		Amount:    req.Amount,
		Category:  strings.TrimSpace(req.Category),
		Type:      core.TransactionType(req.Type),
		CreatedAt: time.Now().UTC(),
		UserID:    user.ID,
	}
	if err := tx.Validate(); err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreateTransaction(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create transaction failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.logger.LogTransactionCreated(r.Context(), user.ID, created.Title, created.Amount, created.Category, string(created.Type))
	respondJSON(w, http.StatusOK, created)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	if err := s.store.DeleteTransaction(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondDetail(w, http.StatusNotFound, "Transaction not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete transaction failed", "error", err, "user_id", user.ID, "id", id)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondDetail(w, http.StatusOK, "Transaction deleted")
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	cats, err := s.store.ListCategories(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List categories failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if cats == nil {
		cats = []core.Category{}
	}
	respondJSON(w, http.StatusOK, cats)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	var req struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cat := core.Category{
		Name:   strings.TrimSpace(req.Name),
		Type:   core.TransactionType(req.Type),
		UserID: user.ID,
	}
	if err := cat.Validate(); err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreateCategory(r.Context(), cat)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create category failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := s.store.DeleteCategory(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondDetail(w, http.StatusNotFound, "Category not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete category failed", "error", err, "user_id", user.ID, "id", id)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondDetail(w, http.StatusOK, "Category deleted")
}
