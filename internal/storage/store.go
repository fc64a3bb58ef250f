// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/boatfinance/internal/models"
)

// ErrNotFound is wrapped by every store when a record does not exist.
var ErrNotFound = errors.New("not found")

// CalculationStore defines persistence for saved finance calculations.
type CalculationStore interface {
	// CreateCalculation persists a new calculation including its schedule.
	// calc.ID and calc.CreatedAt are populated by the store when empty.
	CreateCalculation(ctx context.Context, calc *models.FinanceCalculation) error

	// GetCalculation retrieves a calculation by ID.
	GetCalculation(ctx context.Context, id string) (*models.FinanceCalculation, error)

	// GetCalculationByShareToken retrieves the calculation that was shared
	// with the given token.
	GetCalculationByShareToken(ctx context.Context, token string) (*models.FinanceCalculation, error)

	// ListCalculationsByUser returns up to limit calculations owned by
	// userID, newest first.
	ListCalculationsByUser(ctx context.Context, userID string, limit int) ([]*models.FinanceCalculation, error)

	// ShareCalculation marks a calculation shared with token unless it
	// already has a token. It returns the token the record ends up with,
	// which is the existing one when the record was shared before.
	// The check and the write are a single conditional update.
	ShareCalculation(ctx context.Context, id, token string, at time.Time) (string, error)

	// DeleteCalculation removes a calculation and its schedule.
	DeleteCalculation(ctx context.Context, id string) error
}

// UserStore defines persistence for user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store is implemented by every storage backend.
// This abstraction allows swapping storage backends (SQLite, Redis)
// without changing the service layer.
type Store interface {
	CalculationStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
