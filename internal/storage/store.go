// Package storage defines the persistence contract the services are
// written against. The production implementation lives in storage/mysql;
// tests substitute in-memory stubs.
package storage

import (
	"context"
	"time"

	"fintrack/internal/domain"
)

// TransactionRow is a ledger entry joined with the display names of its
// subject and performer, for listings.
type TransactionRow struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	UserName        string    `json:"user_name"`
	Amount          int64     `json:"amount"`
	Reason          string    `json:"reason"`
	PerformedBy     uint      `json:"performed_by"`
	PerformedByName string    `json:"performed_by_name"`
	CreatedAt       time.Time `json:"created_at"`
}

// AmountAt is the minimal projection used for monthly bucketing.
type AmountAt struct {
	Amount    int64
	CreatedAt time.Time
}

// UserBalance is a name/balance pair for the balance ranking chart.
type UserBalance struct {
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

// Store is the single persistence contract shared by all services.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uint) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id uint) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
	// CountUserHistory counts ledger entries referencing the user as
	// subject or performer; deletion is refused while it is nonzero.
	CountUserHistory(ctx context.Context, id uint) (int64, error)

	// Ledger. ApplyTransaction inserts the entry and adjusts the subject's
	// balance by the signed amount as one atomic unit. The increment is
	// executed in the database, never read-modify-write, so concurrent
	// applies against one user serialize on the row. Returns
	// domain.ErrUserNotFound, with nothing written, when the subject does
	// not exist.
	ApplyTransaction(ctx context.Context, t *domain.Transaction) error
	ListTransactions(ctx context.Context) ([]TransactionRow, error)
	RecentTransactions(ctx context.Context, limit int) ([]TransactionRow, error)

	// Aggregates for the reporter.
	SumBalances(ctx context.Context) (int64, error)
	SumPositiveAmounts(ctx context.Context) (int64, error)
	SumNegativeAmounts(ctx context.Context) (int64, error)
	TransactionsSince(ctx context.Context, since time.Time) ([]AmountAt, error)
	TopUsersByBalance(ctx context.Context, limit int) ([]UserBalance, error)
}
