package domain

import "time"

// Transaction Model. The ledger is append-only: rows are created through
// the store's atomic apply and are never updated or deleted afterwards.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`             // Primary key
	UserID      uint      `gorm:"index;not null" json:"user_id"`    // Subject of the money movement
	Amount      int64     `gorm:"not null" json:"amount"`           // Signed amount: positive credit, negative debit
	Reason      string    `gorm:"not null" json:"reason"`           // Free-text reason, required
	PerformedBy uint      `gorm:"index;not null" json:"performed_by"` // Admin who authorized the entry
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"` // Timestamp of creation, immutable
}
