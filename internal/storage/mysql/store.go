// Package mysql implements the storage.Store contract on GORM/MySQL.
package mysql

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/domain"
	"fintrack/internal/storage"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Store is the GORM-backed implementation of storage.Store.
type Store struct {
	db *gorm.DB
}

// Open connects to MySQL and returns a ready Store. TranslateError is on
// so duplicate-key failures surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// New wraps an existing GORM handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEmail // Unique index on email
		}
		return err
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":    user.Name,
			"email":   user.Email,
			"role":    user.Role,
			"balance": user.Balance,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEmail
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Updates with identical values also affect zero rows, so confirm
		// the user really is missing before reporting it.
		var count int64
		if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrUserNotFound
		}
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error
	return total, err
}

func (s *Store) CountUserHistory(ctx context.Context, id uint) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Where("user_id = ? OR performed_by = ?", id, id).
		Count(&total).Error
	return total, err
}

// ApplyTransaction appends the ledger entry and increments the subject's
// balance inside one database transaction. The UPDATE carries the
// increment as an expression so the row lock serializes concurrent
// applies; a missing subject rolls the insert back.
func (s *Store) ApplyTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err // Return error to rollback
		}
		res := tx.Model(&domain.User{}).Where("id = ?", t.UserID).
			Update("balance", gorm.Expr("balance + ?", t.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound // Rolls back the insert as well
		}
		return nil
	})
}

const transactionColumns = "transactions.id, transactions.user_id, subject.name AS user_name, " +
	"transactions.amount, transactions.reason, transactions.performed_by, " +
	"performer.name AS performed_by_name, transactions.created_at"

func (s *Store) ListTransactions(ctx context.Context) ([]storage.TransactionRow, error) {
	var rows []storage.TransactionRow
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Select(transactionColumns).
		Joins("LEFT JOIN users AS subject ON subject.id = transactions.user_id").
		Joins("LEFT JOIN users AS performer ON performer.id = transactions.performed_by").
		Order("transactions.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (s *Store) RecentTransactions(ctx context.Context, limit int) ([]storage.TransactionRow, error) {
	var rows []storage.TransactionRow
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Select(transactionColumns).
		Joins("LEFT JOIN users AS subject ON subject.id = transactions.user_id").
		Joins("LEFT JOIN users AS performer ON performer.id = transactions.performed_by").
		Order("transactions.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (s *Store) SumBalances(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&total).Error
	return total, err
}

func (s *Store) SumPositiveAmounts(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("amount > 0").
		Scan(&total).Error
	return total, err
}

func (s *Store) SumNegativeAmounts(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("amount < 0").
		Scan(&total).Error
	return total, err
}

func (s *Store) TransactionsSince(ctx context.Context, since time.Time) ([]storage.AmountAt, error) {
	var rows []storage.AmountAt
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Select("amount, created_at").
		Where("created_at >= ?", since).
		Order("created_at").
		Scan(&rows).Error
	return rows, err
}

func (s *Store) TopUsersByBalance(ctx context.Context, limit int) ([]storage.UserBalance, error) {
	var rows []storage.UserBalance
	err := s.db.WithContext(ctx).Model(&domain.User{}).
		Select("name, balance").
		Order("balance DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
