package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"fintrack/internal/domain"
	"fintrack/internal/storage"
)

// stubStore is an in-memory storage.Store for service tests. All methods
// hold one mutex, so the apply path is atomic the same way the real
// store's database transaction is.
type stubStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*domain.User
	ledger []domain.Transaction
}

func newStubStore() *stubStore {
	return &stubStore{users: make(map[uint]*domain.User)}
}

// seedUser inserts a user directly, bypassing validation.
func (s *stubStore) seedUser(u domain.User) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u.ID = s.nextID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = &u
	return &u
}

// seedTransaction inserts a ledger entry at a fixed time without touching
// balances, for reporter tests that control bucketing.
func (s *stubStore) seedTransaction(userID uint, amount int64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.ledger = append(s.ledger, domain.Transaction{
		ID:          s.nextID,
		UserID:      userID,
		Amount:      amount,
		Reason:      "seed",
		PerformedBy: userID,
		CreatedAt:   at,
	})
}

func (s *stubStore) ledgerLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ledger)
}

func (s *stubStore) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *stubStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubStore) GetUserByID(_ context.Context, id uint) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubStore) UpdateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.Role = user.Role
	stored.Balance = user.Balance
	return nil
}

func (s *stubStore) DeleteUser(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *stubStore) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *stubStore) CountUsers(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *stubStore) CountUserHistory(_ context.Context, id uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, t := range s.ledger {
		if t.UserID == id || t.PerformedBy == id {
			count++
		}
	}
	return count, nil
}

func (s *stubStore) ApplyTransaction(_ context.Context, t *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[t.UserID]
	if !ok {
		return domain.ErrUserNotFound
	}
	s.nextID++
	t.ID = s.nextID
	t.CreatedAt = time.Now()
	s.ledger = append(s.ledger, *t)
	user.Balance += t.Amount
	return nil
}

func (s *stubStore) rows() []storage.TransactionRow {
	rows := make([]storage.TransactionRow, 0, len(s.ledger))
	for _, t := range s.ledger {
		row := storage.TransactionRow{
			ID:          t.ID,
			UserID:      t.UserID,
			Amount:      t.Amount,
			Reason:      t.Reason,
			PerformedBy: t.PerformedBy,
			CreatedAt:   t.CreatedAt,
		}
		if u, ok := s.users[t.UserID]; ok {
			row.UserName = u.Name
		}
		if u, ok := s.users[t.PerformedBy]; ok {
			row.PerformedByName = u.Name
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows
}

func (s *stubStore) ListTransactions(_ context.Context) ([]storage.TransactionRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows(), nil
}

func (s *stubStore) RecentTransactions(_ context.Context, limit int) ([]storage.TransactionRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.rows()
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *stubStore) SumBalances(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, u := range s.users {
		total += u.Balance
	}
	return total, nil
}

func (s *stubStore) SumPositiveAmounts(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, t := range s.ledger {
		if t.Amount > 0 {
			total += t.Amount
		}
	}
	return total, nil
}

func (s *stubStore) SumNegativeAmounts(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, t := range s.ledger {
		if t.Amount < 0 {
			total += t.Amount
		}
	}
	return total, nil
}

func (s *stubStore) TransactionsSince(_ context.Context, since time.Time) ([]storage.AmountAt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []storage.AmountAt
	for _, t := range s.ledger {
		if !t.CreatedAt.Before(since) {
			rows = append(rows, storage.AmountAt{Amount: t.Amount, CreatedAt: t.CreatedAt})
		}
	}
	return rows, nil
}

func (s *stubStore) TopUsersByBalance(_ context.Context, limit int) ([]storage.UserBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]storage.UserBalance, 0, len(s.users))
	for _, u := range s.users {
		rows = append(rows, storage.UserBalance{Name: u.Name, Balance: u.Balance})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Balance > rows[j].Balance })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
