package service

import (
	"context"
	"time"

	"fintrack/internal/storage"
)

// monthWindow is how many trailing calendar months the dashboard charts
// cover, current partial month included.
const monthWindow = 6

// recentLimit bounds the recent-transactions widget.
const recentLimit = 5

// MonthlyNet is one chart bucket of the dashboard overview.
type MonthlyNet struct {
	Name  string `json:"name"` // Short month name, e.g. "Jan"
	Total int64  `json:"total"`
}

// MonthlyFlow is one chart bucket of the financial reports, with credits
// and debits split out. Both fields are nonnegative.
type MonthlyFlow struct {
	Name       string `json:"name"`
	Added      int64  `json:"added"`
	Subtracted int64  `json:"subtracted"`
}

// SystemStats is the dashboard overview view model.
type SystemStats struct {
	TotalBalance    int64        `json:"total_balance"`
	TotalAdded      int64        `json:"total_added"`
	TotalSubtracted int64        `json:"total_subtracted"`
	TotalUsers      int64        `json:"total_users"`
	MonthlyData     []MonthlyNet `json:"monthly_data"`
}

// FinancialReports is the reports page view model.
type FinancialReports struct {
	TotalBalance    int64                 `json:"total_balance"`
	TotalAdded      int64                 `json:"total_added"`
	TotalSubtracted int64                 `json:"total_subtracted"`
	TotalUsers      int64                 `json:"total_users"`
	MonthlyData     []MonthlyFlow         `json:"monthly_data"`
	UserBalances    []storage.UserBalance `json:"user_balances"`
}

// ReportService produces read-only aggregations over users and the
// ledger. It never writes.
type ReportService struct {
	store storage.Store
	now   func() time.Time
}

// NewReportService creates the reporter backed by the given store.
func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store, now: time.Now}
}

// SystemStats returns the dashboard totals plus the net amount moved per
// month over the trailing window, oldest month first. Months without
// transactions report zero, not absence.
func (s *ReportService) SystemStats(ctx context.Context) (*SystemStats, error) {
	totals, err := s.loadTotals(ctx)
	if err != nil {
		return nil, err
	}

	buckets := monthBuckets(s.now())
	rows, err := s.store.TransactionsSince(ctx, buckets[0])
	if err != nil {
		return nil, err
	}

	monthly := make([]MonthlyNet, len(buckets))
	for i, b := range buckets {
		monthly[i] = MonthlyNet{Name: b.Format("Jan")}
	}
	for _, row := range rows {
		if i, ok := bucketIndex(buckets, row.CreatedAt); ok {
			monthly[i].Total += row.Amount
		}
	}

	return &SystemStats{
		TotalBalance:    totals.balance,
		TotalAdded:      totals.added,
		TotalSubtracted: totals.subtracted,
		TotalUsers:      totals.users,
		MonthlyData:     monthly,
	}, nil
}

// FinancialReports returns the same totals with per-month credit/debit
// breakdown and the top 10 balances.
func (s *ReportService) FinancialReports(ctx context.Context) (*FinancialReports, error) {
	totals, err := s.loadTotals(ctx)
	if err != nil {
		return nil, err
	}

	buckets := monthBuckets(s.now())
	rows, err := s.store.TransactionsSince(ctx, buckets[0])
	if err != nil {
		return nil, err
	}

	monthly := make([]MonthlyFlow, len(buckets))
	for i, b := range buckets {
		monthly[i] = MonthlyFlow{Name: b.Format("Jan")}
	}
	for _, row := range rows {
		i, ok := bucketIndex(buckets, row.CreatedAt)
		if !ok {
			continue
		}
		if row.Amount > 0 {
			monthly[i].Added += row.Amount
		} else {
			monthly[i].Subtracted += -row.Amount
		}
	}

	balances, err := s.store.TopUsersByBalance(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &FinancialReports{
		TotalBalance:    totals.balance,
		TotalAdded:      totals.added,
		TotalSubtracted: totals.subtracted,
		TotalUsers:      totals.users,
		MonthlyData:     monthly,
		UserBalances:    balances,
	}, nil
}

// RecentTransactions returns the newest entries joined with the subject's
// display name. The limit defaults to, and is capped at, 5.
func (s *ReportService) RecentTransactions(ctx context.Context, limit int) ([]storage.TransactionRow, error) {
	if limit <= 0 || limit > recentLimit {
		limit = recentLimit
	}
	return s.store.RecentTransactions(ctx, limit)
}

// AllTransactions returns the full ledger, newest first, joined with
// subject and performer names.
func (s *ReportService) AllTransactions(ctx context.Context) ([]storage.TransactionRow, error) {
	return s.store.ListTransactions(ctx)
}

type reportTotals struct {
	balance    int64
	added      int64
	subtracted int64
	users      int64
}

func (s *ReportService) loadTotals(ctx context.Context) (*reportTotals, error) {
	balance, err := s.store.SumBalances(ctx)
	if err != nil {
		return nil, err
	}
	added, err := s.store.SumPositiveAmounts(ctx)
	if err != nil {
		return nil, err
	}
	negative, err := s.store.SumNegativeAmounts(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &reportTotals{
		balance:    balance,
		added:      added,
		subtracted: -negative, // Stored sum is <= 0; report the absolute value
		users:      users,
	}, nil
}

// monthBuckets returns the first instant of each month in the trailing
// window, oldest first and ending with the current month.
func monthBuckets(now time.Time) []time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	buckets := make([]time.Time, monthWindow)
	for i := 0; i < monthWindow; i++ {
		buckets[i] = first.AddDate(0, i-monthWindow+1, 0)
	}
	return buckets
}

// bucketIndex matches a timestamp to its calendar month bucket.
func bucketIndex(buckets []time.Time, at time.Time) (int, bool) {
	for i, b := range buckets {
		if b.Year() == at.Year() && b.Month() == at.Month() {
			return i, true
		}
	}
	return 0, false
}
