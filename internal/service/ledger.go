package service

import (
	"context"
	"strings"

	"fintrack/internal/domain"
	"fintrack/internal/metrics"
	"fintrack/internal/storage"

	"github.com/sirupsen/logrus"
)

// LedgerService records balance-affecting transactions. The ledger entry
// and the subject's balance adjustment are applied as one atomic unit by
// the store; on any failure neither effect is visible.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates the balance mutator backed by the given store.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// Apply validates the request, confirms the performer is an admin, and
// atomically appends the ledger entry while adjusting the subject's
// balance by the signed amount. Returns the created entry with its
// generated id and timestamp.
func (s *LedgerService) Apply(ctx context.Context, userID uint, amount int64, reason string, performedBy uint) (*domain.Transaction, error) {
	if amount == 0 {
		return nil, domain.ErrZeroAmount
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrEmptyReason
	}

	performer, err := s.store.GetUserByID(ctx, performedBy)
	if err != nil || !performer.IsAdmin() {
		return nil, domain.ErrNoAuthorizedPerformer
	}

	t := &domain.Transaction{
		UserID:      userID,
		Amount:      amount,
		Reason:      reason,
		PerformedBy: performer.ID,
	}
	if err := s.store.ApplyTransaction(ctx, t); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":      userID,
			"amount":       amount,
			"performed_by": performer.ID,
			"error":        err.Error(),
		}).Error("Transaction failed")
		return nil, err
	}

	direction := "credit"
	if amount < 0 {
		direction = "debit"
	}
	metrics.TransactionsAppliedTotal.WithLabelValues(direction).Inc()
	logrus.WithFields(logrus.Fields{
		"transaction_id": t.ID,
		"user_id":        userID,
		"amount":         amount,
		"performed_by":   performer.ID,
	}).Info("Transaction applied")
	return t, nil
}
