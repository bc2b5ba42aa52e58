package services

import (
	"context"
	"fmt"

	"share-adage-backend/application/ports"
	"share-adage-backend/domain/reward"
	"share-adage-backend/domain/user"

	apperrors "share-adage-backend/pkg/errors"

	"go.uber.org/zap"
)

// HeartService handles direct user-to-user hearts and the heart history.
type HeartService struct {
	users  ports.Table
	ledger *Ledger
	logger *zap.Logger
}

// NewHeartService creates a HeartService.
func NewHeartService(users ports.Table, ledger *Ledger, logger *zap.Logger) *HeartService {
	return &HeartService{
		users:  users,
		ledger: ledger,
		logger: logger,
	}
}

// Send delivers a heart from sender to receiver: the receiver's counter
// goes up by one and a ledger row attributes the point to the sender with
// the display name the sender had at send time.
func (s *HeartService) Send(ctx context.Context, senderID, receiverID string) error {
	var sender user.IdentityRecord
	found, err := s.users.Get(ctx, senderID, user.SortKeyIdentity, &sender, ports.WithProjection("userId", "userName"))
	if err != nil {
		return fmt.Errorf("get sender: %w", err)
	}
	if !found {
		return apperrors.NewNotFoundError(fmt.Sprintf("does not exist. sender userId: %s", senderID))
	}

	var receiver user.IdentityRecord
	found, err = s.users.Get(ctx, receiverID, user.SortKeyIdentity, &receiver, ports.WithProjection("userId"))
	if err != nil {
		return fmt.Errorf("get receiver: %w", err)
	}
	if !found {
		return apperrors.NewNotFoundError(fmt.Sprintf("does not exist. receiver userId: %s", receiverID))
	}

	return s.ledger.RecordReward(ctx, receiverID, reward.ThankYou, WithSender(senderID, sender.UserName))
}

// DeleteHistory removes one ledger row. The counter increment the row
// produced is deliberately not reversed; the running total keeps every
// point ever granted.
func (s *HeartService) DeleteHistory(ctx context.Context, userID, ledgerKey string) error {
	if ledgerKey == "" {
		return apperrors.NewValidationError("key is required")
	}

	var row user.LedgerRecord
	found, err := s.users.Get(ctx, userID, ledgerKey, &row)
	if err != nil {
		return fmt.Errorf("get heart history: %w", err)
	}
	if !found {
		return apperrors.NewValidationError(fmt.Sprintf("heart history does not exist. key: %s", ledgerKey))
	}

	if err := s.users.Delete(ctx, userID, ledgerKey); err != nil {
		return fmt.Errorf("delete heart history: %w", err)
	}

	s.logger.Info("heart history deleted",
		zap.String("userId", userID),
		zap.String("key", ledgerKey),
	)
	return nil
}

// ListHistory returns the user's ledger rows in chronological order. The
// sort key embeds the grant timestamp, so store order is already ascending
// per sender; rows are returned as the store yields them.
func (s *HeartService) ListHistory(ctx context.Context, userID string) ([]user.LedgerRecord, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}

	var rows []user.LedgerRecord
	if err := s.users.QueryPrefix(ctx, userID, user.SortKeyLedgerPrefix, &rows); err != nil {
		return nil, fmt.Errorf("query heart history: %w", err)
	}
	if rows == nil {
		rows = []user.LedgerRecord{}
	}
	return rows, nil
}
