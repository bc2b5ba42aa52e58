// Package services implements the application operations behind the request
// handlers: the reward ledger, adage aggregate, episode and heart
// interactions, and the user profile.
package services

import (
	"context"
	"fmt"
	"time"

	"share-adage-backend/application/ports"
	"share-adage-backend/domain/reward"
	"share-adage-backend/domain/user"

	apperrors "share-adage-backend/pkg/errors"

	"go.uber.org/zap"
)

// Default attribution for rewards granted by the system itself.
const (
	DefaultSenderID   = "admin"
	DefaultSenderName = "management"
)

// likePointsAttr is the counter attribute on identity and title records.
const likePointsAttr = "likePoints"

// Ledger appends immutable point-award rows and maintains the running
// likePoints counter on the user's identity record.
type Ledger struct {
	users   ports.Table
	metrics ports.RewardMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewLedger creates a Ledger. metrics may be nil.
func NewLedger(users ports.Table, metrics ports.RewardMetrics, logger *zap.Logger) *Ledger {
	return &Ledger{
		users:   users,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

type rewardDelivery struct {
	senderID   string
	senderName string
}

// RewardOption adjusts how a reward is attributed.
type RewardOption func(*rewardDelivery)

// WithSender attributes the reward to a specific sender, with the display
// name the sender had at send time.
func WithSender(senderID, senderName string) RewardOption {
	return func(d *rewardDelivery) {
		d.senderID = senderID
		d.senderName = senderName
	}
}

// RecordReward appends a ledger row with the reason's fixed point value,
// then atomically increments the user's likePoints counter by that value.
//
// The two writes are deliberately independent: a crash between them leaves
// an orphan ledger row or an unrecorded increment. The original system has
// no multi-item transaction and this port preserves that property.
// TODO: a single conditional TransactWriteItems call would close the window
// at the cost of strengthening the documented contract.
func (l *Ledger) RecordReward(ctx context.Context, userID string, reason reward.Reason, opts ...RewardOption) error {
	if userID == "" {
		return apperrors.NewValidationError("userId is required")
	}
	if !reason.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown reward reason: %d", reason))
	}

	delivery := rewardDelivery{
		senderID:   DefaultSenderID,
		senderName: DefaultSenderName,
	}
	for _, opt := range opts {
		opt(&delivery)
	}

	now := l.now()
	row := user.LedgerRecord{
		UserID:     userID,
		Key:        user.LedgerSortKey(delivery.senderID, now),
		SenderID:   delivery.senderID,
		SenderName: delivery.senderName,
		Reason:     int(reason),
		Point:      reason.Point(),
		DateTime:   now.UnixNano(),
	}

	if err := l.users.Put(ctx, row); err != nil {
		return fmt.Errorf("append ledger row: %w", err)
	}

	if err := l.users.Add(ctx, userID, user.SortKeyIdentity, likePointsAttr, reason.Point()); err != nil {
		// The ledger row above is already persisted; the counter is now
		// behind it until a later grant succeeds. Accepted drift.
		return fmt.Errorf("increment likePoints: %w", err)
	}

	if l.metrics != nil {
		l.metrics.CountReward(ctx, reason.String(), reason.Point())
	}

	l.logger.Info("reward recorded",
		zap.String("userId", userID),
		zap.String("reason", reason.String()),
		zap.Int("point", reason.Point()),
		zap.String("senderId", delivery.senderID),
	)
	return nil
}
