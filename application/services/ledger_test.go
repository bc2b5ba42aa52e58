package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"share-adage-backend/domain/reward"
	"share-adage-backend/domain/user"

	apperrors "share-adage-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRewardAppendsRowAndIncrementsCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putUser(t, "user-1", "a@example.com", "Alice")

	err := f.ledger.RecordReward(ctx, "user-1", reward.RegistrationAdage)
	require.NoError(t, err)

	rows := f.ledgerRows(t, "user-1")
	require.Len(t, rows, 1)
	assert.Equal(t, int(reward.RegistrationAdage), rows[0].Reason)
	assert.Equal(t, 100, rows[0].Point)
	assert.Equal(t, DefaultSenderID, rows[0].SenderID)
	assert.Equal(t, DefaultSenderName, rows[0].SenderName)
	assert.True(t, strings.HasPrefix(rows[0].Key, user.SortKeyLedgerPrefix+DefaultSenderID))

	assert.Equal(t, 100, f.getIdentity(t, "user-1").LikePoints)
}

func TestRecordRewardWithSender(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putUser(t, "receiver", "r@example.com", "Recv")

	err := f.ledger.RecordReward(ctx, "receiver", reward.ThankYou, WithSender("sender", "Sally"))
	require.NoError(t, err)

	rows := f.ledgerRows(t, "receiver")
	require.Len(t, rows, 1)
	assert.Equal(t, "sender", rows[0].SenderID)
	assert.Equal(t, "Sally", rows[0].SenderName)
	assert.Equal(t, 1, rows[0].Point)
}

func TestRecordRewardAccumulates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putUser(t, "user-1", "a@example.com", "Alice")

	base := time.Unix(1700000000, 0)
	step := 0
	f.ledger.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Millisecond)
	}

	require.NoError(t, f.ledger.RecordReward(ctx, "user-1", reward.RegistrationUser))
	require.NoError(t, f.ledger.RecordReward(ctx, "user-1", reward.ThankYou))
	require.NoError(t, f.ledger.RecordReward(ctx, "user-1", reward.ThankYou))

	assert.Len(t, f.ledgerRows(t, "user-1"), 3)
	assert.Equal(t, 102, f.getIdentity(t, "user-1").LikePoints)
}

func TestRecordRewardRejectsUnknownReason(t *testing.T) {
	f := newFixture(t)

	err := f.ledger.RecordReward(context.Background(), "user-1", reward.Reason(999))
	assert.True(t, apperrors.IsValidation(err))
}

func TestRecordRewardRejectsEmptyUser(t *testing.T) {
	f := newFixture(t)

	err := f.ledger.RecordReward(context.Background(), "", reward.ThankYou)
	assert.True(t, apperrors.IsValidation(err))
}

func TestRecordRewardCountsMetrics(t *testing.T) {
	f := newFixture(t)
	f.putUser(t, "user-1", "a@example.com", "Alice")

	require.NoError(t, f.ledger.RecordReward(context.Background(), "user-1", reward.RegistrationEpisode))

	require.Len(t, f.metrics.reasons, 1)
	assert.Equal(t, "RegistrationEpisode", f.metrics.reasons[0])
	assert.Equal(t, []int{50}, f.metrics.points)
}
