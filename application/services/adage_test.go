package services

import (
	"context"
	"testing"
	"time"

	"share-adage-backend/domain/adage"
	"share-adage-backend/domain/reward"

	apperrors "share-adage-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAdageByRegisteredUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putUser(t, "user-1", "a@example.com", "Alice")

	record, err := f.adageSvc.Create(ctx, adage.Registered("user-1"), "haste makes waste", "")
	require.NoError(t, err)
	require.NotEmpty(t, record.AdageID)
	assert.Equal(t, adage.SortKeyTitle, record.Key)
	assert.Equal(t, int(time.Now().Month()), record.RegistrationMonth)
	assert.False(t, record.ByGuest)

	rows := f.ledgerRows(t, "user-1")
	require.Len(t, rows, 1)
	assert.Equal(t, int(reward.RegistrationAdage), rows[0].Reason)
	assert.Equal(t, 100, f.getIdentity(t, "user-1").LikePoints)

	// No inline episode, so no cascade.
	assert.Empty(t, f.invoker.functions)
}

func TestCreateAdageByGuest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	record, err := f.adageSvc.Create(ctx, adage.NewGuest(), "look before you leap", "")
	require.NoError(t, err)
	assert.True(t, record.ByGuest)

	// Guests never touch the users table.
	var anything []map[string]interface{}
	require.NoError(t, f.users.QueryPrefix(ctx, record.AdageID, "", &anything))
	assert.Empty(t, anything)
}

func TestCreateAdageCascadesInlineEpisode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putUser(t, "user-1", "a@example.com", "Alice")

	record, err := f.adageSvc.Create(ctx, adage.Registered("user-1"), "title", "my story")
	require.NoError(t, err)

	require.Equal(t, []string{episodeFunction}, f.invoker.functions)
	payload, ok := f.invoker.payloads[0].(episodePostPayload)
	require.True(t, ok)
	assert.Equal(t, record.AdageID, payload.AdageID)
	assert.Equal(t, "my story", payload.Episode)
	assert.Equal(t, "user-1", payload.UserID)
}

// A guest cascade carries the literal "guest" so the episode handler
// synthesizes its own identity instead of reusing the adage author's.
func TestCreateAdageGuestCascadePassesLiteralGuest(t *testing.T) {
	f := newFixture(t)

	_, err := f.adageSvc.Create(context.Background(), adage.NewGuest(), "title", "guest story")
	require.NoError(t, err)

	require.Len(t, f.invoker.payloads, 1)
	payload := f.invoker.payloads[0].(episodePostPayload)
	assert.Equal(t, "guest", payload.UserID)
}

func TestCreateAdageRequiresTitle(t *testing.T) {
	f := newFixture(t)

	_, err := f.adageSvc.Create(context.Background(), adage.Registered("user-1"), "", "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestLikeAdageCompounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putUser(t, "user-1", "a@example.com", "Alice")

	record, err := f.adageSvc.Create(ctx, adage.Registered("user-1"), "title", "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.adageSvc.Like(ctx, record.AdageID))
	}

	detail, err := f.adageSvc.Get(ctx, record.AdageID)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.LikePoints)
}

func TestListMonthly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putUser(t, "user-1", "a@example.com", "Alice")
	month := int(time.Now().Month())

	low, err := f.adageSvc.Create(ctx, adage.Registered("user-1"), "low", "")
	require.NoError(t, err)
	high, err := f.adageSvc.Create(ctx, adage.Registered("user-1"), "high", "")
	require.NoError(t, err)
	_, err = f.adageSvc.Create(ctx, adage.NewGuest(), "guest adage", "")
	require.NoError(t, err)

	require.NoError(t, f.adageSvc.Like(ctx, high.AdageID))
	require.NoError(t, f.adageSvc.Like(ctx, high.AdageID))
	require.NoError(t, f.adageSvc.Like(ctx, low.AdageID))

	listed, err := f.adageSvc.ListMonthly(ctx, month)
	require.NoError(t, err)

	// Guest adages are excluded and ranking is by likePoints descending.
	require.Len(t, listed, 2)
	assert.Equal(t, high.AdageID, listed[0].AdageID)
	assert.Equal(t, 2, listed[0].LikePoints)
	assert.Equal(t, low.AdageID, listed[1].AdageID)
}

// Adages tied on likePoints keep the order the store returned them in.
func TestListMonthlyKeepsStoreOrderOnTies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putUser(t, "user-1", "a@example.com", "Alice")
	month := int(time.Now().Month())

	for _, title := range []string{"first", "second", "third"} {
		_, err := f.adageSvc.Create(ctx, adage.Registered("user-1"), title, "")
		require.NoError(t, err)
	}

	var stored []adage.TitleRecord
	require.NoError(t, f.adages.QueryIndex(ctx, monthIndex, "registrationMonth", month, &stored))

	listed, err := f.adageSvc.ListMonthly(ctx, month)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, title := range stored {
		assert.Equal(t, title.AdageID, listed[i].AdageID)
	}
}

func TestListMonthlyExcludesGuestEpisodes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putUser(t, "user-1", "a@example.com", "Alice")
	month := int(time.Now().Month())

	record, err := f.adageSvc.Create(ctx, adage.Registered("user-1"), "title", "")
	require.NoError(t, err)

	_, err = f.episodeSvc.Post(ctx, record.AdageID, adage.Registered("user-1"), "mine")
	require.NoError(t, err)
	_, err = f.episodeSvc.Post(ctx, record.AdageID, adage.NewGuest(), "guest story")
	require.NoError(t, err)

	listed, err := f.adageSvc.ListMonthly(ctx, month)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Episodes, 1)
	assert.Equal(t, "user-1", listed[0].Episodes[0].UserID)
}

func TestListMonthlyRejectsInvalidMonth(t *testing.T) {
	f := newFixture(t)

	_, err := f.adageSvc.ListMonthly(context.Background(), 13)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetAdageIncludesGuestEpisodes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putUser(t, "user-1", "a@example.com", "Alice")

	record, err := f.adageSvc.Create(ctx, adage.Registered("user-1"), "title", "")
	require.NoError(t, err)
	_, err = f.episodeSvc.Post(ctx, record.AdageID, adage.NewGuest(), "guest story")
	require.NoError(t, err)

	detail, err := f.adageSvc.Get(ctx, record.AdageID)
	require.NoError(t, err)
	require.Len(t, detail.Episodes, 1)
	assert.Equal(t, adage.GuestName, detail.Episodes[0].UserName)
}

func TestGetAdageNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.adageSvc.Get(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}
