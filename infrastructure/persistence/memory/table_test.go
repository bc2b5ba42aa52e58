package memory

import (
	"context"
	"testing"

	"share-adage-backend/application/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	AdageID    string `dynamodbav:"adageId"`
	Key        string `dynamodbav:"key"`
	LikePoints int    `dynamodbav:"likePoints"`
	ByGuest    bool   `dynamodbav:"byGuest,omitempty"`
}

func TestGetAbsent(t *testing.T) {
	table := NewTable("adageId")

	var out row
	found, err := table.Get(context.Background(), "a", "title", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutThenGet(t *testing.T) {
	table := NewTable("adageId")
	ctx := context.Background()

	require.NoError(t, table.Put(ctx, row{AdageID: "a", Key: "title", LikePoints: 2}))

	var out row
	found, err := table.Get(ctx, "a", "title", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, out.LikePoints)
}

// ADD must create the item when absent, matching DynamoDB.
func TestAddCreatesMissingItem(t *testing.T) {
	table := NewTable("adageId")
	ctx := context.Background()

	require.NoError(t, table.Add(ctx, "a", "title", "likePoints", 1))
	require.NoError(t, table.Add(ctx, "a", "title", "likePoints", 2))

	var out row
	found, err := table.Get(ctx, "a", "title", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, out.LikePoints)
}

func TestQueryPrefixOrdersBySortKey(t *testing.T) {
	table := NewTable("adageId")
	ctx := context.Background()

	require.NoError(t, table.Put(ctx, row{AdageID: "a", Key: "episode#b"}))
	require.NoError(t, table.Put(ctx, row{AdageID: "a", Key: "episode#a"}))
	require.NoError(t, table.Put(ctx, row{AdageID: "a", Key: "title"}))

	var out []row
	require.NoError(t, table.QueryPrefix(ctx, "a", "episode", &out))
	require.Len(t, out, 2)
	assert.Equal(t, "episode#a", out[0].Key)
	assert.Equal(t, "episode#b", out[1].Key)
}

// The omitempty tag drops byGuest=false at marshal time, so only guest rows
// carry the attribute and the existence filter works like DynamoDB's.
func TestExcludeGuestFilter(t *testing.T) {
	table := NewTable("adageId")
	ctx := context.Background()

	require.NoError(t, table.Put(ctx, row{AdageID: "a", Key: "episode#guest#1", ByGuest: true}))
	require.NoError(t, table.Put(ctx, row{AdageID: "a", Key: "episode#user-1"}))

	var all []row
	require.NoError(t, table.QueryPrefix(ctx, "a", "episode", &all))
	assert.Len(t, all, 2)

	var registered []row
	require.NoError(t, table.QueryPrefix(ctx, "a", "episode", &registered, ports.ExcludeGuest()))
	require.Len(t, registered, 1)
	assert.Equal(t, "episode#user-1", registered[0].Key)
}

func TestQueryIndexMatchesAttribute(t *testing.T) {
	table := NewTable("adageId")
	ctx := context.Background()

	type indexed struct {
		AdageID           string `dynamodbav:"adageId"`
		Key               string `dynamodbav:"key"`
		RegistrationMonth int    `dynamodbav:"registrationMonth"`
	}
	require.NoError(t, table.Put(ctx, indexed{AdageID: "a", Key: "title", RegistrationMonth: 3}))
	require.NoError(t, table.Put(ctx, indexed{AdageID: "b", Key: "title", RegistrationMonth: 4}))

	var out []indexed
	require.NoError(t, table.QueryIndex(ctx, "registrationMonth-Index", "registrationMonth", 3, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].AdageID)
}

func TestDeleteAbsentIsNoError(t *testing.T) {
	table := NewTable("adageId")
	assert.NoError(t, table.Delete(context.Background(), "a", "title"))
}

func TestSetString(t *testing.T) {
	table := NewTable("userId")
	ctx := context.Background()

	type identity struct {
		UserID   string `dynamodbav:"userId"`
		Key      string `dynamodbav:"key"`
		UserName string `dynamodbav:"userName"`
	}
	require.NoError(t, table.Put(ctx, identity{UserID: "u", Key: "userId", UserName: "Old"}))
	require.NoError(t, table.SetString(ctx, "u", "userId", "userName", "New"))

	var out identity
	found, err := table.Get(ctx, "u", "userId", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "New", out.UserName)
}
