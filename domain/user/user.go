// Package user defines the record kinds stored in the users table. Records
// share the userId partition key and are discriminated by the "key" sort
// attribute: the identity record, append-only point-ledger rows, and
// denormalized copies of the user's authored episodes.
package user

import (
	"strconv"
	"time"
)

// SortKeyIdentity is the sort key of the single identity record per user.
const SortKeyIdentity = "userId"

// SortKeyLedgerPrefix is the sort-key prefix shared by all ledger rows.
const SortKeyLedgerPrefix = "point#"

// SortKeyEpisodePrefix is the sort-key prefix of authored-episode copies.
const SortKeyEpisodePrefix = "episode"

// LedgerSortKey builds a ledger row's sort key from the sender identity and
// the grant time. The nanosecond timestamp makes the key unique per sender
// and gives ledger rows a natural ascending chronological order.
func LedgerSortKey(senderID string, at time.Time) string {
	return SortKeyLedgerPrefix + senderID + "#" + strconv.FormatInt(at.UnixNano(), 10)
}

// AuthoredEpisodeSortKey builds the sort key of the denormalized copy of an
// episode the user wrote, keyed by the adage it belongs to.
func AuthoredEpisodeSortKey(adageID string) string {
	return SortKeyEpisodePrefix + "#" + adageID
}

// IdentityRecord is the root record of a registered user.
type IdentityRecord struct {
	UserID     string `dynamodbav:"userId" json:"userId"`
	Key        string `dynamodbav:"key" json:"-"`
	LoginID    string `dynamodbav:"loginId" json:"loginId"`
	UserName   string `dynamodbav:"userName" json:"userName"`
	LikePoints int    `dynamodbav:"likePoints" json:"likePoints"`
}

// LedgerRecord is one immutable point/heart award. Rows are append-only and
// are only removed individually by the owner or when the account is deleted.
type LedgerRecord struct {
	UserID     string `dynamodbav:"userId" json:"userId"`
	Key        string `dynamodbav:"key" json:"key"`
	SenderID   string `dynamodbav:"senderId" json:"senderId"`
	SenderName string `dynamodbav:"senderName" json:"senderName"`
	Reason     int    `dynamodbav:"reason" json:"reason"`
	Point      int    `dynamodbav:"point" json:"point"`
	DateTime   int64  `dynamodbav:"dateTime" json:"dateTime"`
}

// AuthoredEpisodeRecord is the user-side copy of an episode, kept for fast
// "my episodes" listing. It carries the authoring userId so the copy can be
// found through the table's userId index.
type AuthoredEpisodeRecord struct {
	UserID  string `dynamodbav:"userId" json:"userId"`
	Key     string `dynamodbav:"key" json:"-"`
	AdageID string `dynamodbav:"adageId" json:"adageId"`
	Title   string `dynamodbav:"title" json:"title"`
	Episode string `dynamodbav:"episode" json:"episode"`
}
