// Package ports declares the collaborator interfaces the application layer
// depends on. Implementations live under infrastructure.
package ports

import (
	"context"
	"errors"
)

// QueryOptions tunes a partition or index query.
type QueryOptions struct {
	// ExcludeGuest filters out rows carrying the byGuest marker.
	ExcludeGuest bool
	// Projection limits the attributes fetched, when the store supports it.
	Projection []string
}

// QueryOption mutates QueryOptions.
type QueryOption func(*QueryOptions)

// ExcludeGuest filters guest-authored rows from a query.
func ExcludeGuest() QueryOption {
	return func(o *QueryOptions) { o.ExcludeGuest = true }
}

// WithProjection limits the attributes returned by a read.
func WithProjection(attrs ...string) QueryOption {
	return func(o *QueryOptions) { o.Projection = attrs }
}

// Table is the uniform key-value adapter over one logical table addressed by
// (partition key, sort key). All operations are single-item or
// single-partition; no multi-partition transaction is exposed. Absence of an
// item is reported as found=false or an empty slice, never as an error.
type Table interface {
	// Get loads one item into out. found is false when the item is absent.
	Get(ctx context.Context, partitionKey, sortKey string, out interface{}, opts ...QueryOption) (found bool, err error)
	// Put writes one item, replacing any existing item with the same key.
	Put(ctx context.Context, item interface{}) error
	// Add atomically increments a numeric attribute by delta. This is the
	// only concurrency primitive the system relies on.
	Add(ctx context.Context, partitionKey, sortKey, attribute string, delta int) error
	// SetString overwrites a single string attribute of an existing item.
	SetString(ctx context.Context, partitionKey, sortKey, attribute, value string) error
	// Delete removes one item. Deleting an absent item is not an error.
	Delete(ctx context.Context, partitionKey, sortKey string) error
	// QueryPrefix loads every item of a partition whose sort key starts with
	// sortKeyPrefix into out (a pointer to a slice). An empty prefix loads
	// the whole partition.
	QueryPrefix(ctx context.Context, partitionKey, sortKeyPrefix string, out interface{}, opts ...QueryOption) error
	// QueryIndex loads every item whose indexed attribute equals value into
	// out (a pointer to a slice).
	QueryIndex(ctx context.Context, indexName, attribute string, value interface{}, out interface{}, opts ...QueryOption) error
}

// AuthTokens is the token set issued by the identity provider on login.
type AuthTokens struct {
	IDToken      string `json:"idToken"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ErrCodeExpired is returned by ConfirmSignUp when the confirmation code has
// expired and a fresh one should be requested.
var ErrCodeExpired = errors.New("confirmation code expired")

// IdentityProvider is the external authentication collaborator, keyed by a
// login identifier and returning a stable subject identifier ("sub").
type IdentityProvider interface {
	SignUp(ctx context.Context, loginID, password string) (sub string, err error)
	ConfirmSignUp(ctx context.Context, loginID, code string) error
	ResendConfirmationCode(ctx context.Context, loginID string) error
	InitiateAuth(ctx context.Context, loginID, password string) (*AuthTokens, error)
	DeleteUser(ctx context.Context, accessToken string) error
	AdminResetPassword(ctx context.Context, loginID string) error
	ConfirmForgotPassword(ctx context.Context, loginID, code, password string) error
}

// AsyncInvoker fires a sibling function with a JSON payload and does not wait
// for the outcome. Delivery is at most once; the caller's write is never
// rolled back when the downstream invocation fails.
type AsyncInvoker interface {
	InvokeAsync(ctx context.Context, functionName string, payload interface{}) error
}

// EventPublisher emits best-effort domain events. Failures are logged by the
// implementation and never surfaced to the triggering operation.
type EventPublisher interface {
	Publish(ctx context.Context, detailType string, detail interface{})
}

// RewardMetrics counts reward grants for observability.
type RewardMetrics interface {
	CountReward(ctx context.Context, reason string, points int)
}
