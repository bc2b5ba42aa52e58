package services

import (
	"context"
	"testing"

	"share-adage-backend/application/ports"
	"share-adage-backend/domain/user"
	"share-adage-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	monthIndex = "registrationMonth-Index"
	loginIndex = "loginId-Index"
	userIndex  = "userId-Index"

	episodeFunction = "share-adage-service-test-episodePost"
)

// fakeIdentity is an in-memory ports.IdentityProvider.
type fakeIdentity struct {
	sub        string
	confirmErr error
	authErr    error
	tokens     ports.AuthTokens

	resentTo      []string
	resetCodesTo  []string
	deletedTokens []string
	forgotConfirm int
}

func (f *fakeIdentity) SignUp(ctx context.Context, loginID, password string) (string, error) {
	return f.sub, nil
}

func (f *fakeIdentity) ConfirmSignUp(ctx context.Context, loginID, code string) error {
	return f.confirmErr
}

func (f *fakeIdentity) ResendConfirmationCode(ctx context.Context, loginID string) error {
	f.resentTo = append(f.resentTo, loginID)
	return nil
}

func (f *fakeIdentity) InitiateAuth(ctx context.Context, loginID, password string) (*ports.AuthTokens, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	tokens := f.tokens
	return &tokens, nil
}

func (f *fakeIdentity) DeleteUser(ctx context.Context, accessToken string) error {
	f.deletedTokens = append(f.deletedTokens, accessToken)
	return nil
}

func (f *fakeIdentity) AdminResetPassword(ctx context.Context, loginID string) error {
	f.resetCodesTo = append(f.resetCodesTo, loginID)
	return nil
}

func (f *fakeIdentity) ConfirmForgotPassword(ctx context.Context, loginID, code, password string) error {
	f.forgotConfirm++
	return nil
}

// fakeInvoker records async invocations instead of dispatching them.
type fakeInvoker struct {
	functions []string
	payloads  []interface{}
	err       error
}

func (f *fakeInvoker) InvokeAsync(ctx context.Context, functionName string, payload interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.functions = append(f.functions, functionName)
	f.payloads = append(f.payloads, payload)
	return nil
}

// fakeEvents records published event detail types.
type fakeEvents struct {
	detailTypes []string
}

func (f *fakeEvents) Publish(ctx context.Context, detailType string, detail interface{}) {
	f.detailTypes = append(f.detailTypes, detailType)
}

// fakeMetrics records reward counts.
type fakeMetrics struct {
	reasons []string
	points  []int
}

func (f *fakeMetrics) CountReward(ctx context.Context, reason string, points int) {
	f.reasons = append(f.reasons, reason)
	f.points = append(f.points, points)
}

// fixture wires every service against in-memory tables and fakes.
type fixture struct {
	adages   *memory.Table
	users    *memory.Table
	identity *fakeIdentity
	invoker  *fakeInvoker
	events   *fakeEvents
	metrics  *fakeMetrics

	ledger     *Ledger
	adageSvc   *AdageService
	episodeSvc *EpisodeService
	heartSvc   *HeartService
	userSvc    *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()

	f := &fixture{
		adages:   memory.NewTable("adageId"),
		users:    memory.NewTable("userId"),
		identity: &fakeIdentity{sub: "new-sub"},
		invoker:  &fakeInvoker{},
		events:   &fakeEvents{},
		metrics:  &fakeMetrics{},
	}
	f.ledger = NewLedger(f.users, f.metrics, logger)
	f.adageSvc = NewAdageService(f.adages, f.ledger, f.invoker, episodeFunction, monthIndex, logger)
	f.episodeSvc = NewEpisodeService(f.adages, f.users, f.ledger, f.events, logger)
	f.heartSvc = NewHeartService(f.users, f.ledger, logger)
	f.userSvc = NewUserService(f.adages, f.users, f.identity, f.ledger, f.events, loginIndex, userIndex, logger)
	return f
}

func (f *fixture) putUser(t *testing.T, userID, loginID, userName string) {
	t.Helper()
	err := f.users.Put(context.Background(), user.IdentityRecord{
		UserID:   userID,
		Key:      user.SortKeyIdentity,
		LoginID:  loginID,
		UserName: userName,
	})
	require.NoError(t, err)
}

func (f *fixture) getIdentity(t *testing.T, userID string) user.IdentityRecord {
	t.Helper()
	var identity user.IdentityRecord
	found, err := f.users.Get(context.Background(), userID, user.SortKeyIdentity, &identity)
	require.NoError(t, err)
	require.True(t, found, "identity record for %s", userID)
	return identity
}

func (f *fixture) ledgerRows(t *testing.T, userID string) []user.LedgerRecord {
	t.Helper()
	var rows []user.LedgerRecord
	err := f.users.QueryPrefix(context.Background(), userID, user.SortKeyLedgerPrefix, &rows)
	require.NoError(t, err)
	return rows
}
