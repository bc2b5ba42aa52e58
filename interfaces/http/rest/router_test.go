package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"share-adage-backend/application/ports"
	"share-adage-backend/application/services"
	"share-adage-backend/domain/user"
	"share-adage-backend/infrastructure/persistence/memory"
	"share-adage-backend/interfaces/http/rest/handlers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubIdentity struct{}

func (stubIdentity) SignUp(ctx context.Context, loginID, password string) (string, error) {
	return "stub-sub", nil
}
func (stubIdentity) ConfirmSignUp(ctx context.Context, loginID, code string) error { return nil }
func (stubIdentity) ResendConfirmationCode(ctx context.Context, loginID string) error {
	return nil
}
func (stubIdentity) InitiateAuth(ctx context.Context, loginID, password string) (*ports.AuthTokens, error) {
	return &ports.AuthTokens{}, nil
}
func (stubIdentity) DeleteUser(ctx context.Context, accessToken string) error { return nil }
func (stubIdentity) AdminResetPassword(ctx context.Context, loginID string) error {
	return nil
}
func (stubIdentity) ConfirmForgotPassword(ctx context.Context, loginID, code, password string) error {
	return nil
}

type stubInvoker struct{}

func (stubInvoker) InvokeAsync(ctx context.Context, functionName string, payload interface{}) error {
	return nil
}

type stubEvents struct{}

func (stubEvents) Publish(ctx context.Context, detailType string, detail interface{}) {}

type env struct {
	handler http.Handler
	adages  *memory.Table
	users   *memory.Table
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := zap.NewNop()

	adages := memory.NewTable("adageId")
	users := memory.NewTable("userId")
	ledger := services.NewLedger(users, nil, logger)
	adageSvc := services.NewAdageService(adages, ledger, stubInvoker{}, "episodePost", "registrationMonth-Index", logger)
	episodeSvc := services.NewEpisodeService(adages, users, ledger, stubEvents{}, logger)
	heartSvc := services.NewHeartService(users, ledger, logger)
	userSvc := services.NewUserService(adages, users, stubIdentity{}, ledger, stubEvents{}, "loginId-Index", "userId-Index", logger)

	router := NewRouter(
		handlers.NewAdageHandler(adageSvc, logger),
		handlers.NewEpisodeHandler(episodeSvc, logger),
		handlers.NewUserHandler(userSvc, logger),
		handlers.NewHeartHandler(heartSvc, logger),
		logger,
	)
	return &env{handler: router.Setup(), adages: adages, users: users}
}

func (e *env) putUser(t *testing.T, userID, loginID, userName string) {
	t.Helper()
	err := e.users.Put(context.Background(), user.IdentityRecord{
		UserID:   userID,
		Key:      user.SortKeyIdentity,
		LoginID:  loginID,
		UserName: userName,
	})
	require.NoError(t, err)
}

func (e *env) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func bearerFor(t *testing.T, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestHealthCheck(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateAdageRequiresToken(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/adage", "", `{"title":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAdageAsGuest(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/adage/guest", "", `{"title":"look before you leap"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		AdageID string `json:"adageId"`
		ByGuest bool   `json:"byGuest"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AdageID)
	assert.True(t, body.ByGuest)
}

func TestCreateAdageAsRegisteredUser(t *testing.T) {
	e := newEnv(t)
	e.putUser(t, "user-1", "a@example.com", "Alice")

	rec := e.do(t, http.MethodPost, "/adage", bearerFor(t, "user-1"), `{"title":"haste makes waste"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestLikeAdage(t *testing.T) {
	e := newEnv(t)
	created := e.do(t, http.MethodPost, "/adage/guest", "", `{"title":"x"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	var body struct {
		AdageID string `json:"adageId"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &body))

	rec := e.do(t, http.MethodPatch, "/adage/"+body.AdageID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"adageId":"`+body.AdageID+`"}`, rec.Body.String())
}

func TestGetMissingAdageIs404(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/adage/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		ErrorCode int    `json:"errorCode"`
		Phrase    string `json:"phrase"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.ErrorCode)
	assert.Equal(t, "Not Found", body.Phrase)
}

// Posting an episode without its required fields answers 403, which
// existing clients depend on.
func TestPostEpisodeMissingFieldsIs403(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/episode", "", `{"adageId":"","episode":"","userId":"guest"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteEpisodeRequiresToken(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodDelete, "/episode", "", `{"adageId":"a"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostThenDeleteEpisode(t *testing.T) {
	e := newEnv(t)
	e.putUser(t, "user-1", "a@example.com", "Alice")
	token := bearerFor(t, "user-1")

	created := e.do(t, http.MethodPost, "/adage", token, `{"title":"x"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	var adage struct {
		AdageID string `json:"adageId"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &adage))

	posted := e.do(t, http.MethodPost, "/episode", "",
		`{"adageId":"`+adage.AdageID+`","episode":"my story","userId":"user-1"}`)
	require.Equal(t, http.StatusCreated, posted.Code)

	deleted := e.do(t, http.MethodDelete, "/episode", token, `{"adageId":"`+adage.AdageID+`"}`)
	require.Equal(t, http.StatusOK, deleted.Code)

	episode := e.do(t, http.MethodGet, "/episode/"+adage.AdageID+"/user-1", "", "")
	require.Equal(t, http.StatusOK, episode.Code)
	assert.JSONEq(t, `{"episode":""}`, episode.Body.String())
}

func TestUserProfile(t *testing.T) {
	e := newEnv(t)
	e.putUser(t, "user-1", "a@example.com", "Alice")

	rec := e.do(t, http.MethodGet, "/user/profile", bearerFor(t, "user-1"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		UserName string `json:"userName"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Alice", body.UserName)
}

func TestDeleteHeartHistoryMissingRowIs400(t *testing.T) {
	e := newEnv(t)
	e.putUser(t, "user-1", "a@example.com", "Alice")

	rec := e.do(t, http.MethodDelete, "/user/heart", bearerFor(t, "user-1"), `{"key":"point#nobody#1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendHeart(t *testing.T) {
	e := newEnv(t)
	e.putUser(t, "sender", "s@example.com", "Sally")
	e.putUser(t, "receiver", "r@example.com", "Rita")

	rec := e.do(t, http.MethodPost, "/user/heart/receiver", bearerFor(t, "sender"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	history := e.do(t, http.MethodGet, "/user/heart", bearerFor(t, "receiver"), "")
	require.Equal(t, http.StatusOK, history.Code)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(history.Body.Bytes(), &rows))
	assert.Len(t, rows, 1)
}

func TestSignUpValidation(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/user", "", `{"loginId":"not-an-email","password":"password1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/user", "", `{"loginId":"a@example.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/user", "", `{"loginId":"a@example.com","password":"password1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/adage", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
