package middleware

import (
	"context"
	"net/http"
	"strings"

	"share-adage-backend/pkg/httpx"

	apperrors "share-adage-backend/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

// userIDKey carries the authenticated caller's subject identifier.
const userIDKey contextKey = "user_id"

// WithUserID adds the authenticated user id to the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID extracts the authenticated user id from the context.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// Authenticate extracts the caller's subject from the Bearer ID token. The
// token signature was already verified by the API Gateway authorizer in
// front of this service; here only the sub claim is read. Requests without
// a usable token are rejected with 401.
func Authenticate(logger *zap.Logger) func(next http.Handler) http.Handler {
	parser := jwt.NewParser()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				httpx.RespondError(w, logger, apperrors.NewUnauthorizedError("missing bearer token"))
				return
			}

			claims := jwt.MapClaims{}
			_, _, err := parser.ParseUnverified(strings.TrimPrefix(header, "Bearer "), claims)
			if err != nil {
				httpx.RespondError(w, logger, apperrors.NewUnauthorizedError("invalid token"))
				return
			}

			sub, err := claims.GetSubject()
			if err != nil || sub == "" {
				httpx.RespondError(w, logger, apperrors.NewUnauthorizedError("token has no subject"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), sub)))
		})
	}
}
