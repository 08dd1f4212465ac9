package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/recordkeeper/recordkeeper/internal/server/auth"
)

type ctxKey int

const accountIDKey ctxKey = 0

// accountIDFromContext returns the authenticated account id set by
// authMiddleware. The bool is false on unauthenticated requests.
func accountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(accountIDKey).(int64)
	return id, ok
}

// authMiddleware verifies the Bearer token and stores the account id in the
// request context. Requests without a valid token get 401.
func authMiddleware(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
				return
			}

			identity, err := auth.IdentityFromToken(token, secretKey)
			if err != nil {
				writeError(w, err)
				return
			}

			accountID, err := strconv.ParseInt(identity.AccountID, 10, 64)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// timeoutMiddleware bounds every request's context so store calls cannot
// hang past the configured deadline.
func timeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
