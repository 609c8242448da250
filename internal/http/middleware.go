package http

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// HeaderAuthMiddleware trusts the identity headers set by the edge proxy
// after session validation. The storefront itself never inspects credentials.
func HeaderAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		verified := r.Header.Get("X-Email-Verified") == "true"

		ctx := context.WithValue(r.Context(), "user_id", userID)
		ctx = context.WithValue(ctx, "email_verified", verified)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), "request_id", requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getUserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value("user_id").(string); ok {
		return userID
	}
	return ""
}

func isEmailVerified(ctx context.Context) bool {
	verified, ok := ctx.Value("email_verified").(bool)
	return ok && verified
}

// HeaderUserDirectory satisfies the order service's UserDirectory port from
// the identity headers carried on the request context.
type HeaderUserDirectory struct{}

func (HeaderUserDirectory) IsEmailVerified(ctx context.Context, _ string) (bool, error) {
	return isEmailVerified(ctx), nil
}
