// ABOUTME: Feature flag middleware attaches the flag manager to every request context
// ABOUTME: Handlers and services read flags through featureflags.IsEnabled(ctx, ...)

package middleware

import (
	"net/http"

	"commonplace-api/pkg/featureflags"
)

// FeatureFlagsMiddleware makes manager available to downstream handlers
func FeatureFlagsMiddleware(manager featureflags.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(featureflags.WithManager(r.Context(), manager)))
		})
	}
}
