// Package requesttime stamps each request with a single start time. Handlers
// measure durations from it so the reported latency includes time spent in
// earlier middleware.
package requesttime

import (
	"net/http"
	"time"

	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and
// stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
