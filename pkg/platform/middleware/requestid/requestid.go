// Package requestid tags every request with an ID so log lines emitted by
// the pipeline can be correlated.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/requestcontext"
)

// Header carries a caller supplied request ID, echoed in the response.
const Header = "X-Request-ID"

// Middleware stores the request ID in the context: the caller's if it parses
// as a UUID, otherwise a fresh one.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)

		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
