// Package auth resolves and verifies the caller identity on API requests.
//
// Identity is a bare username supplied by the caller, either as a
// ?username= query parameter or an X-Username header. It is verified by
// a presence check against the teacher directory; there are no tokens or
// sessions. The verified identity is injected into the request context
// and read back with Identity(r).
package auth

import (
	"context"
	"net/http"

	"github.com/dalemusser/schoolhub/internal/app/system/httpjson"
	"github.com/dalemusser/schoolhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// IdentityHeader is the header form of the caller identity.
const IdentityHeader = "X-Username"

// identityParam is the query-parameter form of the caller identity.
const identityParam = "username"

// Verifier answers whether an identity names a known teacher.
// The teacher directory store satisfies this; tests inject fakes.
type Verifier interface {
	Exists(ctx context.Context, identity string) (bool, error)
}

type ctxKey string

const identityKey ctxKey = "identity"

// Identity returns the verified caller identity and a "found?" flag.
func Identity(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(identityKey).(string)
	return id, ok && id != ""
}

// WithIdentity returns a request whose context carries the given identity.
// Exposed for handler tests that bypass the middleware.
func WithIdentity(r *http.Request, identity string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, identity))
}

// CallerIdentity extracts the raw identity string from a request without
// verifying it. Query parameter wins over the header.
func CallerIdentity(r *http.Request) string {
	if id := r.URL.Query().Get(identityParam); id != "" {
		return id
	}
	return r.Header.Get(IdentityHeader)
}

// RequireTeacher verifies the caller identity against the directory.
// Missing or unknown identities get 401. A directory failure is a
// transient collaborator error and gets 503, never 401.
func RequireTeacher(v Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := CallerIdentity(r)
			if identity == "" {
				httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			defer cancel()

			ok, err := v.Exists(ctx, identity)
			if err != nil {
				logger.Error("teacher directory lookup failed",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				httpjson.Error(w, http.StatusServiceUnavailable, "Teacher directory unavailable")
				return
			}
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, WithIdentity(r, identity))
		})
	}
}
