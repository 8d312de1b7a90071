package testutil

import (
	"context"
	"net/http"

	"github.com/dalemusser/schoolhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AsTeacher injects a verified teacher identity into the request
// context, bypassing the RequireTeacher middleware.
func AsTeacher(r *http.Request, username string) *http.Request {
	return auth.WithIdentity(r, username)
}
