// internal/app/features/announcements/routes.go
package announcements

import (
	"github.com/dalemusser/schoolhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Routes returns the announcements router. The active feed is public;
// every other operation requires a verified teacher identity.
func Routes(h *Handler, directory auth.Verifier, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Get("/active", h.ListActive)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireTeacher(directory, logger))

		r.Get("/all", h.ListAll)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
