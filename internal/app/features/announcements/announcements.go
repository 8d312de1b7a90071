// internal/app/features/announcements/announcements.go
package announcements

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	announcementstore "github.com/dalemusser/schoolhub/internal/app/store/announcements"
	"github.com/dalemusser/schoolhub/internal/app/store/audit"
	"github.com/dalemusser/schoolhub/internal/app/system/auditlog"
	"github.com/dalemusser/schoolhub/internal/app/system/auth"
	"github.com/dalemusser/schoolhub/internal/app/system/dates"
	"github.com/dalemusser/schoolhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/schoolhub/internal/app/system/httpjson"
	"github.com/dalemusser/schoolhub/internal/app/system/timeouts"
	"github.com/dalemusser/schoolhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// announcementJSON is the response shape for a single announcement.
// The store's ObjectID never leaks past this boundary; callers always
// see the identifier as a hex string.
type announcementJSON struct {
	ID             string    `json:"id"`
	Message        string    `json:"message"`
	StartDate      string    `json:"start_date,omitempty"`
	ExpirationDate string    `json:"expiration_date"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

func toJSON(a models.Announcement) announcementJSON {
	return announcementJSON{
		ID:             a.ID.Hex(),
		Message:        a.Message,
		StartDate:      a.StartDate,
		ExpirationDate: a.ExpirationDate,
		CreatedBy:      a.CreatedBy,
		CreatedAt:      a.CreatedAt,
	}
}

func toJSONList(anns []models.Announcement) []announcementJSON {
	out := make([]announcementJSON, 0, len(anns))
	for _, a := range anns {
		out = append(out, toJSON(a))
	}
	return out
}

// announcementInput is the request body for create and update.
type announcementInput struct {
	Message        string `json:"message"`
	StartDate      string `json:"start_date"`
	ExpirationDate string `json:"expiration_date"`
}

// validate checks the message bound and the date constraints, returning
// a human-readable reason when the input is rejected. The message is
// trimmed and sanitized in place.
func (in *announcementInput) validate() (reason string, ok bool) {
	in.Message = htmlsanitize.Sanitize(strings.TrimSpace(in.Message))
	if in.Message == "" {
		return "Message is required", false
	}
	// Characters, not bytes: a multibyte message is bounded by its
	// rune count.
	if utf8.RuneCountInString(in.Message) > models.MessageMaxLen {
		return fmt.Sprintf("Message must be %d characters or fewer", models.MessageMaxLen), false
	}

	if err := dates.Validate(in.ExpirationDate); err != nil {
		return "Invalid date format. Use YYYY-MM-DD", false
	}
	if in.StartDate != "" {
		if err := dates.Validate(in.StartDate); err != nil {
			return "Invalid date format. Use YYYY-MM-DD", false
		}
		if dates.After(in.StartDate, in.ExpirationDate) {
			return "Start date must be before expiration date", false
		}
	}
	return "", true
}

// parseID converts a path identifier into the store's key type. This is
// the single conversion boundary for announcement IDs.
func parseID(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}

// ListActive handles GET /announcements/active. No authentication: this
// is the public feed. An announcement is active when its expiration
// date is today or later and its start date, if any, is today or
// earlier (both bounds inclusive).
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	today := dates.Today(h.Now())
	active, err := h.Store.GetActive(ctx, today)
	if err != nil {
		h.Log.Error("failed to list active announcements", zap.Error(err), zap.String("path", r.URL.Path))
		httpjson.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	httpjson.Respond(w, http.StatusOK, toJSONList(active))
}

// ListAll handles GET /announcements/all. Requires a verified teacher;
// returns every announcement, newest first, with no date filtering.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Store.GetAll(ctx)
	if err != nil {
		h.Log.Error("failed to list announcements", zap.Error(err), zap.String("path", r.URL.Path))
		httpjson.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	httpjson.Respond(w, http.StatusOK, toJSONList(all))
}

// Create handles POST /announcements/. All validation happens before
// the insert; a rejected request never writes anything.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.Identity(r)

	var in announcementInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if reason, ok := in.validate(); !ok {
		httpjson.Error(w, http.StatusBadRequest, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, models.Announcement{
		Message:        in.Message,
		StartDate:      in.StartDate,
		ExpirationDate: in.ExpirationDate,
		CreatedBy:      identity,
	})
	if err != nil {
		h.Log.Error("failed to create announcement", zap.Error(err), zap.String("path", r.URL.Path))
		httpjson.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.Audit.Log(ctx, auditlog.AnnouncementEvent(r, audit.EventAnnouncementCreated, identity, created.ID.Hex()))

	httpjson.Respond(w, http.StatusCreated, toJSON(created))
}

// Update handles PUT /announcements/{id}. Overwrites message and the
// visibility window in place; id, created_by, and created_at never
// change.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.Identity(r)

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid announcement ID")
		return
	}

	var in announcementInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if reason, ok := in.validate(); !ok {
		httpjson.Error(w, http.StatusBadRequest, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Store.UpdateByID(ctx, id, announcementstore.Update{
		Message:        in.Message,
		StartDate:      in.StartDate,
		ExpirationDate: in.ExpirationDate,
	})
	if err != nil {
		if errors.Is(err, announcementstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Announcement not found")
			return
		}
		h.Log.Error("failed to update announcement", zap.Error(err),
			zap.String("path", r.URL.Path), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.Audit.Log(ctx, auditlog.AnnouncementEvent(r, audit.EventAnnouncementUpdated, identity, id.Hex()))

	httpjson.Respond(w, http.StatusOK, toJSON(*updated))
}

// Delete handles DELETE /announcements/{id}. The record is removed
// permanently; deleting the same identifier twice reports not found on
// the second call.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.Identity(r)

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid announcement ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, announcementstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Announcement not found")
			return
		}
		h.Log.Error("failed to delete announcement", zap.Error(err),
			zap.String("path", r.URL.Path), zap.String("id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.Audit.Log(ctx, auditlog.AnnouncementEvent(r, audit.EventAnnouncementDeleted, identity, id.Hex()))

	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "Announcement deleted successfully"})
}
