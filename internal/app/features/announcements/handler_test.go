package announcements_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/schoolhub/internal/app/features/announcements"
	announcementstore "github.com/dalemusser/schoolhub/internal/app/store/announcements"
	"github.com/dalemusser/schoolhub/internal/domain/models"
	"github.com/dalemusser/schoolhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeStore is an in-memory announcement store mirroring the Mongo
// store's semantics, including the inclusive window bounds.
type fakeStore struct {
	anns map[primitive.ObjectID]models.Announcement
	seq  int
	err  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{anns: make(map[primitive.ObjectID]models.Announcement)}
}

func (f *fakeStore) GetActive(_ context.Context, today string) ([]models.Announcement, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Announcement
	for _, a := range f.anns {
		if a.ExpirationDate >= today && (a.StartDate == "" || a.StartDate <= today) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) GetAll(_ context.Context) ([]models.Announcement, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Announcement
	for _, a := range f.anns {
		out = append(out, a)
	}
	// Newest first.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, a models.Announcement) (models.Announcement, error) {
	if f.err != nil {
		return models.Announcement{}, f.err
	}
	a.ID = primitive.NewObjectID()
	f.seq++
	a.CreatedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Second)
	f.anns[a.ID] = a
	return a, nil
}

func (f *fakeStore) UpdateByID(_ context.Context, id primitive.ObjectID, upd announcementstore.Update) (*models.Announcement, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.anns[id]
	if !ok {
		return nil, announcementstore.ErrNotFound
	}
	a.Message = upd.Message
	a.StartDate = upd.StartDate
	a.ExpirationDate = upd.ExpirationDate
	f.anns[id] = a
	return &a, nil
}

func (f *fakeStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.anns[id]; !ok {
		return announcementstore.ErrNotFound
	}
	delete(f.anns, id)
	return nil
}

// fakeDirectory is an in-memory teacher directory.
type fakeDirectory struct {
	teachers map[string]bool
}

func (f *fakeDirectory) Exists(_ context.Context, identity string) (bool, error) {
	return f.teachers[identity], nil
}

type env struct {
	router  http.Handler
	store   *fakeStore
	handler *announcements.Handler
}

func newEnv(t *testing.T, now time.Time) *env {
	t.Helper()

	store := newFakeStore()
	h := &announcements.Handler{
		Store: store,
		Log:   zap.NewNop(),
		Now:   func() time.Time { return now },
	}
	dir := &fakeDirectory{teachers: map[string]bool{"mrodriguez": true, "mchen": true}}
	return &env{
		router:  announcements.Routes(h, dir, zap.NewNop()),
		store:   store,
		handler: h,
	}
}

func (e *env) do(method, target, identity, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if identity != "" {
		req.Header.Set("X-Username", identity)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decoding list response: %v", err)
	}
	return out
}

func decodeObj(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decoding object response: %v", err)
	}
	return out
}

func TestListActive_WindowBounds(t *testing.T) {
	now := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)
	e := newEnv(t, now)
	ctx := context.Background()

	mk := func(msg, start, exp string) {
		if _, err := e.store.Create(ctx, models.Announcement{
			Message: msg, StartDate: start, ExpirationDate: exp, CreatedBy: "mrodriguez",
		}); err != nil {
			t.Fatal(err)
		}
	}
	mk("expires today", "", "2030-06-15")
	mk("starts today", "2030-06-15", "2030-07-01")
	mk("already running", "2030-06-01", "2030-07-01")
	mk("future start", "2030-06-16", "2030-07-01")
	mk("expired yesterday", "", "2030-06-14")

	rec := e.do("GET", "/active", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	got := map[string]bool{}
	for _, item := range decodeList(t, rec) {
		got[item["message"].(string)] = true
	}

	for _, want := range []string{"expires today", "starts today", "already running"} {
		if !got[want] {
			t.Errorf("expected %q in active list", want)
		}
	}
	for _, absent := range []string{"future start", "expired yesterday"} {
		if got[absent] {
			t.Errorf("did not expect %q in active list", absent)
		}
	}
}

func TestListActive_NoAuthNeeded(t *testing.T) {
	e := newEnv(t, time.Now())

	rec := e.do("GET", "/active", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 without identity", rec.Code)
	}
	// Empty store renders an empty array, not null.
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestListActive_StoreFailure(t *testing.T) {
	e := newEnv(t, time.Now())
	e.store.err = errors.New("connection reset")

	rec := e.do("GET", "/active", "", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestCreate_RoundTrip(t *testing.T) {
	e := newEnv(t, time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC))

	rec := e.do("POST", "/", "mrodriguez",
		`{"message":"Exam Friday","expiration_date":"2099-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	created := decodeObj(t, rec)
	if created["id"] == "" || created["id"] == nil {
		t.Error("expected assigned id in response")
	}
	if created["created_by"] != "mrodriguez" {
		t.Errorf("created_by = %v, want mrodriguez", created["created_by"])
	}

	// The created record shows up in the authenticated full list with
	// identical fields.
	rec = e.do("GET", "/all", "mrodriguez", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list all status = %d, want 200", rec.Code)
	}
	all := decodeList(t, rec)
	if len(all) != 1 {
		t.Fatalf("expected 1 announcement, got %d", len(all))
	}
	if all[0]["message"] != "Exam Friday" {
		t.Errorf("message = %v, want Exam Friday", all[0]["message"])
	}
	if all[0]["expiration_date"] != "2099-01-01" {
		t.Errorf("expiration_date = %v, want 2099-01-01", all[0]["expiration_date"])
	}
	if _, present := all[0]["start_date"]; present {
		t.Error("start_date should be omitted when absent")
	}
}

func TestCreate_ExamFridayVisibility(t *testing.T) {
	// An announcement with no start date and expiration 2099-01-01 is
	// active on any date up to and including 2099-01-01, and not after.
	e := newEnv(t, time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC))

	rec := e.do("POST", "/", "mrodriguez",
		`{"message":"Exam Friday","expiration_date":"2099-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}

	rec = e.do("GET", "/active", "", "")
	if len(decodeList(t, rec)) != 1 {
		t.Error("expected announcement active before expiration")
	}

	e.handler.Now = func() time.Time { return time.Date(2099, 1, 1, 23, 0, 0, 0, time.UTC) }
	rec = e.do("GET", "/active", "", "")
	if len(decodeList(t, rec)) != 1 {
		t.Error("expected announcement still active on its expiration date")
	}

	e.handler.Now = func() time.Time { return time.Date(2099, 1, 2, 0, 0, 0, 0, time.UTC) }
	rec = e.do("GET", "/active", "", "")
	if len(decodeList(t, rec)) != 0 {
		t.Error("expected announcement inactive after expiration")
	}
}

func TestCreate_StartAfterExpiration(t *testing.T) {
	e := newEnv(t, time.Now())

	rec := e.do("POST", "/", "mrodriguez",
		`{"message":"Backwards","start_date":"2030-02-01","expiration_date":"2030-01-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	// Rejected before any record is stored.
	if len(e.store.anns) != 0 {
		t.Error("invalid input must not be stored")
	}
}

func TestCreate_BadDateFormat(t *testing.T) {
	e := newEnv(t, time.Now())

	for _, body := range []string{
		`{"message":"x","expiration_date":"01/01/2030"}`,
		`{"message":"x","expiration_date":"2030-1-1"}`,
		`{"message":"x","expiration_date":""}`,
		`{"message":"x","start_date":"not-a-date","expiration_date":"2030-01-01"}`,
	} {
		rec := e.do("POST", "/", "mrodriguez", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
	if len(e.store.anns) != 0 {
		t.Error("invalid input must not be stored")
	}
}

func TestCreate_BlankMessage(t *testing.T) {
	e := newEnv(t, time.Now())

	for _, body := range []string{
		`{"message":"","expiration_date":"2099-01-01"}`,
		`{"message":"   ","expiration_date":"2099-01-01"}`,
	} {
		rec := e.do("POST", "/", "mrodriguez", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
	if len(e.store.anns) != 0 {
		t.Error("blank messages must not be stored")
	}
}

func TestCreate_MessageTooLong(t *testing.T) {
	e := newEnv(t, time.Now())

	long := strings.Repeat("a", models.MessageMaxLen+1)
	rec := e.do("POST", "/", "mrodriguez",
		`{"message":"`+long+`","expiration_date":"2099-01-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	// The bound counts characters, not bytes: a 200-character CJK
	// message is well within the limit even at three bytes per rune.
	multibyte := strings.Repeat("校", 200)
	rec = e.do("POST", "/", "mrodriguez",
		`{"message":"`+multibyte+`","expiration_date":"2099-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Errorf("multibyte message: status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	tooManyRunes := strings.Repeat("校", models.MessageMaxLen+1)
	rec = e.do("POST", "/", "mrodriguez",
		`{"message":"`+tooManyRunes+`","expiration_date":"2099-01-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("over-limit multibyte message: status = %d, want 400", rec.Code)
	}
}

func TestCreate_SanitizesMessage(t *testing.T) {
	e := newEnv(t, time.Now())

	rec := e.do("POST", "/", "mrodriguez",
		`{"message":"<p>Hello</p><script>alert('x')</script>","expiration_date":"2099-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	created := decodeObj(t, rec)
	if msg := created["message"].(string); strings.Contains(msg, "script") {
		t.Errorf("expected script stripped from message, got %q", msg)
	}
}

func TestMutations_Unauthorized(t *testing.T) {
	e := newEnv(t, time.Now())
	valid := `{"message":"x","expiration_date":"2099-01-01"}`
	id := primitive.NewObjectID().Hex()

	cases := []struct {
		method, target, identity, body string
	}{
		{"POST", "/", "", valid},            // no identity
		{"POST", "/", "impostor", valid},    // unknown identity
		{"GET", "/all", "", ""},
		{"GET", "/all", "impostor", ""},
		{"PUT", "/" + id, "impostor", valid},
		{"DELETE", "/" + id, "", ""},
	}
	for _, c := range cases {
		rec := e.do(c.method, c.target, c.identity, c.body)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s as %q: status = %d, want 401", c.method, c.target, c.identity, rec.Code)
		}
	}
	if len(e.store.anns) != 0 {
		t.Error("unauthorized calls must not write")
	}
}

func TestUpdate_Success(t *testing.T) {
	e := newEnv(t, time.Now())

	created, err := e.store.Create(context.Background(), models.Announcement{
		Message: "original", StartDate: "2030-01-01", ExpirationDate: "2030-02-01", CreatedBy: "mchen",
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := e.do("PUT", "/"+created.ID.Hex(), "mrodriguez",
		`{"message":"revised","expiration_date":"2030-03-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	updated := decodeObj(t, rec)
	if updated["message"] != "revised" {
		t.Errorf("message = %v, want revised", updated["message"])
	}
	if updated["expiration_date"] != "2030-03-01" {
		t.Errorf("expiration_date = %v, want 2030-03-01", updated["expiration_date"])
	}
	// Creator and id are immutable.
	if updated["created_by"] != "mchen" {
		t.Errorf("created_by = %v, want mchen (unchanged)", updated["created_by"])
	}
	if updated["id"] != created.ID.Hex() {
		t.Errorf("id = %v, want %s", updated["id"], created.ID.Hex())
	}
}

func TestUpdate_NotFound(t *testing.T) {
	e := newEnv(t, time.Now())

	rec := e.do("PUT", "/"+primitive.NewObjectID().Hex(), "mrodriguez",
		`{"message":"x","expiration_date":"2099-01-01"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpdate_MalformedID(t *testing.T) {
	e := newEnv(t, time.Now())

	rec := e.do("PUT", "/not-an-id", "mrodriguez",
		`{"message":"x","expiration_date":"2099-01-01"}`)
	// Malformed identifiers are invalid input, never not-found.
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdate_InvalidDates(t *testing.T) {
	e := newEnv(t, time.Now())

	created, err := e.store.Create(context.Background(), models.Announcement{
		Message: "original", ExpirationDate: "2030-02-01", CreatedBy: "mchen",
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := e.do("PUT", "/"+created.ID.Hex(), "mrodriguez",
		`{"message":"x","start_date":"2030-05-01","expiration_date":"2030-04-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	// Store untouched on rejected update.
	if e.store.anns[created.ID].Message != "original" {
		t.Error("rejected update must not modify the record")
	}
}

func TestDelete_Twice(t *testing.T) {
	e := newEnv(t, time.Now())

	created, err := e.store.Create(context.Background(), models.Announcement{
		Message: "bye", ExpirationDate: "2099-01-01", CreatedBy: "mchen",
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := e.do("DELETE", "/"+created.ID.Hex(), "mrodriguez", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("first delete: status = %d, want 200", rec.Code)
	}
	if got := decodeObj(t, rec)["message"]; got != "Announcement deleted successfully" {
		t.Errorf("confirmation = %v", got)
	}

	rec = e.do("DELETE", "/"+created.ID.Hex(), "mrodriguez", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", rec.Code)
	}
}

func TestDelete_MalformedID(t *testing.T) {
	e := newEnv(t, time.Now())

	rec := e.do("DELETE", "/zzz", "mrodriguez", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListAll_NewestFirst(t *testing.T) {
	e := newEnv(t, time.Now())

	for _, msg := range []string{"first", "second", "third"} {
		rec := e.do("POST", "/", "mrodriguez",
			`{"message":"`+msg+`","expiration_date":"2099-01-01"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %q: status %d", msg, rec.Code)
		}
	}

	rec := e.do("GET", "/all", "mchen", "")
	all := decodeList(t, rec)
	if len(all) != 3 {
		t.Fatalf("expected 3 announcements, got %d", len(all))
	}
	want := []string{"third", "second", "first"}
	for i, w := range want {
		if all[i]["message"] != w {
			t.Errorf("position %d = %v, want %s", i, all[i]["message"], w)
		}
	}
}

func TestUpdate_DirectHandlerCall(t *testing.T) {
	// Calls the handler without the router, using the context helpers to
	// stand in for the middleware and chi routing.
	e := newEnv(t, time.Now())

	created, err := e.store.Create(context.Background(), models.Announcement{
		Message: "original", ExpirationDate: "2030-02-01", CreatedBy: "mchen",
	})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("PUT", "/"+created.ID.Hex(),
		strings.NewReader(`{"message":"revised","expiration_date":"2030-03-01"}`))
	req = testutil.AsTeacher(req, "mrodriguez")
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := httptest.NewRecorder()

	e.handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if decodeObj(t, rec)["message"] != "revised" {
		t.Error("expected message to be updated")
	}
}

func TestStoreFailure_NotMaskedAsNotFound(t *testing.T) {
	e := newEnv(t, time.Now())
	e.store.err = errors.New("server selection timeout")

	rec := e.do("PUT", "/"+primitive.NewObjectID().Hex(), "mrodriguez",
		`{"message":"x","expiration_date":"2099-01-01"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("update during outage: status = %d, want 500", rec.Code)
	}

	rec = e.do("DELETE", "/"+primitive.NewObjectID().Hex(), "mrodriguez", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("delete during outage: status = %d, want 500", rec.Code)
	}
}
