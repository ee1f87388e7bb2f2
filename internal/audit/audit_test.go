package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/portfolio/internal/auth"
	"github.com/ziadkadry99/portfolio/internal/db"
)

func setupStore(t *testing.T) (*Store, *db.DB) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database), database
}

func passthrough(next http.Handler) http.Handler { return next }

func TestLogAndGetByID(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	err := store.Log(ctx, Entry{
		ID:        "entry-1",
		ActorType: ActorCLI,
		ActorID:   "alice",
		Action:    ActionTokenCreated,
		Target:    "laptop",
	})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.GetByID(ctx, "entry-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry")
	}
	if got.ActorType != ActorCLI || got.Action != ActionTokenCreated || got.Target != "laptop" {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp to be filled in")
	}

	missing, err := store.GetByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("GetByID(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func TestLogGeneratesID(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if err := store.Log(ctx, Entry{ActorType: ActorSystem, Action: ActionProjectsSeeded}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	entries, _ := store.Query(ctx, QueryFilter{})
	if len(entries) != 1 || entries[0].ID == "" {
		t.Errorf("expected one entry with generated ID, got %+v", entries)
	}
}

func TestQueryFilters(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, e := range []Entry{
		{ActorType: ActorToken, ActorID: "ci", Action: ActionAdminRequest},
		{ActorType: ActorCLI, ActorID: "alice", Action: ActionTokenCreated},
		{ActorType: ActorCLI, ActorID: "alice", Action: ActionTokenRevoked},
	} {
		e.Timestamp = base.Add(time.Duration(i) * time.Hour)
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	all, _ := store.Query(ctx, QueryFilter{})
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].Action != ActionTokenRevoked {
		t.Errorf("expected newest first, got %s", all[0].Action)
	}

	byActor, _ := store.Query(ctx, QueryFilter{ActorID: "alice"})
	if len(byActor) != 2 {
		t.Errorf("actor filter: expected 2, got %d", len(byActor))
	}

	byAction, _ := store.Query(ctx, QueryFilter{Action: ActionAdminRequest})
	if len(byAction) != 1 || byAction[0].ActorID != "ci" {
		t.Errorf("action filter: unexpected %+v", byAction)
	}

	since := base.Add(30 * time.Minute)
	recent, _ := store.Query(ctx, QueryFilter{Since: &since})
	if len(recent) != 2 {
		t.Errorf("since filter: expected 2, got %d", len(recent))
	}

	paged, _ := store.Query(ctx, QueryFilter{Limit: 1, Offset: 1})
	if len(paged) != 1 || paged[0].Action != ActionTokenCreated {
		t.Errorf("paging: unexpected %+v", paged)
	}
}

func TestDeleteBefore(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	old := time.Now().UTC().Add(-48 * time.Hour)

	store.Log(ctx, Entry{ActorType: ActorSystem, Action: ActionAdminRequest, Timestamp: old})
	store.Log(ctx, Entry{ActorType: ActorSystem, Action: ActionAdminRequest})

	n, err := store.DeleteBefore(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}
	left, _ := store.Query(ctx, QueryFilter{})
	if len(left) != 1 {
		t.Errorf("expected 1 remaining, got %d", len(left))
	}
}

func TestMiddlewareRecordsMutations(t *testing.T) {
	store, database := setupStore(t)
	tokens := auth.NewStore(database)
	plain, _, err := tokens.Create(context.Background(), "deploy", auth.ScopeAdmin, 0)
	if err != nil {
		t.Fatalf("Create token: %v", err)
	}

	r := chi.NewRouter()
	r.Use(auth.Middleware(tokens, auth.ScopeAdmin), Middleware(store, zap.NewNop()))
	r.Get("/api/things", func(w http.ResponseWriter, r *http.Request) {})
	r.Post("/api/things", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	for _, method := range []string{"GET", "POST"} {
		req := httptest.NewRequest(method, "/api/things", nil)
		req.Header.Set("Authorization", "Bearer "+plain)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries, err := store.Query(context.Background(), QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the POST to be recorded, got %d entries", len(entries))
	}
	e := entries[0]
	if e.ActorType != ActorToken || e.ActorID != "deploy" {
		t.Errorf("actor = %s/%s, want token/deploy", e.ActorType, e.ActorID)
	}
	if e.Target != "POST /api/things" || e.Status != http.StatusCreated {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestMiddlewareWithoutToken(t *testing.T) {
	store, _ := setupStore(t)
	h := Middleware(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/api/x", nil))

	entries, _ := store.Query(context.Background(), QueryFilter{})
	if len(entries) != 1 || entries[0].ActorType != ActorSystem || entries[0].Status != http.StatusOK {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestRoutes(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	store.Log(ctx, Entry{ID: "a1", ActorType: ActorCLI, ActorID: "alice", Action: ActionTokenCreated})
	store.Log(ctx, Entry{ID: "a2", ActorType: ActorToken, ActorID: "ci", Action: ActionAdminRequest})

	r := chi.NewRouter()
	RegisterRoutes(r, store, passthrough)

	req := httptest.NewRequest("GET", "/api/audit/?actor=alice", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list []Entry
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 || list[0].ID != "a1" {
		t.Errorf("unexpected list: %+v", list)
	}

	req = httptest.NewRequest("GET", "/api/audit/a2", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/audit/missing", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRoutesRejectBadFilter(t *testing.T) {
	store, _ := setupStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store, passthrough)

	for _, q := range []string{"since=yesterday", "limit=-1", "offset=x"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/audit/?"+q, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, w.Code)
		}
	}
}

func TestRoutesRequireAdmin(t *testing.T) {
	store, _ := setupStore(t)
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}

	r := chi.NewRouter()
	RegisterRoutes(r, store, deny)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/audit/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}
