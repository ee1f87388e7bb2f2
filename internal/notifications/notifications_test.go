package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/portfolio/internal/contact"
	"github.com/ziadkadry99/portfolio/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func testNotification(id string) *Notification {
	return &Notification{
		ID:      id,
		Type:    TypeContactReceived,
		Title:   "New message from Ada",
		Message: "Ada <ada@example.com>: Project inquiry",
	}
}

// webhookRecorder is a test webhook endpoint that records payloads.
type webhookRecorder struct {
	mu       sync.Mutex
	payloads [][]byte
	status   int
}

func (wr *webhookRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	buf := new(bytes.Buffer)
	buf.ReadFrom(r.Body)
	wr.mu.Lock()
	wr.payloads = append(wr.payloads, buf.Bytes())
	status := wr.status
	wr.mu.Unlock()
	if status != 0 {
		w.WriteHeader(status)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (wr *webhookRecorder) setStatus(status int) {
	wr.mu.Lock()
	wr.status = status
	wr.mu.Unlock()
}

func TestStoreCreate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	n := testNotification("n-1")
	if err := store.Create(ctx, n); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByID(ctx, "n-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != n.Title || got.Type != TypeContactReceived || got.Delivered {
		t.Errorf("unexpected notification: %+v", got)
	}
}

func TestStoreCreateAutoID(t *testing.T) {
	store := setupTestStore(t)
	n := &Notification{Type: TypeTest, Title: "t"}
	if err := store.Create(context.Background(), n); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.ID == "" || n.CreatedAt.IsZero() {
		t.Errorf("expected generated ID and timestamp, got %+v", n)
	}
}

func TestStoreGetByIDNotFound(t *testing.T) {
	store := setupTestStore(t)
	got, err := store.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestStorePendingAndDelivered(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.Create(ctx, testNotification("a"))
	store.Create(ctx, testNotification("b"))
	if err := store.MarkDelivered(ctx, "a"); err != nil {
		t.Fatalf("MarkDelivered: %v", err)
	}

	pending, err := store.GetPending(ctx)
	if err != nil {
		t.Fatalf("GetPending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "b" {
		t.Errorf("unexpected pending: %+v", pending)
	}

	if err := store.MarkDelivered(ctx, "missing"); err == nil {
		t.Error("expected error for missing notification")
	}

	typed, _ := store.List(ctx, ListFilter{Type: TypeTest})
	if len(typed) != 0 {
		t.Errorf("expected no test notifications, got %d", len(typed))
	}
}

func TestDispatcherWebhook(t *testing.T) {
	store := setupTestStore(t)
	hook := &webhookRecorder{}
	server := httptest.NewServer(hook)
	defer server.Close()

	dispatcher := NewDispatcher(store, []string{server.URL}, nil)
	ctx := context.Background()

	n := testNotification("wh-1")
	if err := dispatcher.Dispatch(ctx, n); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if len(hook.payloads) != 1 {
		t.Fatalf("expected 1 webhook call, got %d", len(hook.payloads))
	}
	var got Notification
	if err := json.Unmarshal(hook.payloads[0], &got); err != nil {
		t.Fatalf("unmarshalling webhook payload: %v", err)
	}
	if got.Title != n.Title {
		t.Errorf("webhook payload Title = %q, want %q", got.Title, n.Title)
	}

	stored, _ := store.GetByID(ctx, "wh-1")
	if !stored.Delivered {
		t.Error("expected notification to be marked delivered")
	}
}

func TestDispatcherWebhookFailure(t *testing.T) {
	store := setupTestStore(t)
	bad := &webhookRecorder{status: http.StatusInternalServerError}
	good := &webhookRecorder{}
	badSrv := httptest.NewServer(bad)
	defer badSrv.Close()
	goodSrv := httptest.NewServer(good)
	defer goodSrv.Close()

	dispatcher := NewDispatcher(store, []string{badSrv.URL, goodSrv.URL}, nil)
	ctx := context.Background()

	if err := dispatcher.Dispatch(ctx, testNotification("wh-2")); err == nil {
		t.Fatal("expected error from failing webhook")
	}
	if len(good.payloads) != 1 {
		t.Error("remaining webhooks should still be tried")
	}
	stored, _ := store.GetByID(ctx, "wh-2")
	if stored == nil || stored.Delivered {
		t.Errorf("notification should be stored but undelivered: %+v", stored)
	}
}

func TestDispatcherNoWebhooks(t *testing.T) {
	store := setupTestStore(t)
	dispatcher := NewDispatcher(store, nil, nil)

	if err := dispatcher.Dispatch(context.Background(), testNotification("local")); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	pending, _ := store.GetPending(context.Background())
	if len(pending) != 1 {
		t.Errorf("expected stored pending notification, got %d", len(pending))
	}
}

func TestNotifyContact(t *testing.T) {
	store := setupTestStore(t)
	hook := &webhookRecorder{}
	server := httptest.NewServer(hook)
	defer server.Close()

	dispatcher := NewDispatcher(store, []string{server.URL}, nil)
	err := dispatcher.NotifyContact(context.Background(), &contact.Message{
		ID:      "msg-1",
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Project inquiry",
	})
	if err != nil {
		t.Fatalf("NotifyContact: %v", err)
	}

	var got Notification
	json.Unmarshal(hook.payloads[0], &got)
	if got.Type != TypeContactReceived || got.Title != "New message from Ada" || got.Source != "msg-1" {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestDispatcherRetry(t *testing.T) {
	store := setupTestStore(t)
	hook := &webhookRecorder{status: http.StatusServiceUnavailable}
	server := httptest.NewServer(hook)
	defer server.Close()

	dispatcher := NewDispatcher(store, []string{server.URL}, nil)
	ctx := context.Background()

	if err := dispatcher.Dispatch(ctx, testNotification("r-1")); err == nil {
		t.Fatal("expected first delivery to fail")
	}
	stored, _ := store.GetByID(ctx, "r-1")
	if stored.Attempts != 1 || stored.LastError == "" {
		t.Errorf("failed attempt not recorded: %+v", stored)
	}

	hook.setStatus(0)
	n, err := dispatcher.Retry(ctx)
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if n != 1 {
		t.Errorf("Retry delivered %d, want 1", n)
	}
	stored, _ = store.GetByID(ctx, "r-1")
	if !stored.Delivered || stored.Attempts != 2 || stored.LastError != "" {
		t.Errorf("unexpected after retry: %+v", stored)
	}

	n, _ = dispatcher.Retry(ctx)
	if n != 0 {
		t.Errorf("nothing left to retry, got %d", n)
	}
}

func TestDispatcherRetrySkipsExhausted(t *testing.T) {
	store := setupTestStore(t)
	hook := &webhookRecorder{}
	server := httptest.NewServer(hook)
	defer server.Close()

	ctx := context.Background()
	n := testNotification("stuck")
	n.Attempts = MaxAttempts
	store.Create(ctx, n)

	delivered, err := NewDispatcher(store, []string{server.URL}, nil).Retry(ctx)
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if delivered != 0 || len(hook.payloads) != 0 {
		t.Errorf("exhausted notification should be skipped, delivered=%d calls=%d", delivered, len(hook.payloads))
	}
}

func passThrough(next http.Handler) http.Handler { return next }

func TestHTTPHandlers(t *testing.T) {
	store := setupTestStore(t)
	dispatcher := NewDispatcher(store, nil, nil)
	ctx := context.Background()

	r := chi.NewRouter()
	RegisterRoutes(r, store, dispatcher, passThrough)

	if err := store.Create(ctx, testNotification("api-1")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("GET /api/notifications", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		var got []Notification
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("expected 1 notification, got %d", len(got))
		}
	})

	t.Run("GET /api/notifications/{id}", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notifications/api-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("GET /api/notifications/{id} not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notifications/nope", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("POST /api/notifications/test", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/notifications/test", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}
	})

	t.Run("POST /api/notifications/retry", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/notifications/retry", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		var got map[string]int
		json.NewDecoder(w.Body).Decode(&got)
		if got["delivered"] != 0 {
			t.Errorf("no webhooks configured, delivered = %d", got["delivered"])
		}
	})

	t.Run("POST /api/notifications/{id}/deliver", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/notifications/api-1/deliver", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		got, _ := store.GetByID(ctx, "api-1")
		if !got.Delivered {
			t.Error("expected delivered")
		}
	})

	t.Run("GET /api/notifications/pending", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notifications/pending", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var got []Notification
		json.NewDecoder(w.Body).Decode(&got)
		// The test notification has no webhooks to reach, so it stays pending.
		if len(got) != 1 {
			t.Errorf("expected 1 pending, got %d", len(got))
		}
	})
}
