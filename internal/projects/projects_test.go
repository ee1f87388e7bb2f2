package projects

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/portfolio/internal/db"
	"github.com/ziadkadry99/portfolio/internal/markdown"
	"github.com/ziadkadry99/portfolio/internal/users"
)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	owner, err := users.NewStore(database).Create(context.Background(), users.User{
		Username: "owner",
		Email:    "owner@example.com",
	})
	if err != nil {
		t.Fatalf("creating owner: %v", err)
	}
	return NewStore(database, markdown.New()), owner.ID
}

func seed(t *testing.T, store *Store, userID string) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []Project{
		{Title: "Task API", Completed: true, Featured: true},
		{Title: "Blog Engine", Completed: true},
		{Title: "Scratchpad", Completed: false},
	}
	for i, p := range items {
		p.UserID = userID
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if _, err := store.Create(ctx, p); err != nil {
			t.Fatalf("Create %s: %v", p.Title, err)
		}
	}
}

func titles(list []Project) []string {
	out := []string{}
	for _, p := range list {
		out = append(out, p.Title)
	}
	return out
}

func TestCreateAndGet(t *testing.T) {
	store, owner := setupTestStore(t)
	ctx := context.Background()
	done := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	created, err := store.Create(ctx, Project{
		Title:          "Portfolio",
		Description:    "Built with **Flask**.",
		Technologies:   "Python, Flask, SQLite",
		Completed:      true,
		CompletionDate: &done,
		UserID:         owner,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("expected non-empty ID")
	}

	fetched, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected project")
	}
	if !strings.Contains(string(fetched.DescriptionHTML), "<strong>Flask</strong>") {
		t.Errorf("description not rendered: %q", fetched.DescriptionHTML)
	}
	if fetched.CompletionDate == nil || !fetched.CompletionDate.Equal(done) {
		t.Errorf("completion date = %v, want %v", fetched.CompletionDate, done)
	}
	if diff := cmp.Diff([]string{"Python", "Flask", "SQLite"}, fetched.TechList()); diff != "" {
		t.Errorf("TechList() (-want +got):\n%s", diff)
	}
}

func TestCreateValidation(t *testing.T) {
	store, owner := setupTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, Project{Title: "  ", UserID: owner}); err == nil {
		t.Error("expected error for blank title")
	}
	if _, err := store.Create(ctx, Project{Title: "x"}); err == nil {
		t.Error("expected error for missing user")
	}
}

func TestListFilters(t *testing.T) {
	store, owner := setupTestStore(t)
	seed(t, store, owner)
	ctx := context.Background()

	all, _ := store.List(ctx, ListFilter{})
	if diff := cmp.Diff([]string{"Scratchpad", "Blog Engine", "Task API"}, titles(all)); diff != "" {
		t.Errorf("all (-want +got):\n%s", diff)
	}

	completed, _ := store.List(ctx, ListFilter{CompletedOnly: true})
	if diff := cmp.Diff([]string{"Blog Engine", "Task API"}, titles(completed)); diff != "" {
		t.Errorf("completed (-want +got):\n%s", diff)
	}

	featured, _ := store.List(ctx, ListFilter{CompletedOnly: true, FeaturedOnly: true})
	if diff := cmp.Diff([]string{"Task API"}, titles(featured)); diff != "" {
		t.Errorf("featured (-want +got):\n%s", diff)
	}

	limited, _ := store.List(ctx, ListFilter{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected 1, got %d", len(limited))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	store, owner := setupTestStore(t)
	ctx := context.Background()

	p, _ := store.Create(ctx, Project{Title: "Draft", UserID: owner})
	p.Title = "Final"
	p.Completed = true
	if err := store.Update(ctx, *p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.GetByID(ctx, p.ID)
	if got.Title != "Final" || !got.Completed {
		t.Errorf("update not applied: %+v", got)
	}

	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete err = %v, want ErrNotFound", err)
	}
	if err := store.Update(ctx, Project{ID: "missing", Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing err = %v, want ErrNotFound", err)
	}
}

// HTTP handler tests

func TestRoute_ListProjects(t *testing.T) {
	store, owner := setupTestStore(t)
	seed(t, store, owner)

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("GET", "/api/projects/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list []Project
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 2 {
		t.Errorf("expected 2 completed projects, got %d", len(list))
	}
}

func TestRoute_Featured(t *testing.T) {
	store, owner := setupTestStore(t)
	seed(t, store, owner)

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("GET", "/api/projects/featured", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var list []Project
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 || list[0].Title != "Task API" {
		t.Errorf("unexpected featured list: %+v", list)
	}
}

func TestRoute_EmptyListIsArray(t *testing.T) {
	store, _ := setupTestStore(t)

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("GET", "/api/projects/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("expected [], got %s", w.Body.String())
	}
}

func TestRoute_GetHidesIncomplete(t *testing.T) {
	store, owner := setupTestStore(t)
	ctx := context.Background()
	draft, _ := store.Create(ctx, Project{Title: "Draft", UserID: owner})
	live, _ := store.Create(ctx, Project{Title: "Live", UserID: owner, Completed: true})

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	for id, want := range map[string]int{
		draft.ID:      http.StatusNotFound,
		live.ID:       http.StatusOK,
		"nonexistent": http.StatusNotFound,
	} {
		req := httptest.NewRequest("GET", "/api/projects/"+id, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("GET %s: expected %d, got %d", id, want, w.Code)
		}
	}
}
