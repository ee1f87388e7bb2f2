package projects

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the public project API.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", handleList(store, ListFilter{CompletedOnly: true}))
		r.Get("/featured", handleList(store, ListFilter{CompletedOnly: true, FeaturedOnly: true}))
		r.Get("/{id}", handleGetByID(store))
	})
}

func handleList(store *Store, filter ListFilter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context(), filter)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if list == nil {
			list = []Project{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleGetByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		// Unfinished projects are not published.
		if p == nil || !p.Completed {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
