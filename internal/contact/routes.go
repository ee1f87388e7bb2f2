package contact

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the contact API. The admin endpoints are mounted
// only when both store and admin are non-nil; admin guards them.
func RegisterRoutes(r chi.Router, submitter Submitter, store *Store, admin func(http.Handler) http.Handler) {
	r.Route("/api/contact", func(r chi.Router) {
		r.Post("/", handleSubmit(submitter))

		if store == nil || admin == nil {
			return
		}
		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Get("/stats", handleStats(store))
			r.Get("/messages", handleList(store))
			r.Get("/messages/{id}", handleGetByID(store))
			r.Post("/messages/{id}/read", handleMarkRead(store))
			r.Delete("/messages/{id}", handleDelete(store))
		})
	})
}

// submitResponse is the JSON body of a successful submission.
type submitResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// fieldErrorResponse is the JSON body of a rejected submission.
type fieldErrorResponse struct {
	Error  string      `json:"error"`
	Fields FieldErrors `json:"fields"`
}

func handleSubmit(submitter Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f Form
		err := json.NewDecoder(r.Body).Decode(&f)
		if errors.Is(err, io.EOF) || (err == nil && f.IsEmpty()) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No data provided"})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		m, err := submitter.Submit(r.Context(), f)
		var fe FieldErrors
		if errors.As(err, &fe) {
			writeJSON(w, http.StatusBadRequest, fieldErrorResponse{Error: fe.Error(), Fields: fe})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to send message"})
			return
		}

		writeJSON(w, http.StatusOK, submitResponse{Message: "Message sent successfully", ID: m.ID})
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{}
		if v := r.URL.Query().Get("unread"); v != "" {
			filter.UnreadOnly, _ = strconv.ParseBool(v)
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filter.Limit = n
			}
		}
		if v := r.URL.Query().Get("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filter.Offset = n
			}
		}

		messages, err := store.List(r.Context(), filter)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if messages == nil {
			messages = []Message{}
		}
		writeJSON(w, http.StatusOK, messages)
	}
}

func handleGetByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if m == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func handleMarkRead(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeJSON(w, storeErrorStatus(err), map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
	}
}

func handleDelete(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeJSON(w, storeErrorStatus(err), map[string]string{"error": err.Error()})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func storeErrorStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func handleStats(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := store.CountUnread(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"unread_count": n})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
