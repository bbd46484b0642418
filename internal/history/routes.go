package history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/flowgen/internal/flowchart"
	"github.com/ziadkadry99/flowgen/internal/server"
)

// RegisterRoutes mounts the generation history routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/flowchart/history", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Get("/{id}", handleGet(store))
	})
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{}
		if v := r.URL.Query().Get("grammar"); v != "" {
			g, err := flowchart.ParseGrammar(v)
			if err != nil {
				server.WriteJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
				return
			}
			filter.Grammar = g
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

		records, err := store.List(r.Context(), filter)
		if err != nil {
			server.WriteJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
			return
		}
		if records == nil {
			records = []Record{}
		}
		server.WriteJSON(w, http.StatusOK, records)
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			server.WriteJSON(w, http.StatusNotFound, map[string]string{"detail": err.Error()})
			return
		}
		if err != nil {
			server.WriteJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
			return
		}
		server.WriteJSON(w, http.StatusOK, rec)
	}
}
