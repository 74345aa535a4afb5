// stubserver is an in-memory implementation of the travel-destinations
// API, used to run the client locally without the real backend. It
// mirrors the real wire format, including the dual-field 401 error
// payload the client's message extraction depends on.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const sessionCookie = "session_id"

func main() {
	addr := os.Getenv("STUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	h := &handlers{store: newStore()}
	r := newRouter(h)

	log.Println("stub server listening on", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func newRouter(h *handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/session", h.session)
		r.Post("/login", h.login)
		r.Get("/logout", h.logout)
		r.Post("/register", h.register)
		r.Get("/countries", h.countries)
		r.Get("/post", h.posts)
		r.Post("/add-post", h.addPost)
		r.Get("/posts/{id}", h.post)
		r.Delete("/posts/{id}", h.deletePost)
		r.Post("/posts/{id}/comments", h.addComment)
		r.Delete("/posts/{id}/comments/delete/{commentId}", h.deleteComment)
		r.Put("/posts/{id}/comments/update/{commentId}", h.updateComment)
		r.Post("/posts/{id}/like", h.toggleLike)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Error encoding response: ", err.Error())
	}
}

// writeError emits the backend's error shape: always a "message", and
// for 401 additionally the user-facing "error" field.
func writeError(w http.ResponseWriter, status int, message string) {
	body := map[string]string{"message": message}
	if status == http.StatusUnauthorized {
		body["message"] = "Unauthorized"
		body["error"] = message
	}
	writeJSON(w, status, body)
}
