package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"traveldest/client/models"
)

type handlers struct {
	store *store
}

// currentUser resolves the session cookie; ok is false when there is no
// valid session.
func (h *handlers) currentUser(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	return h.store.sessionUser(cookie.Value)
}

func (h *handlers) session(w http.ResponseWriter, r *http.Request) {
	if name, ok := h.currentUser(r); ok {
		writeJSON(w, http.StatusOK, models.Session{IsLoggedIn: true, Username: &name})
		return
	}
	writeJSON(w, http.StatusOK, models.Session{IsLoggedIn: false, Username: nil})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	sid, err := h.store.login(creds)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, models.LoginResponse{
		IsLoggedIn: true,
		Username:   &creds.Username,
		Message:    "Login successful",
	})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		h.store.logout(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if reg.Username == "" || reg.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if err := h.store.register(reg); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, models.MessageResponse{Message: "Registration successful"})
}

func (h *handlers) countries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, seedCountries())
}

func (h *handlers) posts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.allPosts())
}

func (h *handlers) post(w http.ResponseWriter, r *http.Request) {
	post, ok := h.store.post(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *handlers) addPost(w http.ResponseWriter, r *http.Request) {
	author, ok := h.currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "You must be logged in to add a post")
		return
	}
	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	post.Author = author
	h.store.addPost(post)
	writeJSON(w, http.StatusCreated, models.MessageResponse{Message: "Post added successfully"})
}

func (h *handlers) deletePost(w http.ResponseWriter, r *http.Request) {
	author, ok := h.currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "You must be logged in to delete a post")
		return
	}
	id := chi.URLParam(r, "id")
	post, found := h.store.post(id)
	if !found {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if post.Author != author {
		writeError(w, http.StatusForbidden, "You can only delete your own posts")
		return
	}
	h.store.deletePost(id)
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Post deleted successfully"})
}

func (h *handlers) addComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content  string  `json:"content"`
		Username *string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Comment content is required")
		return
	}
	// Anonymous comments are allowed by policy.
	author := "anonymous"
	if req.Username != nil && *req.Username != "" {
		author = *req.Username
	}
	comment, ok := h.store.addComment(chi.URLParam(r, "id"), req.Content, author)
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusCreated, models.CommentResponse{
		Comment: comment,
		Message: "Comment added successfully",
	})
}

func (h *handlers) deleteComment(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(r); !ok {
		writeError(w, http.StatusUnauthorized, "You must be logged in to delete a comment")
		return
	}
	if !h.store.deleteComment(chi.URLParam(r, "id"), chi.URLParam(r, "commentId")) {
		writeError(w, http.StatusNotFound, "Comment not found")
		return
	}
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Comment deleted successfully"})
}

func (h *handlers) updateComment(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(r); !ok {
		writeError(w, http.StatusUnauthorized, "You must be logged in to edit a comment")
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, "Comment content is required")
		return
	}
	if !h.store.updateComment(chi.URLParam(r, "id"), chi.URLParam(r, "commentId"), req.Content) {
		writeError(w, http.StatusNotFound, "Comment not found")
		return
	}
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Comment updated successfully"})
}

func (h *handlers) toggleLike(w http.ResponseWriter, r *http.Request) {
	username, ok := h.currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "You must be logged in to like a post")
		return
	}
	likes, found := h.store.toggleLike(chi.URLParam(r, "id"), username)
	if !found {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, models.LikeResponse{
		Likes:   likes,
		Message: "Like updated",
	})
}
