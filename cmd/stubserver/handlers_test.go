package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"traveldest/client/backend"
	"traveldest/client/models"
	"traveldest/client/session"
)

// End-to-end run of the real client library against the stub server.
func newTestSetup(t *testing.T) *backend.Client {
	t.Helper()
	server := httptest.NewServer(newRouter(&handlers{store: newStore()}))
	t.Cleanup(server.Close)
	client, err := backend.NewClient(models.BackendConfig{BaseURL: server.URL + "/api/v1"}, nil)
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return client
}

func TestRegisterLoginSessionFlow(t *testing.T) {
	client := newTestSetup(t)
	ctx := context.Background()

	reg := models.Registration{
		FirstName: "Maria", LastName: "Silva",
		Username: "maria", Password: "wanderlust", Country: "Portugal",
	}
	if _, err := client.Register(ctx, reg); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := client.Register(ctx, reg); err == nil {
		t.Fatalf("duplicate registration must fail")
	}

	store := session.NewStore(client)
	store.Refresh(ctx)
	if store.IsLoggedIn() {
		t.Fatalf("fresh client must start logged out")
	}

	if _, err := store.Login(ctx, models.Credentials{Username: "maria", Password: "wrong"}); err == nil {
		t.Fatalf("wrong password must fail")
	}
	if _, err := store.Login(ctx, models.Credentials{Username: "maria", Password: "wanderlust"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// The session cookie survives into a fresh snapshot fetch.
	store.Refresh(ctx)
	if name := store.CurrentUsername(); name == nil || *name != "maria" {
		t.Fatalf("expected a live session for maria, got %v", name)
	}

	if _, err := store.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	store.Refresh(ctx)
	if store.IsLoggedIn() {
		t.Fatalf("session must be gone after logout")
	}
}

func TestCommentAndLikeFlow(t *testing.T) {
	client := newTestSetup(t)
	ctx := context.Background()

	client.Register(ctx, models.Registration{
		FirstName: "Erik", LastName: "Berg",
		Username: "erik", Password: "fjällräven", Country: "Sweden",
	})
	store := session.NewStore(client)
	if _, err := store.Login(ctx, models.Credentials{Username: "erik", Password: "fjällräven"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	posts, err := client.Posts(ctx)
	if err != nil || len(posts) == 0 {
		t.Fatalf("expected seeded posts, got %v (%v)", posts, err)
	}
	postID := posts[0].ID

	resp, err := client.AddComment(ctx, postID, "Lovely write-up", store.CurrentUsername())
	if err != nil {
		t.Fatalf("add comment failed: %v", err)
	}
	if resp.Comment.ID == "" || resp.Comment.Author != "erik" {
		t.Fatalf("server must assign id and author, got %+v", resp.Comment)
	}

	if _, err := client.UpdateComment(ctx, postID, resp.Comment.ID, "Lovely write-up!", store.CurrentUsername()); err != nil {
		t.Fatalf("update comment failed: %v", err)
	}

	likes, err := client.ToggleLike(ctx, postID, store.CurrentUsername())
	if err != nil {
		t.Fatalf("toggle like failed: %v", err)
	}
	found := false
	for _, name := range likes.Likes {
		if name == "erik" {
			found = true
		}
	}
	if !found {
		t.Fatalf("first toggle must add the caller, got %v", likes.Likes)
	}
	likes, err = client.ToggleLike(ctx, postID, store.CurrentUsername())
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	for _, name := range likes.Likes {
		if name == "erik" {
			t.Fatalf("second toggle must remove the caller, got %v", likes.Likes)
		}
	}

	if _, err := client.DeleteComment(ctx, postID, resp.Comment.ID, store.CurrentUsername()); err != nil {
		t.Fatalf("delete comment failed: %v", err)
	}
}

func TestUnauthorizedErrorsCarryDualFields(t *testing.T) {
	client := newTestSetup(t)
	ctx := context.Background()

	posts, err := client.Posts(ctx)
	if err != nil || len(posts) == 0 {
		t.Fatalf("expected seeded posts, got %v (%v)", posts, err)
	}

	_, err = client.ToggleLike(ctx, posts[0].ID, nil)
	apiErr, ok := err.(*backend.APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != 401 {
		t.Fatalf("expected 401, got %d", apiErr.Status)
	}
	// The 401 payload's "error" field, not the generic "message", is
	// what surfaces to the user.
	if apiErr.Message != "You must be logged in to like a post" {
		t.Fatalf("expected the unauthorized field text, got %q", apiErr.Message)
	}
}

func TestAnonymousCommentAllowed(t *testing.T) {
	client := newTestSetup(t)
	ctx := context.Background()

	posts, _ := client.Posts(ctx)
	resp, err := client.AddComment(ctx, posts[0].ID, "Drive-by praise", nil)
	if err != nil {
		t.Fatalf("anonymous comment should be allowed: %v", err)
	}
	if resp.Comment.Author != "anonymous" {
		t.Fatalf("expected anonymous author, got %q", resp.Comment.Author)
	}
}
