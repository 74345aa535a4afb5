package interaction

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"traveldest/client/backend"
	"traveldest/client/models"
	"traveldest/client/notify"
)

type mockSession struct {
	username *string
}

func (m *mockSession) CurrentUsername() *string { return m.username }

func strptr(s string) *string { return &s }

// mockPostAPI scripts the post endpoints and counts calls.
type mockPostAPI struct {
	posts map[string]models.Post

	addCommentCalls int
	addCommentErr   error
	deleteErr       error
	updateErr       error
	likeErr         error
	likeResponses   [][]string // consumed front to back
	nextCommentID   int

	postImagesHook func(id string)
}

func newMockPostAPI() *mockPostAPI {
	return &mockPostAPI{
		posts: map[string]models.Post{
			"p1": {
				ID:        "p1",
				Title:     "A week in Kyoto",
				Author:    "maria",
				MainImage: "https://img.example.com/main.jpg",
				AdditionalImages: []string{
					"https://img.example.com/1.jpg",
				},
				Country: models.Country{Name: "Japan"},
				City:    "Kyoto",
				Likes:   []string{},
				Comments: []models.Comment{
					{ID: "c1", Author: "erik", Content: "Great trip!"},
					{ID: "c2", Author: "ana", Content: "Adding this to my list."},
				},
			},
			"p2": {
				ID:      "p2",
				Title:   "Lisbon on a budget",
				Author:  "erik",
				Country: models.Country{Name: "Portugal"},
				City:    "Lisbon",
			},
		},
	}
}

func (m *mockPostAPI) Post(ctx context.Context, id string) (models.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return models.Post{}, &backend.APIError{Status: 404, Message: "Post not found"}
	}
	return post, nil
}

func (m *mockPostAPI) PostImages(ctx context.Context, id string) ([]models.GalleryImage, error) {
	if m.postImagesHook != nil {
		m.postImagesHook(id)
	}
	post := m.posts[id]
	images := []models.GalleryImage{{URL: post.MainImage, Country: post.Country.Name, City: post.City}}
	for _, url := range post.AdditionalImages {
		images = append(images, models.GalleryImage{URL: url, Country: post.Country.Name, City: post.City})
	}
	return images, nil
}

func (m *mockPostAPI) AddComment(ctx context.Context, postID, content string, username *string) (models.CommentResponse, error) {
	m.addCommentCalls++
	if m.addCommentErr != nil {
		return models.CommentResponse{}, m.addCommentErr
	}
	m.nextCommentID++
	author := "anonymous"
	if username != nil {
		author = *username
	}
	return models.CommentResponse{
		Comment: models.Comment{
			ID:      fmt.Sprintf("server-%d", m.nextCommentID),
			Author:  author,
			Content: content,
		},
		Message: "Comment added successfully",
	}, nil
}

func (m *mockPostAPI) DeleteComment(ctx context.Context, postID, commentID string, username *string) (models.MessageResponse, error) {
	if m.deleteErr != nil {
		return models.MessageResponse{}, m.deleteErr
	}
	return models.MessageResponse{Message: "Comment deleted successfully"}, nil
}

func (m *mockPostAPI) UpdateComment(ctx context.Context, postID, commentID, content string, username *string) (models.MessageResponse, error) {
	if m.updateErr != nil {
		return models.MessageResponse{}, m.updateErr
	}
	return models.MessageResponse{Message: "Comment updated successfully"}, nil
}

func (m *mockPostAPI) ToggleLike(ctx context.Context, postID string, username *string) (models.LikeResponse, error) {
	if m.likeErr != nil {
		return models.LikeResponse{}, m.likeErr
	}
	likes := m.likeResponses[0]
	m.likeResponses = m.likeResponses[1:]
	return models.LikeResponse{Likes: likes, Message: "Like updated"}, nil
}

func newTestController(api *mockPostAPI) (*Controller, *notify.Bus) {
	bus := notify.NewBus()
	return NewController(api, &mockSession{username: strptr("maria")}, bus), bus
}

func TestLoadSetsPostAndGallery(t *testing.T) {
	api := newMockPostAPI()
	c, _ := newTestController(api)
	if err := c.Load(context.Background(), "p1"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.Post() == nil || c.Post().ID != "p1" {
		t.Fatalf("expected post p1 to be loaded")
	}
	visible := c.Window().Visible()
	if len(visible) != 2 || visible[0].URL != "https://img.example.com/main.jpg" {
		t.Fatalf("gallery must start with the main image, got %v", visible)
	}
}

func TestAddCommentAppendsServerComment(t *testing.T) {
	api := newMockPostAPI()
	c, bus := newTestController(api)
	c.Load(context.Background(), "p1")
	before := len(c.Post().Comments)

	c.AddComment(context.Background(), "hello")

	comments := c.Post().Comments
	if len(comments) != before+1 {
		t.Fatalf("expected exactly one appended comment, got %d -> %d", before, len(comments))
	}
	tail := comments[len(comments)-1]
	if tail.ID != "server-1" {
		t.Fatalf("comment id must come from the server, got %q", tail.ID)
	}
	if tail.Content != "hello" || tail.Author != "maria" {
		t.Fatalf("unexpected comment %+v", tail)
	}
	if msg := bus.Current(); msg == nil || !msg.Success {
		t.Fatalf("expected a success message, got %v", msg)
	}
}

func TestAddCommentEmptyNeverReachesNetwork(t *testing.T) {
	api := newMockPostAPI()
	c, bus := newTestController(api)
	c.Load(context.Background(), "p1")

	c.AddComment(context.Background(), "   ")

	if api.addCommentCalls != 0 {
		t.Fatalf("empty comment must be rejected before the network call")
	}
	if msg := bus.Current(); msg == nil || msg.Success {
		t.Fatalf("expected a validation error message, got %v", msg)
	}
}

func TestAddCommentFailureLeavesStateUntouched(t *testing.T) {
	api := newMockPostAPI()
	c, bus := newTestController(api)
	c.Load(context.Background(), "p1")
	before := len(c.Post().Comments)

	api.addCommentErr = &backend.APIError{Status: 401, Message: "You must be logged in to do that"}
	c.AddComment(context.Background(), "hello")

	if len(c.Post().Comments) != before {
		t.Fatalf("failed add must not mutate local state")
	}
	msg := bus.Current()
	if msg == nil || msg.Success || msg.Text != "You must be logged in to do that" {
		t.Fatalf("expected the normalized unauthorized message, got %v", msg)
	}
}

func TestDeleteCommentRemovesAndIsIdempotent(t *testing.T) {
	api := newMockPostAPI()
	c, _ := newTestController(api)
	c.Load(context.Background(), "p1")

	c.DeleteComment(context.Background(), "c1")
	comments := c.Post().Comments
	if len(comments) != 1 || comments[0].ID != "c2" {
		t.Fatalf("expected c1 removed, got %v", comments)
	}

	// A slow duplicate of the same delete must be harmless.
	c.DeleteComment(context.Background(), "c1")
	if len(c.Post().Comments) != 1 {
		t.Fatalf("duplicate delete must not shrink the sequence further")
	}
}

func TestDeleteCommentClearsEditCursor(t *testing.T) {
	api := newMockPostAPI()
	c, _ := newTestController(api)
	c.Load(context.Background(), "p1")

	c.StartEdit("c1", "Great trip!")
	c.DeleteComment(context.Background(), "c1")
	if c.Editing() != "" {
		t.Fatalf("deleting the edited comment must clear the edit cursor")
	}
}

func TestEditStateMachine(t *testing.T) {
	api := newMockPostAPI()
	c, _ := newTestController(api)
	c.Load(context.Background(), "p1")

	c.StartEdit("c2", "Adding this to my list.")
	if c.Editing() != "c2" || c.TempContent() != "Adding this to my list." {
		t.Fatalf("startEdit must capture id and content")
	}

	c.CancelEdit()
	if c.Editing() != "" {
		t.Fatalf("cancelEdit must return to idle")
	}
	if c.Post().Comments[1].Content != "Adding this to my list." {
		t.Fatalf("cancelEdit must not touch the comment")
	}

	c.StartEdit("c2", "Adding this to my list.")
	c.ConfirmEdit(context.Background(), "Changed my mind.")
	if c.Editing() != "" {
		t.Fatalf("confirmEdit must return to idle")
	}
	updated := c.Post().Comments[1]
	if updated.Content != "Changed my mind." {
		t.Fatalf("expected in-place content update, got %q", updated.Content)
	}
	if updated.UpdatedAt.IsZero() {
		t.Fatalf("expected a fresh updated timestamp")
	}
}

func TestConfirmEditFailureReturnsToIdle(t *testing.T) {
	api := newMockPostAPI()
	c, bus := newTestController(api)
	c.Load(context.Background(), "p1")

	api.updateErr = errors.New("connection reset")
	c.StartEdit("c1", "Great trip!")
	c.ConfirmEdit(context.Background(), "edited")

	if c.Editing() != "" {
		t.Fatalf("failed confirm must still return to idle")
	}
	if c.Post().Comments[0].Content != "Great trip!" {
		t.Fatalf("failed confirm must not mutate the comment")
	}
	if msg := bus.Current(); msg == nil || msg.Success {
		t.Fatalf("expected an error message, got %v", msg)
	}
}

func TestToggleLikeFollowsServer(t *testing.T) {
	api := newMockPostAPI()
	c, _ := newTestController(api)
	c.Load(context.Background(), "p1")

	api.likeResponses = [][]string{
		{"maria"},
		{},
	}
	c.ToggleLike(context.Background())
	if likes := c.Post().Likes; len(likes) != 1 || likes[0] != "maria" {
		t.Fatalf("like set must match the server response, got %v", likes)
	}
	c.ToggleLike(context.Background())
	if likes := c.Post().Likes; len(likes) != 0 {
		t.Fatalf("like set must follow the server, never the client's guess, got %v", likes)
	}
}

func TestToggleLikeFailureKeepsLocalSet(t *testing.T) {
	api := newMockPostAPI()
	c, bus := newTestController(api)
	c.Load(context.Background(), "p1")

	api.likeErr = &backend.APIError{Status: 401, Message: "You must be logged in to like a post"}
	c.ToggleLike(context.Background())
	if len(c.Post().Likes) != 0 {
		t.Fatalf("failed toggle must not change the like set")
	}
	if msg := bus.Current(); msg == nil || msg.Success {
		t.Fatalf("expected an error message, got %v", msg)
	}
}

// A load that completes after a newer load for the same slot was issued
// must be discarded: the newer navigation wins regardless of response
// order.
func TestStaleLoadDiscarded(t *testing.T) {
	api := newMockPostAPI()
	c, _ := newTestController(api)
	ctx := context.Background()

	fired := false
	api.postImagesHook = func(id string) {
		if id == "p1" && !fired {
			fired = true
			// Navigation to p2 happens while p1's load is in flight.
			if err := c.Load(ctx, "p2"); err != nil {
				t.Fatalf("nested load failed: %v", err)
			}
		}
	}

	if err := c.Load(ctx, "p1"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.Post() == nil || c.Post().ID != "p2" {
		t.Fatalf("stale p1 response must not overwrite the newer p2 load, got %v", c.Post())
	}
}

func TestOperationsWithoutLoadedPostAreNoOps(t *testing.T) {
	api := newMockPostAPI()
	c, _ := newTestController(api)
	c.AddComment(context.Background(), "hello")
	c.DeleteComment(context.Background(), "c1")
	c.ToggleLike(context.Background())
	if api.addCommentCalls != 0 {
		t.Fatalf("no network calls expected before a post is loaded")
	}
}
