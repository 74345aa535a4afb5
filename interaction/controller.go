// Package interaction owns the mutable state of one open post: its
// comments, likes and the comment-edit cursor. Every mutation goes to
// the server first; local state is reconciled from the server response,
// never from the client's own guess.
package interaction

import (
	"context"
	"log"
	"strings"
	"time"

	"traveldest/client/backend"
	"traveldest/client/gallery"
	"traveldest/client/models"
	"traveldest/client/notify"
)

// API is the slice of the backend client the controller depends on.
type API interface {
	Post(ctx context.Context, id string) (models.Post, error)
	PostImages(ctx context.Context, id string) ([]models.GalleryImage, error)
	AddComment(ctx context.Context, postID, content string, username *string) (models.CommentResponse, error)
	DeleteComment(ctx context.Context, postID, commentID string, username *string) (models.MessageResponse, error)
	UpdateComment(ctx context.Context, postID, commentID, content string, username *string) (models.MessageResponse, error)
	ToggleLike(ctx context.Context, postID string, username *string) (models.LikeResponse, error)
}

// Sessions provides the identity attached to mutating calls.
type Sessions interface {
	CurrentUsername() *string
}

// Controller mediates all interactions with a single post. Each Load
// bumps a generation counter; responses carrying a stale generation are
// discarded, so a late reply for a post the user navigated away from
// can never leak into the newly displayed one. There is no request
// cancellation beyond that, and no ordering guarantee between two
// independently issued mutations.
type Controller struct {
	api     API
	session Sessions
	bus     *notify.Bus

	gen     uint64
	post    *models.Post
	window  *gallery.Window
	editing string // comment id being edited, "" when idle
	temp    string // content captured at startEdit for cancel-revert
}

func NewController(api API, session Sessions, bus *notify.Bus) *Controller {
	return &Controller{api: api, session: session, bus: bus}
}

// Load replaces the controller's post wholesale. A Load issued while an
// older one is still in flight wins regardless of response order.
func (c *Controller) Load(ctx context.Context, postID string) error {
	c.gen++
	gen := c.gen

	post, err := c.api.Post(ctx, postID)
	if err != nil {
		c.report(err)
		return err
	}
	images, err := c.api.PostImages(ctx, postID)
	if err != nil {
		c.report(err)
		return err
	}

	if gen != c.gen {
		log.Printf("interaction: dropping stale load of post %s", postID)
		return nil
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	c.post = &post
	c.window = gallery.New(images)
	c.editing = ""
	c.temp = ""
	return nil
}

// Post returns the currently loaded post, nil before the first Load.
func (c *Controller) Post() *models.Post {
	return c.post
}

// Window returns the image gallery of the loaded post.
func (c *Controller) Window() *gallery.Window {
	return c.window
}

// AddComment creates a comment on the loaded post. Empty content never
// reaches the network. On success the server-built comment, with its
// authoritative id and timestamps, is appended to the tail of the
// sequence.
func (c *Controller) AddComment(ctx context.Context, content string) {
	if c.post == nil {
		return
	}
	if strings.TrimSpace(content) == "" {
		c.bus.Show("Comment cannot be empty", false)
		return
	}
	gen := c.gen
	resp, err := c.api.AddComment(ctx, c.post.ID, content, c.session.CurrentUsername())
	if err != nil {
		c.report(err)
		return
	}
	if gen != c.gen {
		log.Printf("interaction: dropping stale addComment response")
		return
	}
	c.post.Comments = append(c.post.Comments, resp.Comment)
	c.bus.Show(resp.Message, true)
}

// DeleteComment removes a comment. On success the first comment with a
// matching id leaves the sequence and any edit cursor pointing at it is
// cleared; deleting an id that is already gone is harmless.
func (c *Controller) DeleteComment(ctx context.Context, commentID string) {
	if c.post == nil {
		return
	}
	gen := c.gen
	resp, err := c.api.DeleteComment(ctx, c.post.ID, commentID, c.session.CurrentUsername())
	if err != nil {
		c.report(err)
		return
	}
	if gen != c.gen {
		log.Printf("interaction: dropping stale deleteComment response")
		return
	}
	for i, comment := range c.post.Comments {
		if comment.ID == commentID {
			c.post.Comments = append(c.post.Comments[:i], c.post.Comments[i+1:]...)
			break
		}
	}
	if c.editing == commentID {
		c.editing = ""
		c.temp = ""
	}
	c.bus.Show(resp.Message, true)
}

// StartEdit opens the edit cursor on a comment, capturing its current
// content so a cancel can revert the input.
func (c *Controller) StartEdit(commentID, content string) {
	c.editing = commentID
	c.temp = content
}

// CancelEdit closes the edit cursor without a server call.
func (c *Controller) CancelEdit() {
	c.editing = ""
}

// Editing returns the id of the comment being edited, "" when idle.
func (c *Controller) Editing() string {
	return c.editing
}

// TempContent returns the content captured at StartEdit.
func (c *Controller) TempContent() string {
	return c.temp
}

// ConfirmEdit sends the new content for the comment under the edit
// cursor. On success the matching comment is updated in place with a
// fresh updated timestamp. The cursor returns to idle on failure too;
// the user restarts the edit to retry.
func (c *Controller) ConfirmEdit(ctx context.Context, newContent string) {
	if c.post == nil || c.editing == "" {
		return
	}
	commentID := c.editing
	gen := c.gen
	resp, err := c.api.UpdateComment(ctx, c.post.ID, commentID, newContent, c.session.CurrentUsername())
	c.editing = ""
	c.temp = ""
	if err != nil {
		c.report(err)
		return
	}
	if gen != c.gen {
		log.Printf("interaction: dropping stale updateComment response")
		return
	}
	for i := range c.post.Comments {
		if c.post.Comments[i].ID == commentID {
			c.post.Comments[i].Content = newContent
			c.post.Comments[i].UpdatedAt = time.Now().UTC()
			break
		}
	}
	c.bus.Show(resp.Message, true)
}

// ToggleLike flips the caller's like on the loaded post. The like set
// is replaced wholesale with the server-returned one, which makes a
// duplicated toggle an idempotent retry rather than a double count.
func (c *Controller) ToggleLike(ctx context.Context) {
	if c.post == nil {
		return
	}
	gen := c.gen
	resp, err := c.api.ToggleLike(ctx, c.post.ID, c.session.CurrentUsername())
	if err != nil {
		c.report(err)
		return
	}
	if gen != c.gen {
		log.Printf("interaction: dropping stale toggleLike response")
		return
	}
	c.post.Likes = resp.Likes
	c.bus.Show(resp.Message, true)
}

func (c *Controller) report(err error) {
	c.bus.Show(backend.UserMessage(err), false)
}
