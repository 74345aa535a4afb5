// Package backend is the HTTP client for the travel-destinations API.
// All calls go through one request path that attaches the session
// cookie, tags the request with a correlation id and normalizes error
// payloads into APIError values.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"

	"traveldest/client/cache"
	"traveldest/client/models"
)

const countriesCacheKey = "countries"

type Client struct {
	baseURL string
	http    *http.Client
	cache   cache.Cache // nil when caching is disabled
}

// NewClient builds a client for the API at config.BaseURL. The cookie
// jar carries the session cookie across calls; c may be nil.
func NewClient(config models.BackendConfig, c cache.Cache) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: config.BaseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		cache: c,
	}, nil
}

// do runs one request against the API. body and out may be nil. Non-2xx
// responses are decoded as models.ErrorResponse and returned as
// *APIError; anything that keeps the request from completing is
// returned as-is.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	log.Printf("backend: %s %s request_id=%s", method, path, reqID)
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("backend: %s %s failed: %v", method, path, err)
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload models.ErrorResponse
		if err := json.Unmarshal(data, &payload); err != nil {
			log.Printf("backend: %s %s: undecodable error payload (status %d)", method, path, resp.StatusCode)
		}
		return newAPIError(resp.StatusCode, payload.Message, payload.Error)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// Session fetches the current session snapshot.
func (c *Client) Session(ctx context.Context) (models.Session, error) {
	var s models.Session
	err := c.do(ctx, http.MethodGet, "/session", nil, &s)
	return s, err
}

// Login sends credentials and returns the server-declared login state.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/login", creds, &resp)
	return resp, err
}

// Logout ends the current session.
func (c *Client) Logout(ctx context.Context) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.do(ctx, http.MethodGet, "/logout", nil, &resp)
	return resp, err
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, reg models.Registration) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.do(ctx, http.MethodPost, "/register", reg, &resp)
	return resp, err
}

// Countries returns the country reference list, read through the cache
// when one is configured. Cache failures are logged and the list is
// fetched from the network instead.
func (c *Client) Countries(ctx context.Context) ([]models.Country, error) {
	if c.cache != nil {
		if data, err := c.cache.Get(ctx, countriesCacheKey); err == nil {
			var countries []models.Country
			if err := json.Unmarshal(data, &countries); err == nil {
				return countries, nil
			}
			log.Printf("backend: corrupt countries cache entry, refetching")
		}
	}

	var countries []models.Country
	if err := c.do(ctx, http.MethodGet, "/countries", nil, &countries); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if data, err := json.Marshal(countries); err == nil {
			if err := c.cache.Set(ctx, countriesCacheKey, data); err != nil {
				log.Printf("backend: failed to cache countries: %v", err)
			}
		}
	}
	return countries, nil
}

// Posts returns the full post list.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := c.do(ctx, http.MethodGet, "/post", nil, &posts)
	return posts, err
}

// Destinations projects the post list into table rows.
func (c *Client) Destinations(ctx context.Context) ([]models.Destination, error) {
	posts, err := c.Posts(ctx)
	if err != nil {
		return nil, err
	}
	destinations := make([]models.Destination, 0, len(posts))
	for _, p := range posts {
		destinations = append(destinations, models.Destination{
			ID:      p.ID,
			Flag:    p.Country.Flag,
			Country: p.Country.Name,
			Title:   p.Title,
			Author:  p.Author,
		})
	}
	return destinations, nil
}

// SliderImages projects the post list into front-page gallery images,
// each linking back to its post.
func (c *Client) SliderImages(ctx context.Context) ([]models.GalleryImage, error) {
	posts, err := c.Posts(ctx)
	if err != nil {
		return nil, err
	}
	images := make([]models.GalleryImage, 0, len(posts))
	for _, p := range posts {
		images = append(images, models.GalleryImage{
			URL:     p.MainImage,
			Country: p.Country.Name,
			City:    p.City,
			Link:    "posts/" + p.ID,
		})
	}
	return images, nil
}

// Post fetches one post by id.
func (c *Client) Post(ctx context.Context, id string) (models.Post, error) {
	var post models.Post
	err := c.do(ctx, http.MethodGet, "/posts/"+id, nil, &post)
	return post, err
}

// PostImages returns the gallery for one post: the main image first,
// then the additional images, all tagged with the post's country and
// city and none of them navigable.
func (c *Client) PostImages(ctx context.Context, id string) ([]models.GalleryImage, error) {
	post, err := c.Post(ctx, id)
	if err != nil {
		return nil, err
	}
	var images []models.GalleryImage
	if post.MainImage != "" {
		images = append(images, models.GalleryImage{
			URL:     post.MainImage,
			Country: post.Country.Name,
			City:    post.City,
		})
	}
	for _, url := range post.AdditionalImages {
		images = append(images, models.GalleryImage{
			URL:     url,
			Country: post.Country.Name,
			City:    post.City,
		})
	}
	return images, nil
}

// AddPost creates a new post.
func (c *Client) AddPost(ctx context.Context, post models.Post) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.do(ctx, http.MethodPost, "/add-post", post, &resp)
	return resp, err
}

// DeletePost removes a post by id.
func (c *Client) DeletePost(ctx context.Context, id string) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.do(ctx, http.MethodDelete, "/posts/"+id, nil, &resp)
	return resp, err
}

type commentRequest struct {
	Content  string  `json:"content"`
	Username *string `json:"username"`
}

type usernameRequest struct {
	Username *string `json:"username"`
}

// AddComment creates a comment on a post. username may be nil; the
// server decides whether anonymous comments are allowed.
func (c *Client) AddComment(ctx context.Context, postID, content string, username *string) (models.CommentResponse, error) {
	var resp models.CommentResponse
	err := c.do(ctx, http.MethodPost, "/posts/"+postID+"/comments",
		commentRequest{Content: content, Username: username}, &resp)
	return resp, err
}

// DeleteComment removes a comment from a post.
func (c *Client) DeleteComment(ctx context.Context, postID, commentID string, username *string) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.do(ctx, http.MethodDelete, "/posts/"+postID+"/comments/delete/"+commentID,
		usernameRequest{Username: username}, &resp)
	return resp, err
}

// UpdateComment replaces the content of a comment.
func (c *Client) UpdateComment(ctx context.Context, postID, commentID, content string, username *string) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.do(ctx, http.MethodPut, "/posts/"+postID+"/comments/update/"+commentID,
		commentRequest{Content: content, Username: username}, &resp)
	return resp, err
}

// ToggleLike flips the caller's like on a post. The server is
// authoritative on whether the toggle added or removed the like.
func (c *Client) ToggleLike(ctx context.Context, postID string, username *string) (models.LikeResponse, error) {
	var resp models.LikeResponse
	err := c.do(ctx, http.MethodPost, "/posts/"+postID+"/like",
		usernameRequest{Username: username}, &resp)
	return resp, err
}
