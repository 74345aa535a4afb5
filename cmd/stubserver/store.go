package main

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"traveldest/client/models"
)

type user struct {
	FirstName    string
	LastName     string
	Username     string
	PasswordHash []byte
	Country      string
}

// store is the in-memory state of the stub server. Good enough for
// local development and end-to-end exercising of the client; nothing
// survives a restart.
type store struct {
	mu       sync.Mutex
	users    map[string]user
	sessions map[string]string // session id -> username
	posts    []models.Post
}

func newStore() *store {
	return &store{
		users:    make(map[string]user),
		sessions: make(map[string]string),
		posts:    seedPosts(),
	}
}

func (s *store) register(reg models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[reg.Username]; exists {
		return errors.New("Username is already taken")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.users[reg.Username] = user{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Username:     reg.Username,
		PasswordHash: hash,
		Country:      reg.Country,
	}
	return nil
}

// login verifies credentials and opens a session. Returns the session
// id on success.
func (s *store) login(creds models.Credentials) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, exists := s.users[creds.Username]
	if !exists {
		return "", errors.New("Invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(creds.Password)); err != nil {
		return "", errors.New("Invalid username or password")
	}
	sid := uuid.NewString()
	s.sessions[sid] = creds.Username
	return sid, nil
}

func (s *store) logout(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
}

// sessionUser resolves a session id to a username.
func (s *store) sessionUser(sid string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.sessions[sid]
	return name, ok
}

func (s *store) allPosts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := make([]models.Post, len(s.posts))
	copy(posts, s.posts)
	return posts
}

func (s *store) post(id string) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

func (s *store) addPost(post models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	s.posts = append(s.posts, post)
}

func (s *store) deletePost(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return true
		}
	}
	return false
}

func (s *store) addComment(postID, content, author string) (models.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == postID {
			comment := models.Comment{
				ID:        uuid.NewString(),
				Author:    author,
				Content:   content,
				CreatedAt: time.Now().UTC(),
			}
			s.posts[i].Comments = append(s.posts[i].Comments, comment)
			return comment, true
		}
	}
	return models.Comment{}, false
}

func (s *store) deleteComment(postID, commentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		for j, c := range s.posts[i].Comments {
			if c.ID == commentID {
				s.posts[i].Comments = append(s.posts[i].Comments[:j], s.posts[i].Comments[j+1:]...)
				return true
			}
		}
	}
	return false
}

func (s *store) updateComment(postID, commentID, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		for j := range s.posts[i].Comments {
			if s.posts[i].Comments[j].ID == commentID {
				s.posts[i].Comments[j].Content = content
				s.posts[i].Comments[j].UpdatedAt = time.Now().UTC()
				return true
			}
		}
	}
	return false
}

// toggleLike flips username's membership in the post's like set and
// returns the resulting set.
func (s *store) toggleLike(postID, username string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		for j, name := range s.posts[i].Likes {
			if name == username {
				s.posts[i].Likes = append(s.posts[i].Likes[:j], s.posts[i].Likes[j+1:]...)
				return s.posts[i].Likes, true
			}
		}
		s.posts[i].Likes = append(s.posts[i].Likes, username)
		return s.posts[i].Likes, true
	}
	return nil, false
}

func seedPosts() []models.Post {
	now := time.Now().UTC()
	return []models.Post{
		{
			ID:        uuid.NewString(),
			Title:     "A week in Kyoto",
			Author:    "maria",
			Content:   "Temples, gardens and the best ramen of my life.",
			MainImage: "https://images.example.com/kyoto-main.jpg",
			AdditionalImages: []string{
				"https://images.example.com/kyoto-1.jpg",
				"https://images.example.com/kyoto-2.jpg",
			},
			Country:   models.Country{Name: "Japan", Alpha3Code: "JPN", Flag: "🇯🇵"},
			City:      "Kyoto",
			Likes:     []string{"erik"},
			Comments:  []models.Comment{},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.NewString(),
			Title:     "Lisbon on a budget",
			Author:    "erik",
			Content:   "Trams, pastéis de nata and miradouros at sunset.",
			MainImage: "https://images.example.com/lisbon-main.jpg",
			AdditionalImages: []string{
				"https://images.example.com/lisbon-1.jpg",
			},
			Country:   models.Country{Name: "Portugal", Alpha3Code: "PRT", Flag: "🇵🇹"},
			City:      "Lisbon",
			Likes:     []string{},
			Comments:  []models.Comment{},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func seedCountries() []models.Country {
	return []models.Country{
		{Name: "Japan", Alpha3Code: "JPN", NativeName: "日本", Capital: "Tokyo", Region: "Asia", Subregion: "Eastern Asia", Population: "125800000", Flag: "🇯🇵"},
		{Name: "Portugal", Alpha3Code: "PRT", NativeName: "Portugal", Capital: "Lisbon", Region: "Europe", Subregion: "Southern Europe", Population: "10300000", Flag: "🇵🇹"},
		{Name: "Sweden", Alpha3Code: "SWE", NativeName: "Sverige", Capital: "Stockholm", Region: "Europe", Subregion: "Northern Europe", Population: "10400000", Flag: "🇸🇪"},
		{Name: "Brazil", Alpha3Code: "BRA", NativeName: "Brasil", Capital: "Brasília", Region: "Americas", Subregion: "South America", Population: "214000000", Flag: "🇧🇷"},
		{Name: "Morocco", Alpha3Code: "MAR", NativeName: "المغرب", Capital: "Rabat", Region: "Africa", Subregion: "Northern Africa", Population: "37000000", Flag: "🇲🇦"},
	}
}
