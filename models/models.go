package models

import "time"

type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Cache   CacheConfig   `yaml:"cache"`
	LogFile string        `yaml:"log_file"`
}

type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type CacheConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// Session is the client's last-known login state. IsLoggedIn is true
// exactly when Username is non-nil.
type Session struct {
	IsLoggedIn bool    `json:"isLoggedIn"`
	Username   *string `json:"username"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Country   string `json:"country"`
}

type Country struct {
	Name       string `json:"name"`
	Alpha3Code string `json:"alpha3Code"`
	NativeName string `json:"nativeName"`
	Capital    string `json:"capital"`
	Region     string `json:"region"`
	Subregion  string `json:"subregion"`
	Population string `json:"population"`
	Flag       string `json:"flag"`
}

type Comment struct {
	ID        string    `json:"_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

type Post struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Author           string    `json:"author"`
	Content          string    `json:"content"`
	MainImage        string    `json:"mainImage"`
	AdditionalImages []string  `json:"additionalImages"`
	Country          Country   `json:"country"`
	City             string    `json:"city"`
	Likes            []string  `json:"likes"`
	Comments         []Comment `json:"comments"`
	CreatedAt        time.Time `json:"createdAt,omitzero"`
	UpdatedAt        time.Time `json:"updatedAt,omitzero"`
}

// Destination is the table projection of a Post. Derived per fetch,
// never persisted.
type Destination struct {
	ID      string `json:"id"`
	Flag    string `json:"flag"`
	Country string `json:"country"`
	Title   string `json:"title"`
	Author  string `json:"author"`
}

// GalleryImage is one slide of an image gallery. Link is empty when the
// image is not click-through navigable.
type GalleryImage struct {
	URL     string `json:"url"`
	Country string `json:"country"`
	City    string `json:"city"`
	Link    string `json:"link,omitempty"`
}

// Message is a transient user-facing notification.
type Message struct {
	Text    string `json:"text"`
	Success bool   `json:"isSuccess"`
}

// Wire response shapes of the backend API.

type LoginResponse struct {
	IsLoggedIn bool    `json:"isLoggedIn"`
	Username   *string `json:"username"`
	Message    string  `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CommentResponse struct {
	Comment Comment `json:"comment"`
	Message string  `json:"message"`
}

type LikeResponse struct {
	Likes   []string `json:"likes"`
	Message string   `json:"message"`
}

// ErrorResponse is the backend error payload. Message is always set;
// Error carries the user-facing text only on 401 responses.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
