// Package model defines the data structures exchanged with the techboard API.
//
// All server entities are immutable snapshots; the client never owns
// authoritative state. The only client-owned entities are the local session,
// the UI state and the editor draft.
package model

import "time"

type PostStatus string

const (
	StatusDraft     PostStatus = "DRAFT"
	StatusPublished PostStatus = "PUBLISHED"
)

type ReviewType string

const (
	ReviewBook   ReviewType = "BOOK"
	ReviewCourse ReviewType = "COURSE"
)

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Tag struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

type Post struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary"`
	Author  string `json:"author"`

	// Slug is unique and assigned server-side only.
	Slug   string     `json:"slug"`
	Status PostStatus `json:"status"`

	ViewCount int       `json:"viewCount"`
	Category  *Category `json:"category,omitempty"`
	Tags      []Tag     `json:"tags"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// PublishedAt is nil while Status is DRAFT.
	PublishedAt *time.Time `json:"publishedAt"`
}

type Comment struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Review struct {
	ID         int        `json:"id"`
	ReviewType ReviewType `json:"reviewType"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Rating     int        `json:"rating"`
	ItemTitle  string     `json:"itemTitle"`
	ItemAuthor string     `json:"itemAuthor,omitempty"`
	ItemLink   string     `json:"itemLink,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// BookInfo is the result of an ISBN lookup, used only to prefill
// the review editor's item fields.
type BookInfo struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Link   string `json:"link"`
}

// Page is one slice of a paginated collection. CurrentPage is zero-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	Size          int   `json:"size"`
}

// User is local only: it is derived from the local credential check,
// never issued by the server.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

const RoleAdmin = "ADMIN"

// ErrorResponse is the error body returned by the API on non-2xx statuses.
type ErrorResponse struct {
	Status    int      `json:"status"`
	Message   string   `json:"message"`
	Errors    []string `json:"errors"`
	Timestamp string   `json:"timestamp"`
}
