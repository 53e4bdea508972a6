package domain

import "time"

// Blog is an admin-authored article. Content is HTML.
type Blog struct {
	ID        string    `json:"_id,omitempty"`
	Title     string    `json:"title"   validate:"required"`
	Picture   string    `json:"picture"`
	Content   string    `json:"content" validate:"required"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// BlogCard is the list view of a blog with a plain-text excerpt.
type BlogCard struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Picture   string    `json:"picture"`
	Tags      []string  `json:"tags"`
	Excerpt   string    `json:"excerpt"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}
