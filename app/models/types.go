package models

import "time"

// Post represents a discussion post with its voting and tagging metadata.
type Post struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	Tags       []string  `json:"tags"`
	Upvotes    int       `json:"upvotes"`
	Downvotes  int       `json:"downvotes"`
	Bookmarked bool      `json:"bookmarked"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostInput is what a caller submits to create a post. Tags is the raw
// comma separated text as typed by the user.
type PostInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content"`
	Author  string `json:"author" validate:"omitempty,max=50"`
	Tags    string `json:"tags"`
}
