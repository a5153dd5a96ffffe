package models

import (
	"time"
)

// Post represents a blog post. Date is the human-readable display date,
// formatted once at creation time and never recomputed.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Subtitle  string    `json:"subtitle" db:"subtitle"`
	Date      string    `json:"date" db:"date"`
	Body      string    `json:"body" db:"body"`
	ImgURL    string    `json:"img_url" db:"img_url"`
	AuthorID  int64     `json:"author_id" db:"author_id"`
	Author    string    `json:"author" db:"-"` // joined from users.name
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DisplayDateFormat is the layout posts carry on the site, e.g. "August 14, 2026".
const DisplayDateFormat = "January 2, 2006"
