package models

import (
	"time"
)

// Comment represents a comment on a post. Comments are immutable once
// created; they disappear only when their parent post is deleted.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"post_id" db:"post_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	Author    string    `json:"author" db:"-"` // joined from users.name
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
