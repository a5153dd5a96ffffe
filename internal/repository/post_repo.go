package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/blog-platform/internal/database"
	"github.com/blog-platform/internal/models"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// Create inserts a new post and returns its assigned id. A duplicate title
// surfaces as models.ErrDuplicateTitle.
func (r *postRepo) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (title, subtitle, date, body, img_url, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Subtitle, post.Date, post.Body, post.ImgURL,
		post.AuthorID, time.Now(),
	).Scan(&id)
	if isUniqueViolation(err, "posts_title_key") {
		return 0, models.ErrDuplicateTitle
	}
	if err != nil {
		return 0, err
	}
	post.ID = id
	return id, nil
}

// GetByID retrieves a post by ID with its author's display name
func (r *postRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT p.id, p.title, p.subtitle, p.date, p.body, p.img_url,
		       p.author_id, u.name, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`

	var post models.Post
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Subtitle, &post.Date, &post.Body,
		&post.ImgURL, &post.AuthorID, &post.Author, &post.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// List retrieves all posts, newest first
func (r *postRepo) List(ctx context.Context) ([]*models.Post, error) {
	query := `
		SELECT p.id, p.title, p.subtitle, p.date, p.body, p.img_url,
		       p.author_id, u.name, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		err := rows.Scan(
			&post.ID, &post.Title, &post.Subtitle, &post.Date, &post.Body,
			&post.ImgURL, &post.AuthorID, &post.Author, &post.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

// Update rewrites the mutable post fields (title, subtitle, body, img_url).
// The display date and author are fixed at creation.
func (r *postRepo) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET title = $1, subtitle = $2, body = $3, img_url = $4
		WHERE id = $5
	`
	res, err := r.db.ExecContext(ctx, query,
		post.Title, post.Subtitle, post.Body, post.ImgURL, post.ID,
	)
	if isUniqueViolation(err, "posts_title_key") {
		return models.ErrDuplicateTitle
	}
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a post; its comments go with it via ON DELETE CASCADE.
func (r *postRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}
