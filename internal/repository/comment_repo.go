package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"teachings-api/internal/model"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c model.Comment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO comments (id, teaching_id, author_name, author_email, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.TeachingID, c.AuthorName, c.AuthorEmail, c.Content, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) ListByTeaching(ctx context.Context, teachingID string) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, teaching_id::text, author_name, author_email, content, created_at
		 FROM comments
		 WHERE teaching_id = $1
		 ORDER BY created_at DESC, id`, teachingID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.TeachingID, &c.AuthorName, &c.AuthorEmail, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
