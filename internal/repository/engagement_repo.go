package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"teachings-api/internal/model"
)

// EngagementRepository persists the two fire-and-forget reader surfaces:
// newsletter signups and contact form messages.
type EngagementRepository struct {
	pool *pgxpool.Pool
}

func NewEngagementRepository(pool *pgxpool.Pool) *EngagementRepository {
	return &EngagementRepository{pool: pool}
}

func (r *EngagementRepository) Subscribe(ctx context.Context, id string, email string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO newsletter_subscribers (id, email, subscribed_at)
		 VALUES ($1, $2, $3)`,
		id, strings.ToLower(strings.TrimSpace(email)), at)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrAlreadySubscribed
		}
		return fmt.Errorf("subscribe newsletter: %w", err)
	}
	return nil
}

func (r *EngagementRepository) SaveContactMessage(ctx context.Context, id string, req model.ContactRequest, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, received_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, req.Name, req.Email, req.Subject, req.Message, at)
	if err != nil {
		return fmt.Errorf("save contact message: %w", err)
	}
	return nil
}
