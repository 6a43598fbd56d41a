package service

import (
	"context"

	"teachings-api/internal/model"
)

// ContentStore is the read contract the query engine runs against. The
// Postgres repository implements it in production; tests substitute an
// in-memory store so the filtering rules live in exactly one place.
//
// ListTeachings returns the corpus in creation order with tag names and the
// series title already resolved. Series counts are computed by the store at
// read time, never cached.
type ContentStore interface {
	ListTeachings(ctx context.Context) ([]model.Teaching, error)
	FindTeachingBySlug(ctx context.Context, slug string) (model.Teaching, error)
	FindTeachingByID(ctx context.Context, id string) (model.Teaching, error)
	ListSeries(ctx context.Context) ([]model.Series, error)
	FindSeriesBySlug(ctx context.Context, slug string) (model.Series, error)
	ListTeachingsBySeries(ctx context.Context, seriesID string) ([]model.Teaching, error)
	CountTeachingsBySeries(ctx context.Context, seriesID string) (int, error)
	ListTagNames(ctx context.Context) ([]string, error)
	TeachingExists(ctx context.Context, id string) (bool, error)
}

// UserStore is the credential store contract behind the auth service.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) error
	List(ctx context.Context) ([]model.UserSummary, error)
}
