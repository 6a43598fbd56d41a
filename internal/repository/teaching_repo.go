package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"teachings-api/internal/model"
)

// teachingColumns resolves tag names and the series title in the same
// statement, so every read reflects one store snapshot.
const teachingColumns = `
	t.id::text, t.title, t.slug, t.excerpt, t.content, t.published_at,
	t.reading_time, t.author_name, t.seq,
	COALESCE(t.series_id::text, ''), COALESCE(s.title, ''),
	COALESCE(array_agg(tg.name ORDER BY tg.name) FILTER (WHERE tg.id IS NOT NULL), '{}'),
	COALESCE(array_agg(tg.id::text ORDER BY tg.name) FILTER (WHERE tg.id IS NOT NULL), '{}')`

const teachingJoins = `
	FROM teachings t
	LEFT JOIN series s ON s.id = t.series_id
	LEFT JOIN teaching_tags tt ON tt.teaching_id = t.id
	LEFT JOIN tags tg ON tg.id = tt.tag_id`

type TeachingRepository struct {
	pool *pgxpool.Pool
}

func NewTeachingRepository(pool *pgxpool.Pool) *TeachingRepository {
	return &TeachingRepository{pool: pool}
}

func scanTeaching(row pgx.Row) (model.Teaching, error) {
	var t model.Teaching
	err := row.Scan(&t.ID, &t.Title, &t.Slug, &t.Excerpt, &t.Content,
		&t.PublishedAt, &t.ReadingTime, &t.AuthorName, &t.Seq,
		&t.SeriesID, &t.SeriesTitle, &t.Tags, &t.TagIDs)
	return t, err
}

// ListTeachings returns the full corpus in creation order; the query
// engine owns filtering, sorting and pagination.
func (r *TeachingRepository) ListTeachings(ctx context.Context) ([]model.Teaching, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+teachingColumns+teachingJoins+`
		 GROUP BY t.id, s.title
		 ORDER BY t.seq`)
	if err != nil {
		return nil, fmt.Errorf("list teachings: %w", err)
	}
	defer rows.Close()

	teachings := make([]model.Teaching, 0)
	for rows.Next() {
		t, err := scanTeaching(rows)
		if err != nil {
			return nil, fmt.Errorf("scan teaching: %w", err)
		}
		teachings = append(teachings, t)
	}
	return teachings, rows.Err()
}

func (r *TeachingRepository) FindTeachingBySlug(ctx context.Context, slug string) (model.Teaching, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT`+teachingColumns+teachingJoins+`
		 WHERE t.slug = $1
		 GROUP BY t.id, s.title`, slug)

	t, err := scanTeaching(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Teaching{}, model.ErrTeachingNotFound
	}
	if err != nil {
		return model.Teaching{}, fmt.Errorf("find teaching by slug: %w", err)
	}

	t.Related, err = r.relatedRefs(ctx, t.ID)
	if err != nil {
		return model.Teaching{}, err
	}
	return t, nil
}

func (r *TeachingRepository) FindTeachingByID(ctx context.Context, id string) (model.Teaching, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT`+teachingColumns+teachingJoins+`
		 WHERE t.id = $1
		 GROUP BY t.id, s.title`, id)

	t, err := scanTeaching(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Teaching{}, model.ErrTeachingNotFound
	}
	if err != nil {
		return model.Teaching{}, fmt.Errorf("find teaching by id: %w", err)
	}
	return t, nil
}

func (r *TeachingRepository) relatedRefs(ctx context.Context, teachingID string) ([]model.TeachingRef, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT rt.id::text, rt.title, rt.slug
		 FROM teaching_related tr
		 JOIN teachings rt ON rt.id = tr.related_id
		 WHERE tr.teaching_id = $1
		 ORDER BY tr.position`, teachingID)
	if err != nil {
		return nil, fmt.Errorf("list related teachings: %w", err)
	}
	defer rows.Close()

	refs := make([]model.TeachingRef, 0)
	for rows.Next() {
		var ref model.TeachingRef
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.Slug); err != nil {
			return nil, fmt.Errorf("scan related teaching: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *TeachingRepository) ListSeries(ctx context.Context) ([]model.Series, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id::text, s.title, s.slug, s.description, s.cover_image,
		        COUNT(t.id)
		 FROM series s
		 LEFT JOIN teachings t ON t.series_id = s.id
		 GROUP BY s.id
		 ORDER BY s.title, s.id`)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()

	series := make([]model.Series, 0)
	for rows.Next() {
		var s model.Series
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.Description, &s.CoverImage, &s.TeachingCount); err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		series = append(series, s)
	}
	return series, rows.Err()
}

func (r *TeachingRepository) FindSeriesBySlug(ctx context.Context, slug string) (model.Series, error) {
	var s model.Series
	err := r.pool.QueryRow(ctx,
		`SELECT s.id::text, s.title, s.slug, s.description, s.cover_image,
		        (SELECT COUNT(*) FROM teachings t WHERE t.series_id = s.id)
		 FROM series s WHERE s.slug = $1`, slug).
		Scan(&s.ID, &s.Title, &s.Slug, &s.Description, &s.CoverImage, &s.TeachingCount)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Series{}, model.ErrSeriesNotFound
	}
	if err != nil {
		return model.Series{}, fmt.Errorf("find series by slug: %w", err)
	}
	return s, nil
}

func (r *TeachingRepository) ListTeachingsBySeries(ctx context.Context, seriesID string) ([]model.Teaching, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+teachingColumns+teachingJoins+`
		 WHERE t.series_id = $1
		 GROUP BY t.id, s.title
		 ORDER BY t.published_at DESC, t.seq`, seriesID)
	if err != nil {
		return nil, fmt.Errorf("list teachings by series: %w", err)
	}
	defer rows.Close()

	teachings := make([]model.Teaching, 0)
	for rows.Next() {
		t, err := scanTeaching(rows)
		if err != nil {
			return nil, fmt.Errorf("scan teaching: %w", err)
		}
		teachings = append(teachings, t)
	}
	return teachings, rows.Err()
}

func (r *TeachingRepository) CountTeachingsBySeries(ctx context.Context, seriesID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM teachings WHERE series_id = $1`, seriesID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count teachings by series: %w", err)
	}
	return count, nil
}

func (r *TeachingRepository) ListTagNames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *TeachingRepository) TeachingExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM teachings WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check teaching exists: %w", err)
	}
	return exists, nil
}
