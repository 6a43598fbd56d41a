package service

import (
	"context"
	"sort"
	"strings"

	"teachings-api/internal/model"
)

const relatedFallbackLimit = 3

// TeachingService is the query engine: it turns a filter specification into
// a stable, paginated result set and resolves related-content views. It
// never mutates the store.
type TeachingService struct {
	store        ContentStore
	defaultLimit int
	maxLimit     int
}

func NewTeachingService(store ContentStore, defaultLimit int, maxLimit int) *TeachingService {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}

	return &TeachingService{store: store, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// List applies the filter (AND across fields, OR within tags), orders by
// publishedAt descending with creation order breaking ties, and paginates.
// A page past the end yields an empty item list with an accurate total.
func (s *TeachingService) List(ctx context.Context, filter model.TeachingFilter, page int, limit int) ([]model.Teaching, model.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	all, err := s.store.ListTeachings(ctx)
	if err != nil {
		return nil, model.Meta{}, err
	}

	matched := make([]model.Teaching, 0, len(all))
	for _, t := range all {
		if matchesFilter(t, filter) {
			matched = append(matched, t)
		}
	}

	sortNewestFirst(matched)

	total := len(matched)
	totalPages := (total + limit - 1) / limit

	// page*limit can overflow to a negative value on extreme page numbers;
	// anything outside the corpus is an empty page.
	start := (page - 1) * limit
	if start < 0 || start > total {
		start = total
	}
	end := start + limit
	if end < start || end > total {
		end = total
	}

	meta := model.Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
	return matched[start:end], meta, nil
}

// GetBySlug returns the teaching with resolved tags, series title and
// related-teaching references. When no curated related list exists, the
// ranked recommendation set fills in.
func (s *TeachingService) GetBySlug(ctx context.Context, slug string) (model.Teaching, error) {
	t, err := s.store.FindTeachingBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return model.Teaching{}, err
	}

	if len(t.Related) == 0 {
		related, err := s.Related(ctx, t.ID, relatedFallbackLimit)
		if err != nil {
			return model.Teaching{}, err
		}
		for _, r := range related {
			t.Related = append(t.Related, r.Ref())
		}
	}

	return t, nil
}

// Latest returns the most recently published teaching.
func (s *TeachingService) Latest(ctx context.Context) (model.Teaching, error) {
	all, err := s.store.ListTeachings(ctx)
	if err != nil {
		return model.Teaching{}, err
	}
	if len(all) == 0 {
		return model.Teaching{}, model.ErrTeachingNotFound
	}

	sortNewestFirst(all)
	return all[0], nil
}

// Related recommends up to limit teachings that share the subject's series
// or at least one tag. Ranking is deterministic: shared-tag count first,
// then recency, then creation order. The subject itself is never included.
func (s *TeachingService) Related(ctx context.Context, teachingID string, limit int) ([]model.Teaching, error) {
	subject, err := s.store.FindTeachingByID(ctx, teachingID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = relatedFallbackLimit
	}

	all, err := s.store.ListTeachings(ctx)
	if err != nil {
		return nil, err
	}

	subjectTags := make(map[string]struct{}, len(subject.TagIDs))
	for _, id := range subject.TagIDs {
		subjectTags[id] = struct{}{}
	}

	type candidate struct {
		teaching   model.Teaching
		sharedTags int
	}

	candidates := make([]candidate, 0)
	for _, t := range all {
		if t.ID == subject.ID {
			continue
		}

		shared := 0
		for _, id := range t.TagIDs {
			if _, ok := subjectTags[id]; ok {
				shared++
			}
		}

		sameSeries := subject.SeriesID != "" && t.SeriesID == subject.SeriesID
		if shared == 0 && !sameSeries {
			continue
		}

		candidates = append(candidates, candidate{teaching: t, sharedTags: shared})
	}

	sort.SliceStable(candidates, func(i int, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.sharedTags != b.sharedTags {
			return a.sharedTags > b.sharedTags
		}
		if !a.teaching.PublishedAt.Equal(b.teaching.PublishedAt) {
			return a.teaching.PublishedAt.After(b.teaching.PublishedAt)
		}
		return a.teaching.Seq < b.teaching.Seq
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]model.Teaching, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.teaching)
	}
	return result, nil
}

func matchesFilter(t model.Teaching, f model.TeachingFilter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Excerpt), needle) {
			return false
		}
	}

	if f.SeriesID != "" && t.SeriesID != f.SeriesID {
		return false
	}

	if len(f.TagIDs) > 0 {
		found := false
		for _, want := range f.TagIDs {
			for _, have := range t.TagIDs {
				if want == have {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.StartDate != nil && t.PublishedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.PublishedAt.After(*f.EndDate) {
		return false
	}

	return true
}

// sortNewestFirst orders by publishedAt descending. The sort is stable and
// the store hands teachings over in creation order, so ties keep it.
func sortNewestFirst(teachings []model.Teaching) {
	sort.SliceStable(teachings, func(i int, j int) bool {
		return teachings[i].PublishedAt.After(teachings[j].PublishedAt)
	})
}
