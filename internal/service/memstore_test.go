package service

import (
	"context"
	"sort"

	"teachings-api/internal/model"
)

// memContentStore is the in-memory stand-in for the Postgres repositories.
// It honors the same contract: teachings come back in creation order with
// tags and series titles resolved, and series counts are computed live.
type memContentStore struct {
	teachings []model.Teaching
	series    []model.Series
}

func (m *memContentStore) ListTeachings(_ context.Context) ([]model.Teaching, error) {
	out := make([]model.Teaching, len(m.teachings))
	copy(out, m.teachings)
	sort.SliceStable(out, func(i int, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (m *memContentStore) FindTeachingBySlug(_ context.Context, slug string) (model.Teaching, error) {
	for _, t := range m.teachings {
		if t.Slug == slug {
			return t, nil
		}
	}
	return model.Teaching{}, model.ErrTeachingNotFound
}

func (m *memContentStore) FindTeachingByID(_ context.Context, id string) (model.Teaching, error) {
	for _, t := range m.teachings {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Teaching{}, model.ErrTeachingNotFound
}

func (m *memContentStore) ListSeries(_ context.Context) ([]model.Series, error) {
	out := make([]model.Series, len(m.series))
	copy(out, m.series)
	for i := range out {
		count, _ := m.CountTeachingsBySeries(context.Background(), out[i].ID)
		out[i].TeachingCount = count
	}
	sort.SliceStable(out, func(i int, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memContentStore) FindSeriesBySlug(_ context.Context, slug string) (model.Series, error) {
	for _, s := range m.series {
		if s.Slug == slug {
			return s, nil
		}
	}
	return model.Series{}, model.ErrSeriesNotFound
}

func (m *memContentStore) ListTeachingsBySeries(_ context.Context, seriesID string) ([]model.Teaching, error) {
	out := make([]model.Teaching, 0)
	for _, t := range m.teachings {
		if t.SeriesID == seriesID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i int, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (m *memContentStore) CountTeachingsBySeries(_ context.Context, seriesID string) (int, error) {
	count := 0
	for _, t := range m.teachings {
		if t.SeriesID == seriesID {
			count++
		}
	}
	return count, nil
}

func (m *memContentStore) ListTagNames(_ context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	names := make([]string, 0)
	for _, t := range m.teachings {
		for _, name := range t.Tags {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *memContentStore) TeachingExists(_ context.Context, id string) (bool, error) {
	for _, t := range m.teachings {
		if t.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// memUserStore backs auth service tests.
type memUserStore struct {
	users []model.User
}

func (m *memUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (m *memUserStore) Create(_ context.Context, u model.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return model.ErrUserAlreadyExists
		}
	}
	m.users = append(m.users, u)
	return nil
}

func (m *memUserStore) List(_ context.Context) ([]model.UserSummary, error) {
	out := make([]model.UserSummary, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u.Summary())
	}
	return out, nil
}

// memCommentStore backs comment service tests.
type memCommentStore struct {
	comments []model.Comment
}

func (m *memCommentStore) Create(_ context.Context, c model.Comment) error {
	m.comments = append(m.comments, c)
	return nil
}

func (m *memCommentStore) ListByTeaching(_ context.Context, teachingID string) ([]model.Comment, error) {
	out := make([]model.Comment, 0)
	for _, c := range m.comments {
		if c.TeachingID == teachingID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i int, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
