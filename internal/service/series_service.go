package service

import (
	"context"
	"strings"

	"teachings-api/internal/model"
)

type SeriesService struct {
	store ContentStore
}

func NewSeriesService(store ContentStore) *SeriesService {
	return &SeriesService{store: store}
}

func (s *SeriesService) List(ctx context.Context) ([]model.Series, error) {
	return s.store.ListSeries(ctx)
}

// GetBySlug returns the series plus its teachings sorted newest first.
// TeachingCount is the live store count for the series, not the length of
// the summary list, so truncation elsewhere can never skew it.
func (s *SeriesService) GetBySlug(ctx context.Context, slug string) (model.SeriesDetail, error) {
	series, err := s.store.FindSeriesBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return model.SeriesDetail{}, err
	}

	count, err := s.store.CountTeachingsBySeries(ctx, series.ID)
	if err != nil {
		return model.SeriesDetail{}, err
	}
	series.TeachingCount = count

	teachings, err := s.store.ListTeachingsBySeries(ctx, series.ID)
	if err != nil {
		return model.SeriesDetail{}, err
	}
	sortNewestFirst(teachings)

	summaries := make([]model.TeachingSummary, 0, len(teachings))
	for _, t := range teachings {
		summaries = append(summaries, t.Summary())
	}

	return model.SeriesDetail{Series: series, Teachings: summaries}, nil
}
