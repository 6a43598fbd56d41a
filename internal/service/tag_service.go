package service

import "context"

type TagService struct {
	store ContentStore
}

func NewTagService(store ContentStore) *TagService {
	return &TagService{store: store}
}

// List returns all tag names sorted alphabetically (the store contract).
func (s *TagService) List(ctx context.Context) ([]string, error) {
	return s.store.ListTagNames(ctx)
}
