package service

import (
	"context"

	"github.com/thinklet/thinklet/internal/repo"
	"github.com/thinklet/thinklet/internal/transport"
)

type CategoryService struct {
	Repo *repo.GormRepo
}

func (s *CategoryService) List(ctx context.Context) ([]transport.CategoryDTO, error) {
	cats, err := s.Repo.AllCategories(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.CategoryDTO, 0, len(cats))
	for _, cat := range cats {
		out = append(out, transport.CategoryDTO{ID: cat.ID, Name: cat.Name})
	}
	return out, nil
}
