package repository

import (
	"context"
	"fmt"

	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/repository/dao"
)

type ElectionDAO interface {
	Get(ctx context.Context) (dao.Election, error)
}

type ElectionRepository struct {
	dao ElectionDAO
}

func NewElectionRepository(dao ElectionDAO) *ElectionRepository {
	return &ElectionRepository{
		dao: dao,
	}
}

func (r *ElectionRepository) Get(ctx context.Context) (domain.Election, error) {
	found, err := r.dao.Get(ctx)
	if err != nil {
		return domain.Election{}, fmt.Errorf("r.dao.Get -> %w", err)
	}

	return domain.Election{
		ID:         found.ID,
		Generation: found.Generation,
		UpdatedAt:  found.UpdatedAt,
	}, nil
}
