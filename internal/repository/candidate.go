package repository

import (
	"context"
	"fmt"

	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/repository/dao"
)

var ErrCandidateNotFound = dao.ErrCandidateNotFound

type CandidateDAO interface {
	Insert(ctx context.Context, candidate dao.Candidate) (dao.Candidate, error)
	FindByID(ctx context.Context, id uint) (dao.Candidate, error)
	ListAll(ctx context.Context) ([]dao.Candidate, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.Candidate, error)
	Delete(ctx context.Context, id uint) error
	ResetAllVotes(ctx context.Context, newGeneration string) error
	DeleteAll(ctx context.Context, newGeneration string) error
}

type CandidateRepository struct {
	dao CandidateDAO
}

func NewCandidateRepository(dao CandidateDAO) *CandidateRepository {
	return &CandidateRepository{
		dao: dao,
	}
}

func (r *CandidateRepository) Create(ctx context.Context, candidate domain.Candidate) (domain.Candidate, error) {
	created, err := r.dao.Insert(ctx, dao.Candidate{
		Name:     candidate.Name,
		Kelas:    candidate.Kelas,
		Vision:   candidate.Vision,
		Mission:  candidate.Mission,
		PhotoURL: candidate.PhotoURL,
	})
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CandidateRepository) FindByID(ctx context.Context, id uint) (domain.Candidate, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CandidateRepository) ListAll(ctx context.Context) ([]domain.Candidate, error) {
	found, err := r.dao.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAll -> %w", err)
	}

	candidates := make([]domain.Candidate, len(found))
	for i, c := range found {
		candidates[i] = r.daoToDomain(c)
	}

	return candidates, nil
}

func (r *CandidateRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (domain.Candidate, error) {
	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *CandidateRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *CandidateRepository) ResetAllVotes(ctx context.Context, newGeneration string) error {
	if err := r.dao.ResetAllVotes(ctx, newGeneration); err != nil {
		return fmt.Errorf("r.dao.ResetAllVotes -> %w", err)
	}

	return nil
}

func (r *CandidateRepository) DeleteAll(ctx context.Context, newGeneration string) error {
	if err := r.dao.DeleteAll(ctx, newGeneration); err != nil {
		return fmt.Errorf("r.dao.DeleteAll -> %w", err)
	}

	return nil
}

func (r *CandidateRepository) daoToDomain(c dao.Candidate) domain.Candidate {
	return domain.Candidate{
		ID:        c.ID,
		Name:      c.Name,
		Kelas:     c.Kelas,
		Vision:    c.Vision,
		Mission:   c.Mission,
		PhotoURL:  c.PhotoURL,
		VoteCount: c.VoteCount,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
