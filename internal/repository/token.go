package repository

import (
	"context"
	"fmt"

	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/repository/dao"
)

var (
	ErrTokenNotFound    = dao.ErrTokenNotFound
	ErrTokenAlreadyUsed = dao.ErrTokenAlreadyUsed
)

type TokenDAO interface {
	InsertBatch(ctx context.Context, tokens []dao.Token) ([]dao.Token, error)
	FindByString(ctx context.Context, tokenString string) (dao.Token, error)
	ListAll(ctx context.Context) ([]dao.Token, error)
	Consume(ctx context.Context, tokenID, candidateID uint) error
	MarkUsed(ctx context.Context, id uint) (dao.Token, error)
	Release(ctx context.Context, id uint) (dao.Token, error)
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context, newGeneration string) error
}

type TokenRepository struct {
	dao TokenDAO
}

func NewTokenRepository(dao TokenDAO) *TokenRepository {
	return &TokenRepository{
		dao: dao,
	}
}

func (r *TokenRepository) CreateBatch(ctx context.Context, tokens []domain.Token) ([]domain.Token, error) {
	daoTokens := make([]dao.Token, len(tokens))
	for i, t := range tokens {
		daoTokens[i] = dao.Token{
			Token:         t.Token,
			Used:          t.Used,
			CandidateID:   t.CandidateID,
			Type:          t.Type,
			OriginalIndex: t.OriginalIndex,
		}
	}

	created, err := r.dao.InsertBatch(ctx, daoTokens)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	return r.daosToDomain(created), nil
}

func (r *TokenRepository) FindByString(ctx context.Context, tokenString string) (domain.Token, error) {
	found, err := r.dao.FindByString(ctx, tokenString)
	if err != nil {
		return domain.Token{}, fmt.Errorf("r.dao.FindByString -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TokenRepository) ListAll(ctx context.Context) ([]domain.Token, error) {
	found, err := r.dao.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *TokenRepository) Consume(ctx context.Context, tokenID, candidateID uint) error {
	if err := r.dao.Consume(ctx, tokenID, candidateID); err != nil {
		return fmt.Errorf("r.dao.Consume -> %w", err)
	}

	return nil
}

func (r *TokenRepository) MarkUsed(ctx context.Context, id uint) (domain.Token, error) {
	updated, err := r.dao.MarkUsed(ctx, id)
	if err != nil {
		return domain.Token{}, fmt.Errorf("r.dao.MarkUsed -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TokenRepository) Release(ctx context.Context, id uint) (domain.Token, error) {
	updated, err := r.dao.Release(ctx, id)
	if err != nil {
		return domain.Token{}, fmt.Errorf("r.dao.Release -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TokenRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *TokenRepository) DeleteAll(ctx context.Context, newGeneration string) error {
	if err := r.dao.DeleteAll(ctx, newGeneration); err != nil {
		return fmt.Errorf("r.dao.DeleteAll -> %w", err)
	}

	return nil
}

func (r *TokenRepository) daoToDomain(t dao.Token) domain.Token {
	return domain.Token{
		ID:            t.ID,
		Token:         t.Token,
		Used:          t.Used,
		CandidateID:   t.CandidateID,
		Type:          t.Type,
		OriginalIndex: t.OriginalIndex,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (r *TokenRepository) daosToDomain(tokens []dao.Token) []domain.Token {
	result := make([]domain.Token, len(tokens))
	for i, t := range tokens {
		result[i] = r.daoToDomain(t)
	}

	return result
}
