package repository

import (
	"context"
	"fmt"

	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/repository/dao"
)

type SchoolInfoDAO interface {
	Get(ctx context.Context) (dao.SchoolInfo, error)
	Upsert(ctx context.Context, fields map[string]interface{}) (dao.SchoolInfo, error)
}

type SchoolInfoRepository struct {
	dao SchoolInfoDAO
}

func NewSchoolInfoRepository(dao SchoolInfoDAO) *SchoolInfoRepository {
	return &SchoolInfoRepository{
		dao: dao,
	}
}

func (r *SchoolInfoRepository) Get(ctx context.Context) (domain.SchoolInfo, error) {
	found, err := r.dao.Get(ctx)
	if err != nil {
		return domain.SchoolInfo{}, fmt.Errorf("r.dao.Get -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SchoolInfoRepository) Update(ctx context.Context, fields map[string]interface{}) (domain.SchoolInfo, error) {
	updated, err := r.dao.Upsert(ctx, fields)
	if err != nil {
		return domain.SchoolInfo{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *SchoolInfoRepository) daoToDomain(info dao.SchoolInfo) domain.SchoolInfo {
	return domain.SchoolInfo{
		Name:      info.Name,
		LogoURL:   info.LogoURL,
		UpdatedAt: info.UpdatedAt,
	}
}
