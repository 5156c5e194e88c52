package service

import (
	"context"
	"fmt"
	"io"

	"github.com/sekolahvote/pemira-api/internal/domain"
)

type SchoolInfoRepository interface {
	Get(ctx context.Context) (domain.SchoolInfo, error)
	Update(ctx context.Context, fields map[string]interface{}) (domain.SchoolInfo, error)
}

type SchoolService struct {
	repo     SchoolInfoRepository
	uploader ObjectUploader
}

func NewSchoolService(repo SchoolInfoRepository, uploader ObjectUploader) *SchoolService {
	return &SchoolService{
		repo:     repo,
		uploader: uploader,
	}
}

func (s *SchoolService) GetInfo(ctx context.Context) (domain.SchoolInfo, error) {
	info, err := s.repo.Get(ctx)
	if err != nil {
		return domain.SchoolInfo{}, fmt.Errorf("s.repo.Get -> %w", err)
	}

	return info, nil
}

func (s *SchoolService) UpdateName(ctx context.Context, name string) (domain.SchoolInfo, error) {
	info, err := s.repo.Update(ctx, map[string]interface{}{"name": name})
	if err != nil {
		return domain.SchoolInfo{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return info, nil
}

func (s *SchoolService) UploadLogo(ctx context.Context, filename, contentType string, r io.Reader) (domain.SchoolInfo, error) {
	url, err := s.uploader.Upload(ctx, "school/"+filename, contentType, r)
	if err != nil {
		return domain.SchoolInfo{}, fmt.Errorf("s.uploader.Upload -> %w", err)
	}

	info, err := s.repo.Update(ctx, map[string]interface{}{"logo_url": url})
	if err != nil {
		return domain.SchoolInfo{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return info, nil
}
