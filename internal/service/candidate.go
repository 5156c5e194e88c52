package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/google/uuid"

	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/repository"
)

var ErrCandidateNotFound = repository.ErrCandidateNotFound

type CandidateRepository interface {
	Create(ctx context.Context, candidate domain.Candidate) (domain.Candidate, error)
	FindByID(ctx context.Context, id uint) (domain.Candidate, error)
	ListAll(ctx context.Context) ([]domain.Candidate, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (domain.Candidate, error)
	Delete(ctx context.Context, id uint) error
	ResetAllVotes(ctx context.Context, newGeneration string) error
	DeleteAll(ctx context.Context, newGeneration string) error
}

// ObjectUploader stores a blob and returns a fetchable URL.
type ObjectUploader interface {
	Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error)
}

type CandidateService struct {
	repo         CandidateRepository
	electionRepo ElectionRepository
	uploader     ObjectUploader
	publisher    TallyPublisher
}

func NewCandidateService(repo CandidateRepository, electionRepo ElectionRepository, uploader ObjectUploader, publisher TallyPublisher) *CandidateService {
	return &CandidateService{
		repo:         repo,
		electionRepo: electionRepo,
		uploader:     uploader,
		publisher:    publisher,
	}
}

func (s *CandidateService) CreateCandidate(ctx context.Context, candidate domain.Candidate) (domain.Candidate, error) {
	created, err := s.repo.Create(ctx, candidate)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CandidateService) GetCandidate(ctx context.Context, id uint) (domain.Candidate, error) {
	candidate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return candidate, nil
}

func (s *CandidateService) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	candidates, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	return candidates, nil
}

// ListCandidatesShuffled returns the candidates in a random order. The
// ballot page shows them this way so the stored order doesn't bias voters.
func (s *CandidateService) ListCandidatesShuffled(ctx context.Context) ([]domain.Candidate, error) {
	candidates, err := s.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	return candidates, nil
}

func (s *CandidateService) UpdateCandidate(ctx context.Context, id uint, fields map[string]interface{}) (domain.Candidate, error) {
	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// UpdatePhoto stores the uploaded image and persists its URL on the
// candidate. The image is stored as received; cropping and compression are
// the client's business.
func (s *CandidateService) UpdatePhoto(ctx context.Context, id uint, filename, contentType string, r io.Reader) (domain.Candidate, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return domain.Candidate{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	path := fmt.Sprintf("candidates/%d/%s", id, filename)
	url, err := s.uploader.Upload(ctx, path, contentType, r)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("s.uploader.Upload -> %w", err)
	}

	updated, err := s.repo.Update(ctx, id, map[string]interface{}{"photo_url": url})
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *CandidateService) DeleteCandidate(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ResetAllVotes zeroes every candidate in one statement and starts a new
// election generation. Tokens keep whatever state they had; this is the
// documented soft reset.
func (s *CandidateService) ResetAllVotes(ctx context.Context) error {
	if err := s.repo.ResetAllVotes(ctx, uuid.NewString()); err != nil {
		return fmt.Errorf("s.repo.ResetAllVotes -> %w", err)
	}

	publishTally(ctx, s.repo, s.electionRepo, s.publisher)

	return nil
}

func (s *CandidateService) DeleteAllCandidates(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx, uuid.NewString()); err != nil {
		return fmt.Errorf("s.repo.DeleteAll -> %w", err)
	}

	publishTally(ctx, s.repo, s.electionRepo, s.publisher)

	return nil
}
