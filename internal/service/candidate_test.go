package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/repository"
)

type fakeFullCandidateRepo struct {
	candidates     []domain.Candidate
	lastGeneration string
}

func (f *fakeFullCandidateRepo) Create(_ context.Context, candidate domain.Candidate) (domain.Candidate, error) {
	candidate.ID = uint(len(f.candidates) + 1)
	f.candidates = append(f.candidates, candidate)

	return candidate, nil
}

func (f *fakeFullCandidateRepo) FindByID(_ context.Context, id uint) (domain.Candidate, error) {
	for _, c := range f.candidates {
		if c.ID == id {
			return c, nil
		}
	}

	return domain.Candidate{}, repository.ErrCandidateNotFound
}

func (f *fakeFullCandidateRepo) ListAll(_ context.Context) ([]domain.Candidate, error) {
	return append([]domain.Candidate(nil), f.candidates...), nil
}

func (f *fakeFullCandidateRepo) Update(_ context.Context, id uint, fields map[string]interface{}) (domain.Candidate, error) {
	for i, c := range f.candidates {
		if c.ID != id {
			continue
		}
		if name, ok := fields["name"].(string); ok {
			f.candidates[i].Name = name
		}
		if url, ok := fields["photo_url"].(string); ok {
			f.candidates[i].PhotoURL = url
		}

		return f.candidates[i], nil
	}

	return domain.Candidate{}, repository.ErrCandidateNotFound
}

func (f *fakeFullCandidateRepo) Delete(_ context.Context, id uint) error {
	for i, c := range f.candidates {
		if c.ID == id {
			f.candidates = append(f.candidates[:i], f.candidates[i+1:]...)

			return nil
		}
	}

	return repository.ErrCandidateNotFound
}

func (f *fakeFullCandidateRepo) ResetAllVotes(_ context.Context, newGeneration string) error {
	for i := range f.candidates {
		f.candidates[i].VoteCount = 0
	}
	f.lastGeneration = newGeneration

	return nil
}

func (f *fakeFullCandidateRepo) DeleteAll(_ context.Context, newGeneration string) error {
	f.candidates = nil
	f.lastGeneration = newGeneration

	return nil
}

type fakeUploader struct {
	lastPath        string
	lastContentType string
}

func (f *fakeUploader) Upload(_ context.Context, path, contentType string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.lastPath = path
	f.lastContentType = contentType

	return "https://cdn.example.com/" + path, nil
}

func TestCandidateService_ListCandidatesShuffled(t *testing.T) {
	repo := &fakeFullCandidateRepo{}
	for _, name := range []string{"Budi", "Sari", "Andi", "Dewi", "Eko"} {
		_, err := repo.Create(context.Background(), domain.Candidate{Name: name})
		require.NoError(t, err)
	}
	svc := NewCandidateService(repo, &fakeElectionRepo{generation: "gen-1"}, nil, nil)

	shuffled, err := svc.ListCandidatesShuffled(context.Background())
	require.NoError(t, err)

	// Order is randomized, membership is not.
	require.Len(t, shuffled, 5)
	names := make([]string, len(shuffled))
	for i, c := range shuffled {
		names[i] = c.Name
	}
	sort.Strings(names)
	assert.Equal(t, []string{"Andi", "Budi", "Dewi", "Eko", "Sari"}, names)
}

func TestCandidateService_UpdatePhoto(t *testing.T) {
	repo := &fakeFullCandidateRepo{}
	_, err := repo.Create(context.Background(), domain.Candidate{Name: "Budi"})
	require.NoError(t, err)

	uploader := &fakeUploader{}
	svc := NewCandidateService(repo, &fakeElectionRepo{generation: "gen-1"}, uploader, nil)

	updated, err := svc.UpdatePhoto(context.Background(), 1, "budi.jpg", "image/jpeg", strings.NewReader("fake-image-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "candidates/1/budi.jpg", uploader.lastPath)
	assert.Equal(t, "image/jpeg", uploader.lastContentType)
	assert.Equal(t, "https://cdn.example.com/candidates/1/budi.jpg", updated.PhotoURL)
}

func TestCandidateService_UpdatePhoto_UnknownCandidate(t *testing.T) {
	svc := NewCandidateService(&fakeFullCandidateRepo{}, &fakeElectionRepo{generation: "gen-1"}, &fakeUploader{}, nil)

	_, err := svc.UpdatePhoto(context.Background(), 42, "x.jpg", "image/jpeg", strings.NewReader("x"))
	assert.ErrorIs(t, err, repository.ErrCandidateNotFound)
}

func TestCandidateService_ResetAllVotes(t *testing.T) {
	repo := &fakeFullCandidateRepo{candidates: []domain.Candidate{
		{ID: 1, Name: "Budi", VoteCount: 7},
	}}
	publisher := &fakePublisher{}
	svc := NewCandidateService(repo, &fakeElectionRepo{generation: "gen-2"}, nil, publisher)

	require.NoError(t, svc.ResetAllVotes(context.Background()))

	assert.Zero(t, repo.candidates[0].VoteCount)
	assert.NotEmpty(t, repo.lastGeneration)
	require.Len(t, publisher.published, 1)
	assert.Zero(t, publisher.published[0].TotalVotes)
}

func TestCandidateService_DeleteAllCandidates(t *testing.T) {
	repo := &fakeFullCandidateRepo{candidates: []domain.Candidate{
		{ID: 1, Name: "Budi", VoteCount: 7},
	}}
	publisher := &fakePublisher{}
	svc := NewCandidateService(repo, &fakeElectionRepo{generation: "gen-2"}, nil, publisher)

	require.NoError(t, svc.DeleteAllCandidates(context.Background()))

	assert.Empty(t, repo.candidates)
	assert.NotEmpty(t, repo.lastGeneration)
	assert.Len(t, publisher.published, 1)
}
