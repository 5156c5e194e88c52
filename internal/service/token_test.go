package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/repository"
)

type fakeFullTokenRepo struct {
	stored         []domain.Token
	lastGeneration string
}

func (f *fakeFullTokenRepo) CreateBatch(_ context.Context, tokens []domain.Token) ([]domain.Token, error) {
	for i := range tokens {
		tokens[i].ID = uint(len(f.stored) + 1)
		f.stored = append(f.stored, tokens[i])
	}

	return tokens, nil
}

func (f *fakeFullTokenRepo) ListAll(_ context.Context) ([]domain.Token, error) {
	return f.stored, nil
}

func (f *fakeFullTokenRepo) MarkUsed(_ context.Context, id uint) (domain.Token, error) {
	for i, tok := range f.stored {
		if tok.ID == id {
			if tok.Used {
				return domain.Token{}, repository.ErrTokenAlreadyUsed
			}
			f.stored[i].Used = true

			return f.stored[i], nil
		}
	}

	return domain.Token{}, repository.ErrTokenNotFound
}

func (f *fakeFullTokenRepo) Release(_ context.Context, id uint) (domain.Token, error) {
	for i, tok := range f.stored {
		if tok.ID == id {
			f.stored[i].Used = false
			f.stored[i].CandidateID = nil

			return f.stored[i], nil
		}
	}

	return domain.Token{}, repository.ErrTokenNotFound
}

func (f *fakeFullTokenRepo) Delete(_ context.Context, id uint) error {
	for i, tok := range f.stored {
		if tok.ID == id {
			f.stored = append(f.stored[:i], f.stored[i+1:]...)

			return nil
		}
	}

	return repository.ErrTokenNotFound
}

func (f *fakeFullTokenRepo) DeleteAll(_ context.Context, newGeneration string) error {
	f.stored = nil
	f.lastGeneration = newGeneration

	return nil
}

func TestGenerateTokenString(t *testing.T) {
	for i := 0; i < 200; i++ {
		token := generateTokenString()

		assert.Len(t, token, 5)

		letters, digits, symbols := 0, 0, 0
		for _, r := range token {
			switch {
			case strings.ContainsRune(tokenLetters, r):
				letters++
			case strings.ContainsRune(tokenDigits, r):
				digits++
			case strings.ContainsRune(tokenSymbols, r):
				symbols++
			default:
				t.Fatalf("unexpected character %q in token %q", r, token)
			}
		}

		assert.Equal(t, 3, letters, "token %q", token)
		assert.Equal(t, 1, digits, "token %q", token)
		assert.Equal(t, 1, symbols, "token %q", token)
	}
}

func TestTokenService_GenerateBatch(t *testing.T) {
	repo := &fakeFullTokenRepo{}
	svc := NewTokenService(repo, &fakeCandidateRepo{}, &fakeElectionRepo{generation: "gen-1"}, nil)

	batch, err := svc.GenerateBatch(context.Background(), 50, domain.TokenTypeStudent)
	require.NoError(t, err)

	assert.Equal(t, domain.TokenTypeStudent, batch.Type)
	assert.Len(t, batch.Tokens, 50)
	require.Len(t, repo.stored, 50)

	// Stored tokens remember their position in the batch for the export.
	for i, tok := range repo.stored {
		assert.Equal(t, i+1, tok.OriginalIndex)
		assert.Equal(t, batch.Tokens[i], tok.Token)
		assert.False(t, tok.Used)
	}
}

func TestTokenService_SetUsed(t *testing.T) {
	ctx := context.Background()

	t.Run("marking used is a plain override", func(t *testing.T) {
		repo := &fakeFullTokenRepo{stored: []domain.Token{{ID: 1, Token: "ABC1!"}}}
		publisher := &fakePublisher{}
		svc := NewTokenService(repo, &fakeCandidateRepo{}, &fakeElectionRepo{generation: "gen-1"}, publisher)

		token, err := svc.SetUsed(ctx, 1, true)
		require.NoError(t, err)
		assert.True(t, token.Used)
		assert.Empty(t, publisher.published, "no vote moved, nothing to broadcast")
	})

	t.Run("marking an already used token conflicts", func(t *testing.T) {
		repo := &fakeFullTokenRepo{stored: []domain.Token{{ID: 1, Token: "ABC1!", Used: true}}}
		svc := NewTokenService(repo, &fakeCandidateRepo{}, &fakeElectionRepo{generation: "gen-1"}, nil)

		_, err := svc.SetUsed(ctx, 1, true)
		assert.ErrorIs(t, err, ErrTokenAlreadyUsed)
	})

	t.Run("releasing broadcasts the corrected tally", func(t *testing.T) {
		candidateID := uint(10)
		repo := &fakeFullTokenRepo{stored: []domain.Token{{ID: 1, Token: "ABC1!", Used: true, CandidateID: &candidateID}}}
		publisher := &fakePublisher{}
		svc := NewTokenService(repo, &fakeCandidateRepo{}, &fakeElectionRepo{generation: "gen-1"}, publisher)

		token, err := svc.SetUsed(ctx, 1, false)
		require.NoError(t, err)
		assert.False(t, token.Used)
		assert.Nil(t, token.CandidateID)
		assert.Len(t, publisher.published, 1)
	})
}

func TestTokenService_DeleteAllTokens(t *testing.T) {
	repo := &fakeFullTokenRepo{stored: []domain.Token{{ID: 1, Token: "ABC1!"}}}
	svc := NewTokenService(repo, &fakeCandidateRepo{}, &fakeElectionRepo{generation: "gen-1"}, nil)

	require.NoError(t, svc.DeleteAllTokens(context.Background()))

	assert.Empty(t, repo.stored)
	assert.NotEmpty(t, repo.lastGeneration, "a wipe must move the election to a new generation")
}

func TestTokenService_ExportCSV(t *testing.T) {
	repo := &fakeFullTokenRepo{stored: []domain.Token{
		{ID: 1, Token: "ABC1!", Type: domain.TokenTypeStudent},
		{ID: 2, Token: "XYZ9#", Type: domain.TokenTypeTeacher},
		{ID: 3, Token: "QWE2@", Type: domain.TokenTypeStudent},
	}}
	svc := NewTokenService(repo, &fakeCandidateRepo{}, &fakeElectionRepo{generation: "gen-1"}, nil)

	t.Run("one category", func(t *testing.T) {
		data, filename, err := svc.ExportCSV(context.Background(), domain.TokenTypeStudent)
		require.NoError(t, err)

		assert.Equal(t, "student_tokens.csv", filename)
		assert.Equal(t, "Token\nABC1!\nQWE2@\n", string(data))
	})

	t.Run("all tokens", func(t *testing.T) {
		data, filename, err := svc.ExportCSV(context.Background(), "")
		require.NoError(t, err)

		assert.Equal(t, "voting_tokens.csv", filename)
		assert.Equal(t, "Token\nABC1!\nXYZ9#\nQWE2@\n", string(data))
	})
}
