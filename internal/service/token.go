package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/sekolahvote/pemira-api/internal/domain"
)

const (
	tokenLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	tokenDigits  = "0123456789"
	tokenSymbols = "!&@#"
)

type TokenRepository interface {
	CreateBatch(ctx context.Context, tokens []domain.Token) ([]domain.Token, error)
	ListAll(ctx context.Context) ([]domain.Token, error)
	MarkUsed(ctx context.Context, id uint) (domain.Token, error)
	Release(ctx context.Context, id uint) (domain.Token, error)
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context, newGeneration string) error
}

type TokenService struct {
	repo          TokenRepository
	candidateRepo BallotCandidateRepository
	electionRepo  ElectionRepository
	publisher     TallyPublisher
}

func NewTokenService(repo TokenRepository, candidateRepo BallotCandidateRepository, electionRepo ElectionRepository, publisher TallyPublisher) *TokenService {
	return &TokenService{
		repo:          repo,
		candidateRepo: candidateRepo,
		electionRepo:  electionRepo,
		publisher:     publisher,
	}
}

// GenerateBatch creates count tokens of the given category and persists them
// in one batch insert. The plaintext strings come back for export; after
// that only the store knows them.
//
// Generation does not check for collisions against existing tokens. The
// keyspace (26^3 letters x 10 digits x 4 symbols x 5! orderings) is around
// 1.4e9 strings, so a duplicate inside a batch of a few hundred is unlikely
// but not impossible. Accepted risk.
func (s *TokenService) GenerateBatch(ctx context.Context, count int, tokenType string) (domain.TokenBatch, error) {
	tokens := make([]domain.Token, count)
	strings := make([]string, count)
	for i := 0; i < count; i++ {
		strings[i] = generateTokenString()
		tokens[i] = domain.Token{
			Token:         strings[i],
			Type:          tokenType,
			OriginalIndex: i + 1,
		}
	}

	if _, err := s.repo.CreateBatch(ctx, tokens); err != nil {
		return domain.TokenBatch{}, fmt.Errorf("s.repo.CreateBatch -> %w", err)
	}

	return domain.TokenBatch{
		Type:   tokenType,
		Tokens: strings,
	}, nil
}

// generateTokenString builds a 5-character token: 3 uppercase letters,
// 1 digit, 1 symbol from {!,&,@,#}, shuffled. Entropy is non-cryptographic;
// a token gates one vote in a school election, not a bank account.
func generateTokenString() string {
	chars := make([]byte, 5)
	for i := 0; i < 3; i++ {
		chars[i] = tokenLetters[rand.Intn(len(tokenLetters))]
	}
	chars[3] = tokenDigits[rand.Intn(len(tokenDigits))]
	chars[4] = tokenSymbols[rand.Intn(len(tokenSymbols))]

	rand.Shuffle(len(chars), func(i, j int) {
		chars[i], chars[j] = chars[j], chars[i]
	})

	return string(chars)
}

func (s *TokenService) ListTokens(ctx context.Context) ([]domain.Token, error) {
	tokens, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	return tokens, nil
}

// SetUsed toggles a token's status. Marking used is a plain administrative
// override: no candidate bound, no vote counted. Un-marking releases the
// token and reverses the bound candidate's vote, if any.
func (s *TokenService) SetUsed(ctx context.Context, id uint, used bool) (domain.Token, error) {
	if used {
		token, err := s.repo.MarkUsed(ctx, id)
		if err != nil {
			return domain.Token{}, fmt.Errorf("s.repo.MarkUsed -> %w", err)
		}

		return token, nil
	}

	token, err := s.repo.Release(ctx, id)
	if err != nil {
		return domain.Token{}, fmt.Errorf("s.repo.Release -> %w", err)
	}

	publishTally(ctx, s.candidateRepo, s.electionRepo, s.publisher)

	return token, nil
}

func (s *TokenService) DeleteToken(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *TokenService) DeleteAllTokens(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx, uuid.NewString()); err != nil {
		return fmt.Errorf("s.repo.DeleteAll -> %w", err)
	}

	return nil
}

// ExportCSV renders the stored tokens of one category as the download the
// admin hands out: a `Token` header line followed by one token per line.
func (s *TokenService) ExportCSV(ctx context.Context, tokenType string) ([]byte, string, error) {
	tokens, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err = w.Write([]string{"Token"}); err != nil {
		return nil, "", fmt.Errorf("w.Write -> %w", err)
	}
	for _, t := range tokens {
		if tokenType != "" && t.Type != tokenType {
			continue
		}
		if err = w.Write([]string{t.Token}); err != nil {
			return nil, "", fmt.Errorf("w.Write -> %w", err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return nil, "", fmt.Errorf("w.Error -> %w", err)
	}

	filename := "voting_tokens.csv"
	if tokenType != "" {
		filename = tokenType + "_tokens.csv"
	}

	return buf.Bytes(), filename, nil
}
