package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/repository"
)

var (
	ErrTokenNotFound    = repository.ErrTokenNotFound
	ErrTokenAlreadyUsed = repository.ErrTokenAlreadyUsed
	ErrStaleSession     = errors.New("ballot session is stale")
)

type BallotTokenRepository interface {
	FindByString(ctx context.Context, tokenString string) (domain.Token, error)
	Consume(ctx context.Context, tokenID, candidateID uint) error
}

type BallotCandidateRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Candidate, error)
	ListAll(ctx context.Context) ([]domain.Candidate, error)
}

type ElectionRepository interface {
	Get(ctx context.Context) (domain.Election, error)
}

// TallyPublisher pushes the full current tally to live subscribers. Publish
// failures never fail the vote; the vote is already durable.
type TallyPublisher interface {
	Publish(ctx context.Context, tally domain.Tally) error
}

type BallotService struct {
	tokenRepo     BallotTokenRepository
	candidateRepo BallotCandidateRepository
	electionRepo  ElectionRepository
	publisher     TallyPublisher
}

func NewBallotService(tokenRepo BallotTokenRepository, candidateRepo BallotCandidateRepository, electionRepo ElectionRepository, publisher TallyPublisher) *BallotService {
	return &BallotService{
		tokenRepo:     tokenRepo,
		candidateRepo: candidateRepo,
		electionRepo:  electionRepo,
		publisher:     publisher,
	}
}

// Validate checks a presented token string. An unknown string yields
// ErrTokenNotFound, a spent one ErrTokenAlreadyUsed. On success the returned
// session carries the token id and the current election generation; the
// caller holds it through candidate selection and presents it at confirm.
func (s *BallotService) Validate(ctx context.Context, tokenString string) (domain.VoteSession, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return domain.VoteSession{}, ErrTokenNotFound
	}

	token, err := s.tokenRepo.FindByString(ctx, tokenString)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return domain.VoteSession{}, ErrTokenNotFound
		}

		return domain.VoteSession{}, fmt.Errorf("s.tokenRepo.FindByString -> %w", err)
	}

	if token.Used {
		return domain.VoteSession{}, ErrTokenAlreadyUsed
	}

	election, err := s.electionRepo.Get(ctx)
	if err != nil {
		return domain.VoteSession{}, fmt.Errorf("s.electionRepo.Get -> %w", err)
	}

	return domain.VoteSession{
		TokenID:    token.ID,
		Generation: election.Generation,
	}, nil
}

// ConfirmVote spends the session's token on the chosen candidate. The token
// flip and the vote increment happen in one conditional transaction, so a
// token validated twice in separate sessions can only ever be counted once,
// and there is no partially applied state to compensate for.
func (s *BallotService) ConfirmVote(ctx context.Context, session domain.VoteSession, candidateID uint) error {
	election, err := s.electionRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("s.electionRepo.Get -> %w", err)
	}
	if session.Generation != election.Generation {
		return ErrStaleSession
	}

	if _, err = s.candidateRepo.FindByID(ctx, candidateID); err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return ErrCandidateNotFound
		}

		return fmt.Errorf("s.candidateRepo.FindByID -> %w", err)
	}

	if err = s.tokenRepo.Consume(ctx, session.TokenID, candidateID); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return ErrTokenNotFound
		}
		if errors.Is(err, repository.ErrTokenAlreadyUsed) {
			return ErrTokenAlreadyUsed
		}

		return fmt.Errorf("s.tokenRepo.Consume -> %w", err)
	}

	publishTally(ctx, s.candidateRepo, s.electionRepo, s.publisher)

	return nil
}

// Tally returns the full current result set.
func (s *BallotService) Tally(ctx context.Context) (domain.Tally, error) {
	return buildTally(ctx, s.candidateRepo, s.electionRepo)
}

func buildTally(ctx context.Context, candidateRepo BallotCandidateRepository, electionRepo ElectionRepository) (domain.Tally, error) {
	candidates, err := candidateRepo.ListAll(ctx)
	if err != nil {
		return domain.Tally{}, fmt.Errorf("candidateRepo.ListAll -> %w", err)
	}

	election, err := electionRepo.Get(ctx)
	if err != nil {
		return domain.Tally{}, fmt.Errorf("electionRepo.Get -> %w", err)
	}

	tally := domain.Tally{
		Generation: election.Generation,
		Candidates: make([]domain.TallyEntry, len(candidates)),
	}
	for i, c := range candidates {
		tally.Candidates[i] = domain.TallyEntry{
			CandidateID: c.ID,
			Name:        c.Name,
			VoteCount:   c.VoteCount,
		}
		tally.TotalVotes += c.VoteCount
	}

	return tally, nil
}

func publishTally(ctx context.Context, candidateRepo BallotCandidateRepository, electionRepo ElectionRepository, publisher TallyPublisher) {
	if publisher == nil {
		return
	}

	tally, err := buildTally(ctx, candidateRepo, electionRepo)
	if err != nil {
		zap.L().Warn("failed to build tally for live feed", zap.Error(err))
		return
	}

	if err = publisher.Publish(ctx, tally); err != nil {
		zap.L().Warn("failed to publish tally", zap.Error(err))
	}
}
