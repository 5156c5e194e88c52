package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateDAO_Update(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	candidateDAO := NewCandidateDAO(db)
	tokenDAO := NewTokenDAO(db)

	candidate := seedCandidate(t, candidateDAO, "Budi")
	token := seedToken(t, tokenDAO, "ABC1!")
	require.NoError(t, tokenDAO.Consume(ctx, token.ID, candidate.ID))

	updated, err := candidateDAO.Update(ctx, candidate.ID, map[string]interface{}{
		"name":       "Budi Santoso",
		"vote_count": 999,
	})
	require.NoError(t, err)

	assert.Equal(t, "Budi Santoso", updated.Name)
	assert.Equal(t, 1, updated.VoteCount, "an edit must never touch the tally")
}

func TestCandidateDAO_ResetAllVotes(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	candidateDAO := NewCandidateDAO(db)
	tokenDAO := NewTokenDAO(db)
	electionDAO := NewElectionDAO(db)

	before, err := electionDAO.Get(ctx)
	require.NoError(t, err)

	first := seedCandidate(t, candidateDAO, "Budi")
	second := seedCandidate(t, candidateDAO, "Sari")
	tokenA := seedToken(t, tokenDAO, "ABC1!")
	tokenB := seedToken(t, tokenDAO, "XYZ9#")
	require.NoError(t, tokenDAO.Consume(ctx, tokenA.ID, first.ID))
	require.NoError(t, tokenDAO.Consume(ctx, tokenB.ID, second.ID))

	require.NoError(t, candidateDAO.ResetAllVotes(ctx, "gen-2"))

	candidates, err := candidateDAO.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	for _, c := range candidates {
		assert.Equal(t, 0, c.VoteCount)
	}

	// Tokens keep their state; only the counts are wiped.
	tokens, err := tokenDAO.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	for _, tok := range tokens {
		assert.True(t, tok.Used)
	}

	after, err := electionDAO.Get(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before.Generation, after.Generation)
}

func TestCandidateDAO_DeleteAll(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	candidateDAO := NewCandidateDAO(db)
	electionDAO := NewElectionDAO(db)

	before, err := electionDAO.Get(ctx)
	require.NoError(t, err)

	seedCandidate(t, candidateDAO, "Budi")
	seedCandidate(t, candidateDAO, "Sari")

	require.NoError(t, candidateDAO.DeleteAll(ctx, "gen-2"))

	candidates, err := candidateDAO.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, candidates)

	after, err := electionDAO.Get(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before.Generation, after.Generation)
}
