package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahvote/pemira-api/internal/domain"
)

func TestDecodeMeta(t *testing.T) {
	tally := domain.Tally{}

	err := decodeMeta(map[string]string{
		"generation":  "gen-1",
		"total_votes": "42",
	}, &tally)
	require.NoError(t, err)

	assert.Equal(t, "gen-1", tally.Generation)
	assert.Equal(t, 42, tally.TotalVotes)
}

func TestDecodeMeta_BadCount(t *testing.T) {
	tally := domain.Tally{}

	err := decodeMeta(map[string]string{
		"generation":  "gen-1",
		"total_votes": "not-a-number",
	}, &tally)
	assert.Error(t, err)
}
