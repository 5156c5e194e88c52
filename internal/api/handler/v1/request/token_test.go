package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTokenRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ValidateTokenRequest{Token: "ABC1!"}).Validate())
	// Blank tokens pass here so the ballot flow can answer with its own
	// "invalid" status instead of a 400.
	assert.NoError(t, (&ValidateTokenRequest{Token: ""}).Validate())

	assert.Error(t, (&ValidateTokenRequest{Token: strings.Repeat("A", 17)}).Validate())
}

func TestGenerateTokensRequest_Validate(t *testing.T) {
	assert.NoError(t, (&GenerateTokensRequest{Count: 1, Type: "student"}).Validate())
	assert.NoError(t, (&GenerateTokensRequest{Count: 5000, Type: "teacher"}).Validate())

	assert.Error(t, (&GenerateTokensRequest{Count: 0, Type: "student"}).Validate())
	assert.Error(t, (&GenerateTokensRequest{Count: 5001, Type: "student"}).Validate())
	assert.Error(t, (&GenerateTokensRequest{Count: 10, Type: "parent"}).Validate())
	assert.Error(t, (&GenerateTokensRequest{Count: 10}).Validate())
}

func TestUpdateTokenRequest_Validate(t *testing.T) {
	used := true
	assert.NoError(t, (&UpdateTokenRequest{Used: &used}).Validate())
	assert.Error(t, (&UpdateTokenRequest{}).Validate())
}

func TestConfirmVoteRequest_Validate(t *testing.T) {
	valid := ConfirmVoteRequest{TokenID: 1, Generation: "gen-1", CandidateID: 2}
	assert.NoError(t, valid.Validate())

	missingGeneration := ConfirmVoteRequest{TokenID: 1, CandidateID: 2}
	assert.Error(t, missingGeneration.Validate())

	missingCandidate := ConfirmVoteRequest{TokenID: 1, Generation: "gen-1"}
	assert.Error(t, missingCandidate.Validate())
}
