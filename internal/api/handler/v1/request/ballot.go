package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type ValidateTokenRequest struct {
	Token string `json:"token"`
}

func (req *ValidateTokenRequest) Validate() error {
	// An empty token is a domain outcome (status "invalid"), not a bad
	// request, so the string is only capped here, never required.
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Token, validation.Length(0, 16)),
	)
}

type ConfirmVoteRequest struct {
	TokenID     uint   `json:"token_id"`
	Generation  string `json:"generation"`
	CandidateID uint   `json:"candidate_id"`
}

func (req *ConfirmVoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TokenID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Generation, validation.Required),
		validation.Field(&req.CandidateID, validation.Required, validation.Min(uint(1))),
	)
}
