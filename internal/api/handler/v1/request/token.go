package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/sekolahvote/pemira-api/internal/domain"
)

type GenerateTokensRequest struct {
	Count int    `json:"count"`
	Type  string `json:"type"`
}

func (req *GenerateTokensRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Count, validation.Required, validation.Min(1), validation.Max(5000)),
		validation.Field(&req.Type, validation.Required, validation.In(domain.TokenTypeStudent, domain.TokenTypeTeacher)),
	)
}

type UpdateTokenRequest struct {
	Used *bool `json:"used"`
}

func (req *UpdateTokenRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Used, validation.NotNil),
	)
}
