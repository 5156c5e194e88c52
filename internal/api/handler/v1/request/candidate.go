package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCandidateRequest struct {
	Name    string `json:"name"`
	Kelas   string `json:"kelas"`
	Vision  string `json:"vision"`
	Mission string `json:"mission"`
}

func (req *CreateCandidateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Kelas, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Vision, validation.Length(0, 2000)),
		validation.Field(&req.Mission, validation.Length(0, 2000)),
	)
}

// UpdateCandidateRequest carries a partial field merge; nil means "leave it".
type UpdateCandidateRequest struct {
	Name    *string `json:"name"`
	Kelas   *string `json:"kelas"`
	Vision  *string `json:"vision"`
	Mission *string `json:"mission"`
}

func (req *UpdateCandidateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&req.Kelas, validation.NilOrNotEmpty, validation.Length(1, 50)),
	)
}

// Fields returns the merge map for the repository layer.
func (req *UpdateCandidateRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Kelas != nil {
		fields["kelas"] = *req.Kelas
	}
	if req.Vision != nil {
		fields["vision"] = *req.Vision
	}
	if req.Mission != nil {
		fields["mission"] = *req.Mission
	}

	return fields
}
