package response

import "github.com/sekolahvote/pemira-api/internal/domain"

type LoginResponse struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}
