package response

import "github.com/sekolahvote/pemira-api/internal/domain"

// User-facing ballot messages, kept verbatim from the voting pages.
const (
	MsgTokenValid       = "token valid"
	MsgTokenInvalid     = "token tidak valid"
	MsgTokenAlreadyUsed = "token sudah digunakan"
	MsgThankYou         = "Terima Kasih Sudah Melakukan Voting"
)

type ValidateTokenResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Session *domain.VoteSession `json:"session,omitempty"`
}

type ConfirmVoteResponse struct {
	Message         string `json:"message"`
	RedirectSeconds int    `json:"redirect_seconds"`
}
