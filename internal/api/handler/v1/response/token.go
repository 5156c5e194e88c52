package response

import "github.com/sekolahvote/pemira-api/internal/domain"

type GenerateTokensResponse struct {
	Type      string   `json:"type"`
	Generated int      `json:"generated"`
	Tokens    []string `json:"tokens"`
}

type ReportResponse struct {
	SchoolName string                   `json:"school_name"`
	TotalVotes int                      `json:"total_votes"`
	Ranking    []domain.RankedCandidate `json:"ranking"`
}
