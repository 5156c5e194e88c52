package domain

import "time"

const (
	TokenTypeStudent = "student"
	TokenTypeTeacher = "teacher"
)

// Token is a single-use voting credential. CandidateID is non-nil only
// once Used is true.
type Token struct {
	ID            uint      `json:"id"`
	Token         string    `json:"token"`
	Used          bool      `json:"used"`
	CandidateID   *uint     `json:"candidate_id"`
	Type          string    `json:"type"`
	OriginalIndex int       `json:"original_index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TokenBatch holds the plaintext strings of a freshly generated batch,
// kept around only long enough to export them.
type TokenBatch struct {
	Type   string   `json:"type"`
	Tokens []string `json:"tokens"`
}
