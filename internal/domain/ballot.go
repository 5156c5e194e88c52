package domain

// Validation outcomes for a presented token string.
const (
	BallotStatusValid       = "valid"
	BallotStatusInvalid     = "invalid"
	BallotStatusAlreadyUsed = "already_used"
)

// VoteSession is the value object carried between Validate and ConfirmVote.
// It is returned to the caller and presented back on confirm; nothing about
// an in-flight ballot lives in server state.
type VoteSession struct {
	TokenID    uint   `json:"token_id"`
	Generation string `json:"generation"`
}

// Tally is the full current result set, pushed to live subscribers on every
// change.
type Tally struct {
	Generation string       `json:"generation"`
	TotalVotes int          `json:"total_votes"`
	Candidates []TallyEntry `json:"candidates"`
}

type TallyEntry struct {
	CandidateID uint   `json:"candidate_id" mapstructure:"candidate_id"`
	Name        string `json:"name" mapstructure:"name"`
	VoteCount   int    `json:"vote_count" mapstructure:"vote_count"`
}
