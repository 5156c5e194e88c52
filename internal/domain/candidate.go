package domain

import "time"

type Candidate struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Kelas     string    `json:"kelas"`
	Vision    string    `json:"vision"`
	Mission   string    `json:"mission"`
	PhotoURL  string    `json:"photo_url"`
	VoteCount int       `json:"vote_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RankedCandidate is one row of the final report, ordered by vote count.
type RankedCandidate struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	Kelas      string  `json:"kelas"`
	VoteCount  int     `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}
