package domain

import "time"

// Election is a singleton row whose Generation changes whenever an admin
// performs a bulk reset. Ballot sessions carry the generation they were
// validated against and are rejected if it has moved on.
type Election struct {
	ID         uint      `json:"id"`
	Generation string    `json:"generation"`
	UpdatedAt  time.Time `json:"updated_at"`
}
