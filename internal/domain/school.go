package domain

import "time"

// SchoolInfo is a singleton record shown on the landing and ballot pages.
type SchoolInfo struct {
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url"`
	UpdatedAt time.Time `json:"updated_at"`
}
