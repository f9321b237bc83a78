package api

import "time"

type Dataset struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Source      string     `json:"source,omitempty"`
	RecordCount int64      `json:"record_count"`
	FirstDate   *time.Time `json:"first_date,omitempty"`
	LastDate    *time.Time `json:"last_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type FilterOptions struct {
	HSCodes         []string `json:"hs_codes"`
	Categories      []string `json:"categories"`
	OriginCountries []string `json:"origin_countries"`
}
