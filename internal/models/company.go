package models

import "time"

type Company struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Logo      *string   `json:"logo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCompanyRequest struct {
	Name string  `json:"name"`
	Logo *string `json:"logo"`
}
