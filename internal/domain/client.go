package domain

import "time"

type Client struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}

type Freelancer struct {
	ID               int32     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Specialty        string    `json:"specialty,omitempty"`
	DefaultRateCents *int64    `json:"default_rate_cents,omitempty"`
	CreatedOn        time.Time `json:"created_on"`
}
