package domain

import "time"

// Customer owns zero or more orders. Email is unique across all customers.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
