package domain

import "time"

// Order is created for exactly one customer and never changes owner. The
// associated products form a set: the join table forbids duplicates.
type Order struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customerId"`
	ProductIDs []int64   `json:"productIds"`
	CreatedAt  time.Time `json:"createdAt"`
}
