package customer

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("customer not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Customer is a shopper profile with order stats denormalized onto it so
// listings can filter and sort without joins.
type Customer struct {
	ID               string     `json:"id"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	RegistrationDate time.Time  `json:"registrationDate"`
	LastOrderDate    *time.Time `json:"lastOrderDate,omitempty"`
	TotalAmount      float64    `json:"totalAmount"`
	OrderCount       int64      `json:"orderCount"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
