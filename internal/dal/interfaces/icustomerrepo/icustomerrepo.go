package icustomerrepo

import (
	"context"
	"time"

	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
)

// ICustomerRepository is an interface for the customer storage.
type ICustomerRepository interface {
	Insert(ctx context.Context, c customer.Customer) (customer.Customer, error)
	GetByID(ctx context.Context, id string) (*customer.Customer, error)
	Update(ctx context.Context, c customer.Customer) (*customer.Customer, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q customer.ListQuery) ([]customer.Customer, int64, error)

	// ApplyOrderDelta shifts the denormalized order stats after an order
	// mutation. orderDate, when set, becomes the new lastOrderDate.
	ApplyOrderDelta(ctx context.Context, id string, amountDelta float64, countDelta int64, orderDate *time.Time) error
}
