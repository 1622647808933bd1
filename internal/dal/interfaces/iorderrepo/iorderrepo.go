package iorderrepo

import (
	"context"

	"github.com/corray333/backend-labs/admin/internal/service/models/order"
)

// IOrderRepository is an interface for the order storage.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	GetByID(ctx context.Context, id string) (*order.Order, error)
	Update(ctx context.Context, o order.Order) (*order.Order, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q order.ListQuery) ([]order.Order, int64, error)
	NextOrderNumber(ctx context.Context) (int64, error)
}
