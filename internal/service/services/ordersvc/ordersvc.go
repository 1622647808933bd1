package ordersvc

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/corray333/backend-labs/admin/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/backend-labs/admin/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/backend-labs/admin/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/admin/internal/service/models/auditlog"
	"github.com/corray333/backend-labs/admin/internal/service/models/order"
	"github.com/corray333/backend-labs/admin/pkg/sanitize"
)

// OrderService manages orders for the admin panel.
type OrderService struct {
	orderRepo    iorderrepo.IOrderRepository
	customerRepo icustomerrepo.ICustomerRepository
	auditRepo    iauditrepo.IAuditRepository
	tx           transactor
}

type transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithOrderRepository sets the order storage for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

// WithCustomerRepository sets the customer storage for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCustomerRepository(repo icustomerrepo.ICustomerRepository) option {
	return func(s *OrderService) {
		s.customerRepo = repo
	}
}

// WithAuditRepository sets the audit event publisher for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditRepository(repo iauditrepo.IAuditRepository) option {
	return func(s *OrderService) {
		s.auditRepo = repo
	}
}

// WithTransactor sets the transaction runner for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTransactor(tx transactor) option {
	return func(s *OrderService) {
		s.tx = tx
	}
}

// ListOrders returns one page of orders matching the query and the total
// match count.
func (s *OrderService) ListOrders(ctx context.Context, q order.ListQuery) ([]order.Order, int64, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.ListOrders")
	defer span.End()

	return s.orderRepo.List(ctx, q)
}

// GetOrder returns a single order by id.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.GetOrder")
	defer span.End()

	return s.orderRepo.GetByID(ctx, id)
}

// CreateOrder stores a new order and shifts the owning customer's lifetime
// stats in the same transaction.
func (s *OrderService) CreateOrder(ctx context.Context, o order.Order, actor string) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	now := time.Now()

	cust, err := s.customerRepo.GetByID(ctx, o.CustomerID)
	if err != nil {
		return order.Order{}, err
	}

	number, err := s.orderRepo.NextOrderNumber(ctx)
	if err != nil {
		return order.Order{}, err
	}

	o.OrderNumber = number
	o.CustomerName = cust.FirstName + " " + cust.LastName
	o.Notes = sanitize.RichText(o.Notes)
	o.TotalAmount = itemsTotal(o)
	if o.Status == "" {
		o.Status = order.StatusPending
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = now
	}
	o.CreatedAt = now
	o.UpdatedAt = now

	var created order.Order
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.orderRepo.Insert(txCtx, o)
		if err != nil {
			return err
		}

		return s.customerRepo.ApplyOrderDelta(txCtx, o.CustomerID, o.TotalAmount, 1, &o.OrderDate)
	})
	if err != nil {
		return order.Order{}, err
	}

	s.audit(ctx, created.ID, auditlog.ActionCreated, actor, created)

	return created, nil
}

// UpdateOrder overwrites the editable fields of an order. The owning customer
// and the order number never change; a totalAmount shift is mirrored onto the
// customer's lifetime stats in the same transaction.
func (s *OrderService) UpdateOrder(ctx context.Context, o order.Order, actor string) (*order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.UpdateOrder")
	defer span.End()

	existing, err := s.orderRepo.GetByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	o.OrderNumber = existing.OrderNumber
	o.CustomerID = existing.CustomerID
	o.CustomerName = existing.CustomerName
	o.CreatedAt = existing.CreatedAt
	o.UpdatedAt = time.Now()
	o.Notes = sanitize.RichText(o.Notes)
	o.TotalAmount = itemsTotal(o)

	var updated *order.Order
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		updated, err = s.orderRepo.Update(txCtx, o)
		if err != nil {
			return err
		}

		if delta := o.TotalAmount - existing.TotalAmount; delta != 0 {
			return s.customerRepo.ApplyOrderDelta(txCtx, existing.CustomerID, delta, 0, nil)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, updated.ID, auditlog.ActionUpdated, actor, updated)

	return updated, nil
}

// DeleteOrder removes an order and takes it back out of the owning
// customer's lifetime stats in the same transaction.
func (s *OrderService) DeleteOrder(ctx context.Context, id string, actor string) error {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.DeleteOrder")
	defer span.End()

	var existing *order.Order

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		existing, err = s.orderRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Delete(txCtx, id); err != nil {
			return err
		}

		return s.customerRepo.ApplyOrderDelta(txCtx, existing.CustomerID, -existing.TotalAmount, -1, nil)
	})
	if err != nil {
		return err
	}

	s.audit(ctx, id, auditlog.ActionDeleted, actor, existing)

	return nil
}

func (s *OrderService) audit(ctx context.Context, id string, action auditlog.Action, actor string, payload any) {
	if s.auditRepo == nil {
		return
	}

	event := auditlog.Event{
		Entity:     "order",
		EntityID:   id,
		Action:     action,
		Actor:      actor,
		OccurredAt: time.Now(),
		Payload:    payload,
	}

	if err := s.auditRepo.Publish(ctx, event); err != nil {
		slog.Error("Failed to record audit event",
			"entity", "order",
			"entity_id", id,
			"action", action,
			"error", err,
		)
	}
}

func itemsTotal(o order.Order) float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Subtotal()
	}

	return total
}
