package customersvc

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/corray333/backend-labs/admin/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/backend-labs/admin/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/backend-labs/admin/internal/service/models/auditlog"
	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
	"github.com/corray333/backend-labs/admin/pkg/phone"
	"github.com/corray333/backend-labs/admin/pkg/sanitize"
)

// CustomerService manages the customer directory for the admin panel.
type CustomerService struct {
	customerRepo  icustomerrepo.ICustomerRepository
	auditRepo     iauditrepo.IAuditRepository
	defaultRegion string
}

// option is a function that configures the CustomerService.
type option func(*CustomerService)

// MustNewCustomerService creates a new CustomerService.
func MustNewCustomerService(opts ...option) *CustomerService {
	s := &CustomerService{
		defaultRegion: "RU",
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithCustomerRepository sets the customer storage for the CustomerService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCustomerRepository(repo icustomerrepo.ICustomerRepository) option {
	return func(s *CustomerService) {
		s.customerRepo = repo
	}
}

// WithAuditRepository sets the audit event publisher for the CustomerService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditRepository(repo iauditrepo.IAuditRepository) option {
	return func(s *CustomerService) {
		s.auditRepo = repo
	}
}

// WithDefaultRegion sets the region used to parse phone numbers written in
// national format.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDefaultRegion(region string) option {
	return func(s *CustomerService) {
		s.defaultRegion = region
	}
}

// ListCustomers returns one page of customers matching the query and the
// total match count.
func (s *CustomerService) ListCustomers(ctx context.Context, q customer.ListQuery) ([]customer.Customer, int64, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CustomerService.ListCustomers")
	defer span.End()

	return s.customerRepo.List(ctx, q)
}

// GetCustomer returns a single customer by id.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CustomerService.GetCustomer")
	defer span.End()

	return s.customerRepo.GetByID(ctx, id)
}

// CreateCustomer stores a new customer. The phone number is canonicalized,
// notes are sanitized and the lifetime order stats start at zero.
func (s *CustomerService) CreateCustomer(ctx context.Context, c customer.Customer, actor string) (customer.Customer, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CustomerService.CreateCustomer")
	defer span.End()

	normalized, err := phone.Normalize(c.Phone, s.defaultRegion)
	if err != nil {
		return customer.Customer{}, err
	}

	now := time.Now()

	c.Phone = normalized
	c.Notes = sanitize.RichText(c.Notes)
	c.TotalAmount = 0
	c.OrderCount = 0
	c.LastOrderDate = nil
	if c.RegistrationDate.IsZero() {
		c.RegistrationDate = now
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	created, err := s.customerRepo.Insert(ctx, c)
	if err != nil {
		return customer.Customer{}, err
	}

	s.audit(ctx, created.ID, auditlog.ActionCreated, actor, created)

	return created, nil
}

// UpdateCustomer overwrites the profile fields of a customer. Lifetime order
// stats are derived from order mutations and cannot be edited here.
func (s *CustomerService) UpdateCustomer(ctx context.Context, c customer.Customer, actor string) (*customer.Customer, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CustomerService.UpdateCustomer")
	defer span.End()

	normalized, err := phone.Normalize(c.Phone, s.defaultRegion)
	if err != nil {
		return nil, err
	}

	c.Phone = normalized
	c.Notes = sanitize.RichText(c.Notes)
	c.UpdatedAt = time.Now()

	updated, err := s.customerRepo.Update(ctx, c)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, updated.ID, auditlog.ActionUpdated, actor, updated)

	return updated, nil
}

// DeleteCustomer removes a customer. Their orders stay behind as historical
// records carrying the denormalized customer name.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string, actor string) error {
	ctx, span := otel.Tracer("service").Start(ctx, "CustomerService.DeleteCustomer")
	defer span.End()

	existing, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit(ctx, id, auditlog.ActionDeleted, actor, existing)

	return nil
}

func (s *CustomerService) audit(ctx context.Context, id string, action auditlog.Action, actor string, payload any) {
	if s.auditRepo == nil {
		return
	}

	event := auditlog.Event{
		Entity:     "customer",
		EntityID:   id,
		Action:     action,
		Actor:      actor,
		OccurredAt: time.Now(),
		Payload:    payload,
	}

	if err := s.auditRepo.Publish(ctx, event); err != nil {
		slog.Error("Failed to record audit event",
			"entity", "customer",
			"entity_id", id,
			"action", action,
			"error", err,
		)
	}
}
