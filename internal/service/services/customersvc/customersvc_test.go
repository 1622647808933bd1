package customersvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/backend-labs/admin/internal/service/models/auditlog"
	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
	"github.com/corray333/backend-labs/admin/pkg/phone"
)

type fakeCustomerRepo struct {
	customers map[string]customer.Customer
	nextID    int
	emails    map[string]bool
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers: map[string]customer.Customer{},
		emails:    map[string]bool{},
		nextID:    1,
	}
}

func (f *fakeCustomerRepo) Insert(_ context.Context, c customer.Customer) (customer.Customer, error) {
	if f.emails[c.Email] {
		return customer.Customer{}, customer.ErrEmailTaken
	}

	c.ID = "cust-" + string(rune('0'+f.nextID))
	f.nextID++
	f.customers[c.ID] = c
	f.emails[c.Email] = true

	return c, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, customer.ErrNotFound
	}

	return &c, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c customer.Customer) (*customer.Customer, error) {
	existing, ok := f.customers[c.ID]
	if !ok {
		return nil, customer.ErrNotFound
	}

	existing.FirstName = c.FirstName
	existing.LastName = c.LastName
	existing.Email = c.Email
	existing.Phone = c.Phone
	existing.Notes = c.Notes
	existing.UpdatedAt = c.UpdatedAt
	f.customers[c.ID] = existing

	return &existing, nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.customers[id]; !ok {
		return customer.ErrNotFound
	}
	delete(f.customers, id)

	return nil
}

func (f *fakeCustomerRepo) List(_ context.Context, _ customer.ListQuery) ([]customer.Customer, int64, error) {
	result := make([]customer.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		result = append(result, c)
	}

	return result, int64(len(result)), nil
}

func (f *fakeCustomerRepo) ApplyOrderDelta(_ context.Context, _ string, _ float64, _ int64, _ *time.Time) error {
	return nil
}

type fakeAuditRepo struct {
	events []auditlog.Event
}

func (f *fakeAuditRepo) Publish(_ context.Context, events ...auditlog.Event) error {
	f.events = append(f.events, events...)

	return nil
}

func newService(repo *fakeCustomerRepo, audit *fakeAuditRepo) *CustomerService {
	return MustNewCustomerService(
		WithCustomerRepository(repo),
		WithAuditRepository(audit),
		WithDefaultRegion("RU"),
	)
}

func TestCreateCustomer(t *testing.T) {
	repo := newFakeCustomerRepo()
	audit := &fakeAuditRepo{}
	svc := newService(repo, audit)

	created, err := svc.CreateCustomer(context.Background(), customer.Customer{
		FirstName:   "Boris",
		LastName:    "Petrov",
		Email:       "boris@example.com",
		Phone:       "8 (903) 123-45-67",
		Notes:       `vip <img src=x onerror=alert(1)>`,
		TotalAmount: 9999,
		OrderCount:  42,
	}, "admin@example.com")
	require.NoError(t, err)

	assert.Equal(t, "+79031234567", created.Phone)
	assert.NotContains(t, created.Notes, "onerror")
	assert.Zero(t, created.TotalAmount)
	assert.Zero(t, created.OrderCount)
	assert.Nil(t, created.LastOrderDate)
	assert.False(t, created.RegistrationDate.IsZero())

	require.Len(t, audit.events, 1)
	assert.Equal(t, "customer", audit.events[0].Entity)
	assert.Equal(t, auditlog.ActionCreated, audit.events[0].Action)
}

func TestCreateCustomer_InvalidPhone(t *testing.T) {
	repo := newFakeCustomerRepo()
	audit := &fakeAuditRepo{}
	svc := newService(repo, audit)

	_, err := svc.CreateCustomer(context.Background(), customer.Customer{
		FirstName: "Boris",
		Email:     "boris@example.com",
		Phone:     "not a phone",
	}, "admin@example.com")

	assert.ErrorIs(t, err, phone.ErrInvalid)
	assert.Empty(t, repo.customers)
	assert.Empty(t, audit.events)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	repo := newFakeCustomerRepo()
	audit := &fakeAuditRepo{}
	svc := newService(repo, audit)

	_, err := svc.CreateCustomer(context.Background(), customer.Customer{
		Email: "same@example.com",
		Phone: "+79031234567",
	}, "admin@example.com")
	require.NoError(t, err)

	_, err = svc.CreateCustomer(context.Background(), customer.Customer{
		Email: "same@example.com",
		Phone: "+79031234568",
	}, "admin@example.com")

	assert.ErrorIs(t, err, customer.ErrEmailTaken)
	require.Len(t, audit.events, 1)
}

func TestUpdateCustomer_KeepsStats(t *testing.T) {
	repo := newFakeCustomerRepo()
	audit := &fakeAuditRepo{}
	svc := newService(repo, audit)

	created, err := svc.CreateCustomer(context.Background(), customer.Customer{
		FirstName: "Boris",
		Email:     "boris@example.com",
		Phone:     "+79031234567",
	}, "admin@example.com")
	require.NoError(t, err)

	stored := repo.customers[created.ID]
	stored.TotalAmount = 150
	stored.OrderCount = 3
	repo.customers[created.ID] = stored

	updated, err := svc.UpdateCustomer(context.Background(), customer.Customer{
		ID:        created.ID,
		FirstName: "Boris",
		LastName:  "Sidorov",
		Email:     "boris@example.com",
		Phone:     "+7 903 123-45-67",
	}, "admin@example.com")
	require.NoError(t, err)

	assert.Equal(t, "Sidorov", updated.LastName)
	assert.Equal(t, "+79031234567", updated.Phone)
	assert.InDelta(t, 150.0, updated.TotalAmount, 1e-9)
	assert.Equal(t, int64(3), updated.OrderCount)

	require.Len(t, audit.events, 2)
	assert.Equal(t, auditlog.ActionUpdated, audit.events[1].Action)
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newService(repo, &fakeAuditRepo{})

	_, err := svc.UpdateCustomer(context.Background(), customer.Customer{
		ID:    "missing",
		Phone: "+79031234567",
	}, "admin@example.com")

	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestDeleteCustomer(t *testing.T) {
	repo := newFakeCustomerRepo()
	audit := &fakeAuditRepo{}
	svc := newService(repo, audit)

	created, err := svc.CreateCustomer(context.Background(), customer.Customer{
		Email: "boris@example.com",
		Phone: "+79031234567",
	}, "admin@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomer(context.Background(), created.ID, "admin@example.com"))

	assert.Empty(t, repo.customers)
	require.Len(t, audit.events, 2)
	assert.Equal(t, auditlog.ActionDeleted, audit.events[1].Action)
	assert.NotNil(t, audit.events[1].Payload)
}

func TestDeleteCustomer_NotFound(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newService(repo, &fakeAuditRepo{})

	err := svc.DeleteCustomer(context.Background(), "missing", "admin@example.com")

	assert.ErrorIs(t, err, customer.ErrNotFound)
}
