package listcustomers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
	"github.com/corray333/backend-labs/admin/pkg/queryparams"
)

type stubService struct {
	gotQuery  *customer.ListQuery
	customers []customer.Customer
	total     int64
	err       error
}

func (s *stubService) ListCustomers(_ context.Context, q customer.ListQuery) ([]customer.Customer, int64, error) {
	s.gotQuery = &q
	return s.customers, s.total, s.err
}

func TestListCustomers_NormalizesParameters(t *testing.T) {
	svc := &stubService{
		customers: []customer.Customer{{ID: "68af02", Email: "alice@example.com"}},
		total:     3,
	}

	target := "/api/customers?page=3&sortField=totalAmount&sortOrder=asc" +
		"&registrationDateFrom=2024-01-01&orderCountFrom=2&search=alice"
	rec := httptest.NewRecorder()

	ListCustomers(rec, httptest.NewRequest(http.MethodGet, target, nil), svc)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotQuery)
	assert.Equal(t, 3, svc.gotQuery.Page)
	assert.Equal(t, 10, svc.gotQuery.Limit)
	assert.Equal(t, "totalAmount", svc.gotQuery.SortField)
	assert.Equal(t, queryparams.SortAsc, svc.gotQuery.SortOrder)
	require.NotNil(t, svc.gotQuery.RegistrationDateFrom)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *svc.gotQuery.RegistrationDateFrom)
	require.NotNil(t, svc.gotQuery.OrderCountFrom)
	assert.InDelta(t, 2, *svc.gotQuery.OrderCountFrom, 1e-9)
	assert.Equal(t, "alice", svc.gotQuery.Search)

	var resp struct {
		Items []customer.Customer `json:"items"`
		Total int64               `json:"total"`
		Page  int                 `json:"page"`
		Limit int                 `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "alice@example.com", resp.Items[0].Email)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 3, resp.Page)
}

func TestListCustomers_DefaultsApplied(t *testing.T) {
	svc := &stubService{customers: []customer.Customer{}}
	rec := httptest.NewRecorder()

	ListCustomers(rec, httptest.NewRequest(http.MethodGet, "/api/customers", nil), svc)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotQuery)
	assert.Equal(t, 1, svc.gotQuery.Page)
	assert.Equal(t, 10, svc.gotQuery.Limit)
	assert.Equal(t, customer.DefaultSortField, svc.gotQuery.SortField)
	assert.Equal(t, queryparams.SortDesc, svc.gotQuery.SortOrder)
}

func TestListCustomers_InvalidParameterRejected(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "unknown sort order", target: "/api/customers?sortOrder=descending"},
		{name: "repeated search", target: "/api/customers?search=a&search=b"},
		{name: "malformed date bound", target: "/api/customers?lastOrderDateTo=03.07.2024"},
		{name: "negative count bound", target: "/api/customers?orderCountFrom=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			rec := httptest.NewRecorder()

			ListCustomers(rec, httptest.NewRequest(http.MethodGet, tt.target, nil), svc)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.gotQuery, "service must not be called with an unnormalized query")
		})
	}
}
