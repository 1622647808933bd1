package updatecustomer

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
	"github.com/corray333/backend-labs/admin/internal/transport/http/respond"
	"github.com/corray333/backend-labs/admin/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	UpdateCustomer(ctx context.Context, c customer.Customer, actor string) (*customer.Customer, error)
}

// updateCustomerRequest represents an update customer request. Only profile
// fields are editable; lifetime order stats are maintained by order
// mutations.
type updateCustomerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"     validate:"required"`
	Notes     string `json:"notes"`
}

// Validate validates the update customer request.
func (r *updateCustomerRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts updateCustomerRequest to customer.Customer.
func (r *updateCustomerRequest) toModel(id string) customer.Customer {
	return customer.Customer{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Notes:     r.Notes,
	}
}

// UpdateCustomer handles the customer update request.
func UpdateCustomer(w http.ResponseWriter, r *http.Request, service service) {
	req := updateCustomerRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid json body")
		slog.Error("Error decoding request body for update customer", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		respond.BadRequest(w, err.Error())
		slog.Error("Error validating request body for update customer", "error", err)

		return
	}

	updated, err := service.UpdateCustomer(r.Context(), req.toModel(chi.URLParam(r, "id")), auth.Actor(r.Context()))
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error updating customer", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}
