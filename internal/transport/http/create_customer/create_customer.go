package createcustomer

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
	"github.com/corray333/backend-labs/admin/internal/transport/http/respond"
	"github.com/corray333/backend-labs/admin/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	CreateCustomer(ctx context.Context, c customer.Customer, actor string) (customer.Customer, error)
}

// createCustomerRequest represents a create customer request.
type createCustomerRequest struct {
	FirstName        string    `json:"firstName"        validate:"required"`
	LastName         string    `json:"lastName"         validate:"required"`
	Email            string    `json:"email"            validate:"required,email"`
	Phone            string    `json:"phone"            validate:"required"`
	RegistrationDate time.Time `json:"registrationDate"`
	Notes            string    `json:"notes"`
}

// Validate validates the create customer request.
func (r *createCustomerRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createCustomerRequest to customer.Customer.
func (r *createCustomerRequest) toModel() customer.Customer {
	return customer.Customer{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		RegistrationDate: r.RegistrationDate,
		Notes:            r.Notes,
	}
}

// CreateCustomer handles the customer creation request.
func CreateCustomer(w http.ResponseWriter, r *http.Request, service service) {
	req := createCustomerRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid json body")
		slog.Error("Error decoding request body for create customer", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		respond.BadRequest(w, err.Error())
		slog.Error("Error validating request body for create customer", "error", err)

		return
	}

	created, err := service.CreateCustomer(r.Context(), req.toModel(), auth.Actor(r.Context()))
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error creating customer", "error", err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}
