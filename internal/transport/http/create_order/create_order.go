package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/corray333/backend-labs/admin/internal/service/models/currency"
	"github.com/corray333/backend-labs/admin/internal/service/models/order"
	"github.com/corray333/backend-labs/admin/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/admin/internal/transport/http/respond"
	"github.com/corray333/backend-labs/admin/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, o order.Order, actor string) (order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ProductID     string  `json:"productId"     validate:"required"`
	ProductTitle  string  `json:"productTitle"  validate:"required"`
	Quantity      int     `json:"quantity"      validate:"gt=0"`
	UnitPrice     float64 `json:"unitPrice"     validate:"gte=0"`
	PriceCurrency string  `json:"priceCurrency" validate:"required"`
}

// toModel converts itemInCreateOrderRequest to orderitem.OrderItem.
func (r *itemInCreateOrderRequest) toModel() (*orderitem.OrderItem, error) {
	cur, err := currency.ParseCurrency(r.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &orderitem.OrderItem{
		ProductID:     r.ProductID,
		ProductTitle:  r.ProductTitle,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		PriceCurrency: cur,
	}, nil
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	CustomerID      string                     `json:"customerId"      validate:"required"`
	Status          string                     `json:"status"          validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	OrderDate       time.Time                  `json:"orderDate"`
	ShippingAddress string                     `json:"shippingAddress" validate:"required"`
	Notes           string                     `json:"notes"`
	Items           []itemInCreateOrderRequest `json:"items"           validate:"required,min=1,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createOrderRequest to order.Order.
func (r *createOrderRequest) toModel() (*order.Order, error) {
	var status order.Status
	if r.Status != "" {
		var err error
		if status, err = order.ParseStatus(r.Status); err != nil {
			return nil, err
		}
	}

	items := make([]orderitem.OrderItem, len(r.Items))
	for i := range r.Items {
		item, err := r.Items[i].toModel()
		if err != nil {
			return nil, err
		}
		items[i] = *item
	}

	return &order.Order{
		CustomerID:      r.CustomerID,
		Status:          status,
		OrderDate:       r.OrderDate,
		ShippingAddress: r.ShippingAddress,
		Notes:           r.Notes,
		Items:           items,
	}, nil
}

// CreateOrder handles the order creation request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid json body")
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		respond.BadRequest(w, err.Error())
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	model, err := req.toModel()
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error converting create order request to model", "error", err)

		return
	}

	created, err := service.CreateOrder(r.Context(), *model, auth.Actor(r.Context()))
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error creating order", "error", err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}
